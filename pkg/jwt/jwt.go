package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSubject is returned when a token carries no usable user id.
var ErrInvalidSubject = errors.New("token has no valid subject")

// GenerateToken creates a new JWT for a given user ID.
func GenerateToken(secret []byte, userID uint, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	return Sign(secret, claims)
}

// ParseUserID validates tokenString and returns the user id in its subject.
func ParseUserID(secret []byte, tokenString string) (uint, error) {
	claims := jwt.MapClaims{}
	if err := Parse(secret, tokenString, claims); err != nil {
		return 0, err
	}

	userIDFloat, ok := claims["sub"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, ErrInvalidSubject
	}
	return uint(userIDFloat), nil
}

// Sign serializes claims as an HS256 token.
func Sign(secret []byte, claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse verifies tokenString with secret and decodes it into claims.
// Only HMAC signatures are accepted.
func Parse(secret []byte, tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}
