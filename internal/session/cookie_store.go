package session

import (
	"errors"
	"net/http"
	"time"

	"warbler/backend/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// CookieStore keeps the whole session client-side in a signed token.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

type sessionClaims struct {
	UserID  uint    `json:"uid,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
	gojwt.RegisteredClaims
}

func NewCookieStore(secret []byte, ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{secret: secret, ttl: ttl, secure: secure}
}

// Load returns the session in the request cookie. A missing cookie yields an
// anonymous session; a forged or expired one an error.
func (s *CookieStore) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return &Session{}, nil
	}
	if err != nil {
		return nil, err
	}

	var claims sessionClaims
	if err := jwt.Parse(s.secret, cookie.Value, &claims); err != nil {
		return nil, err
	}
	return &Session{UserID: claims.UserID, Flashes: claims.Flashes}, nil
}

func (s *CookieStore) Save(w http.ResponseWriter, _ *http.Request, sess *Session) error {
	if sess.empty() {
		http.SetCookie(w, newCookie("", -1, s.secure))
		return nil
	}

	cookie, err := s.Cookie(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, cookie)
	return nil
}

// Cookie encodes sess into a signed session cookie.
func (s *CookieStore) Cookie(sess *Session) (*http.Cookie, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID:  sess.UserID,
		Flashes: sess.Flashes,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.Sign(s.secret, claims)
	if err != nil {
		return nil, err
	}
	return newCookie(token, int(s.ttl.Seconds()), s.secure), nil
}
