package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseUserID(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, 42, time.Hour)
	require.NoError(t, err)

	userID, err := ParseUserID(secret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseUserIDRejects(t *testing.T) {
	secret := []byte("test-secret")

	expired, err := GenerateToken(secret, 42, -time.Minute)
	require.NoError(t, err)

	noSubject, err := Sign(secret, gojwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"sub": 42}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{name: "expired", secret: secret, token: expired},
		{name: "wrong secret", secret: []byte("other"), token: expired},
		{name: "missing subject", secret: secret, token: noSubject},
		{name: "none algorithm", secret: secret, token: unsigned},
		{name: "garbage", secret: secret, token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}
