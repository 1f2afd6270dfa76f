package v1

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims carries the single identity claim a session token holds. The
// JSON name "data" matches the wire format consumed by existing clients.
type tokenClaims struct {
	Data string `json:"data"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies signed, time-bound session tokens. Tokens
// are not stored server-side: validity is determined solely by signature and
// expiry. The secret and clock are injected so tests can run with fixed
// values.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret and
// issuing tokens valid for ttl.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue produces a signed HS256 token asserting the given username, expiring
// ttl from now.
func (t *TokenIssuer) Issue(username string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Data: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the asserted username.
// Structural corruption, a signature mismatch, and expiry all produce the
// same ErrInvalidToken outcome.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Data == "" {
		return "", ErrInvalidToken
	}

	return claims.Data, nil
}
