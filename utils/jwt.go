package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an access token stays valid. There is no
// refresh mechanism, expiry forces a new login.
const DefaultTokenTTL = 30 * time.Minute

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the token subject (the user's email) plus the registered
// expiry/issue timestamps.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with a process-wide
// symmetric secret. The secret is configuration, injected once at startup.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed HS256 token with the user's email as subject and
// an absolute expiry of now + TTL.
func (tm *TokenManager) Generate(email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Parse verifies the signature and expiry and returns the embedded email.
// Malformed tokens, bad signatures, expired tokens and tokens without a
// subject all fail the same way: a token with no subject is useless.
func (tm *TokenManager) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
