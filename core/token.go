package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL applies when Issue is called with a non-positive ttl.
const DefaultTokenTTL = 15 * time.Minute

// TokenService signs and validates bearer tokens carrying a subject claim.
// The secret and algorithm come from Config at startup and never change.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenService builds a TokenService from config. Only HMAC algorithms
// are supported; an unknown algorithm name is a startup error.
func NewTokenService(cfg Config) (*TokenService, error) {
	var method jwt.SigningMethod
	switch strings.ToUpper(strings.TrimSpace(cfg.Algorithm)) {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("empty secret key")
	}
	return &TokenService{secret: []byte(cfg.SecretKey), method: method}, nil
}

// Issue signs a token with sub=subject and exp=now+ttl.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	return token.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the subject claim.
// All failure causes collapse to ErrTokenRejected so callers cannot tell
// a forged token from an expired one.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrTokenRejected
	}
	if claims.Subject == "" {
		return "", ErrTokenRejected
	}
	return claims.Subject, nil
}
