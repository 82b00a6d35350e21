// Package jwtx verifies bearer tokens minted by the platform identity
// service. The invite service never issues tokens itself; it only needs
// the authenticated subject and granted scopes out of a token it can
// trust, so verification is a shared-secret HMAC check against the
// identity service's signing key.
package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrExpiredToken = errors.New("jwtx: token expired")
)

// Claims are the verified fields the service cares about.
type Claims struct {
	Subject   string // user ID
	Issuer    string
	Scopes    []string
	ExpiresAt time.Time
}

// HasScope reports whether the token was granted the given scope.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Verifier validates a raw bearer token and extracts its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HMACVerifier verifies HS256 tokens with a shared secret.
type HMACVerifier struct {
	Secret []byte
	Issuer string // expected iss claim; empty disables the check
}

func (v *HMACVerifier) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	mc := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mc.GetSubject()
	iss, _ := mc.GetIssuer()
	out := Claims{Subject: sub, Issuer: iss}

	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	// Scopes travel as a space-delimited "scope" claim, OAuth2 style.
	if scope, ok := mc["scope"].(string); ok {
		if scope = strings.TrimSpace(scope); scope != "" {
			out.Scopes = strings.Fields(scope)
		}
	}

	return out, nil
}

// Sign mints an HS256 token. The identity service owns token issuance in
// production; this exists for tests and local tooling.
func Sign(secret []byte, issuer, subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   issuer,
		"sub":   subject,
		"scope": strings.Join(scopes, " "),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}
