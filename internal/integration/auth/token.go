// Package auth provides the bearer token source used by the record store
// client. Token acquisition lives with the identity provider; this package
// only carries a token and inspects its expiry locally so the client can
// warn before the store starts rejecting requests.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaticTokenSource serves a fixed bearer token from configuration.
type StaticTokenSource struct {
	token     string
	warnAhead time.Duration
	warned    bool
}

// NewStaticTokenSource creates a token source for the given token.
// warnAhead controls how long before expiry the first warning is logged.
func NewStaticTokenSource(token string, warnAhead time.Duration) *StaticTokenSource {
	return &StaticTokenSource{token: token, warnAhead: warnAhead}
}

// Token returns the configured token. An empty token is valid: the demo
// store accepts unauthenticated requests.
func (s *StaticTokenSource) Token(_ context.Context) (string, error) {
	if s.token != "" && !s.warned {
		if expiry, ok := Expiry(s.token); ok && time.Until(expiry) < s.warnAhead {
			slog.Warn("Bearer token expires soon, requests may start failing",
				"expires_at", expiry,
			)
			s.warned = true
		}
	}
	return s.token, nil
}

// Expiry parses the token without verifying its signature and returns the
// exp claim. Verification is the store's job; the client only needs the
// timestamp for the early warning.
func Expiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
