// SPDX-License-Identifier: Apache-2.0

// Package auth provides the bearer-token capability of the familylists
// client. The client never runs an interactive login flow: an external
// process (the web app, a helper script) provisions the token, and the client
// fetches it fresh for every request attempt and stream connection, since a
// token cached at enqueue time may be long stale by the time a queued
// mutation replays.
package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned when no usable token is available. Callers treat it
// as equivalent to an eventual 401.
var ErrNoToken = errors.New("no auth token available")

//go:generate mockgen -source=provider.go -destination=../mock/token_provider_mock.go -package=mock

// TokenProvider returns the current bearer token. Implementations must be
// safe for concurrent use and cheap enough to call once per request attempt.
type TokenProvider interface {
	// Token returns a bearer token, or ErrNoToken when none is available
	// or the stored token has expired.
	Token(ctx context.Context) (string, error)
}

// FileTokenProvider re-reads a token file on every call, so replacing the
// file content is the re-authentication signal.
type FileTokenProvider struct {
	path string
	now  func() time.Time
}

// NewFileTokenProvider returns a provider reading the token from path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path, now: time.Now}
}

// Token implements TokenProvider. A token whose exp claim has passed is
// reported as absent rather than sent to the server, since the server would
// reject it with a 401 anyway.
func (p *FileTokenProvider) Token(_ context.Context) (string, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return "", ErrNoToken
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNoToken
	}

	if expired(token, p.now()) {
		return "", ErrNoToken
	}

	return token, nil
}

// expired reports whether the JWT exp claim lies in the past. Tokens that do
// not parse as JWTs or carry no exp claim are passed through as-is; the
// server stays the authority on their validity.
func expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}

// StaticTokenProvider returns a fixed token; an empty token reports ErrNoToken.
// Intended for tests.
type StaticTokenProvider string

// Token implements TokenProvider.
func (p StaticTokenProvider) Token(_ context.Context) (string, error) {
	if p == "" {
		return "", ErrNoToken
	}
	return string(p), nil
}
