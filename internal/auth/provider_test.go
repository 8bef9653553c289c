// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestFileTokenProvider_ReturnsTrimmedToken(t *testing.T) {
	path := writeTokenFile(t, "  tok-123\n")
	p := NewFileTokenProvider(path)

	got, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)
}

func TestFileTokenProvider_MissingFile_ErrNoToken(t *testing.T) {
	p := NewFileTokenProvider(filepath.Join(t.TempDir(), "absent"))

	_, err := p.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileTokenProvider_EmptyFile_ErrNoToken(t *testing.T) {
	path := writeTokenFile(t, "\n\n")
	p := NewFileTokenProvider(path)

	_, err := p.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileTokenProvider_ExpiredJWT_ErrNoToken(t *testing.T) {
	path := writeTokenFile(t, signedJWT(t, time.Now().Add(-time.Hour)))
	p := NewFileTokenProvider(path)

	_, err := p.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileTokenProvider_ValidJWT_Passes(t *testing.T) {
	token := signedJWT(t, time.Now().Add(time.Hour))
	path := writeTokenFile(t, token)
	p := NewFileTokenProvider(path)

	got, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestFileTokenProvider_NonJWT_PassesThrough(t *testing.T) {
	// Opaque tokens are the server's problem, not ours.
	path := writeTokenFile(t, "opaque-session-token")
	p := NewFileTokenProvider(path)

	got, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "opaque-session-token", got)
}

func TestFileTokenProvider_RereadsFileEachCall(t *testing.T) {
	path := writeTokenFile(t, "first")
	p := NewFileTokenProvider(path)
	ctx := context.Background()

	got, err := p.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "first", got)

	// Replacing the file content is the re-authentication signal.
	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))

	got, err = p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStaticTokenProvider(t *testing.T) {
	got, err := StaticTokenProvider("tok").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	_, err = StaticTokenProvider("").Token(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}
