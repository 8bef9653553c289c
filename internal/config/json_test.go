package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"server": {
			"base_url": "https://lists.example.com",
			"request_timeout": "30s"
		},
		"auth": {
			"token_file": "/var/run/familylists/token"
		},
		"storage": {
			"db": { "dsn": "/home/user/.familylists/client.db" }
		},
		"workers": {
			"sync_interval": "2m",
			"probe_interval": "45s"
		},
		"stream": {
			"backoff_base": "500ms",
			"backoff_cap": "1m",
			"max_attempts": 7,
			"debounce_window": "250ms"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://lists.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, "/var/run/familylists/token", cfg.Auth.TokenFile)

	assert.Equal(t, "/home/user/.familylists/client.db", cfg.Storage.DB.DSN)

	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 45*time.Second, cfg.Workers.ProbeInterval)

	assert.Equal(t, 500*time.Millisecond, cfg.Stream.BackoffBase)
	assert.Equal(t, time.Minute, cfg.Stream.BackoffCap)
	assert.Equal(t, 7, cfg.Stream.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Stream.DebounceWindow)

	// The file path never comes from the file itself.
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON("definitely-does-not-exist.json")

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{ this is not json }`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

// ── Duration ──────────────────────────────────────────────────────────────────

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "string form",
			input:    `"1h30m"`,
			expected: 90 * time.Minute,
		},
		{
			name:     "seconds string",
			input:    `"15s"`,
			expected: 15 * time.Second,
		},
		{
			name:     "numeric nanoseconds",
			input:    `1000000000`,
			expected: time.Second,
		},
		{
			name:    "malformed string",
			input:   `"fifteen seconds"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))
}
