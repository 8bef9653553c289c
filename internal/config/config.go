// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// familylists client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds the backend endpoint and request timeout settings.
	Server Server `envPrefix:"SERVER_"`

	// Auth holds the bearer-token provisioning settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the local persistence backend used
	// by the mutation queue and cache dehydration.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Stream holds the realtime stream reconnect and debounce settings.
	Stream Stream `envPrefix:"STREAM_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds network settings for the familylists backend.
type Server struct {
	// BaseURL is the backend base URL, e.g. "https://lists.example.com".
	// Env: SERVER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the maximum duration of a single outbound request.
	// An unbounded request would stall the queue drain at its head, so the
	// client always sets one (e.g. "15s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Auth holds token provisioning settings. The client never performs an
// interactive login; an external flow writes the bearer token to a file and
// the client re-reads it on every request attempt.
type Auth struct {
	// TokenFile is the path of the file holding the current bearer token.
	// Env: AUTH_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path for the durable key-value store.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers contains background worker settings.
type Workers struct {
	// SyncInterval defines how often the periodic drain worker fires.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval defines how often the connectivity prober polls the
	// backend health endpoint.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Stream contains realtime stream client settings.
type Stream struct {
	// BackoffBase is the first reconnect delay; doubled per attempt.
	// Env: STREAM_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap bounds the exponential reconnect delay.
	// Env: STREAM_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`

	// MaxAttempts caps automatic reconnects; after that the stream reports
	// a failed state and waits for a manual retry.
	// Env: STREAM_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// DebounceWindow is how long the client waits for an event burst to
	// quiet down before invalidating the affected views once.
	// Env: STREAM_DEBOUNCE_WINDOW
	DebounceWindow time.Duration `env:"DEBOUNCE_WINDOW"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags (assembled by the CLI layer, may be nil)
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flags).
		withJSON().
		build()
}
