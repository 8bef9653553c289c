package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the backend base URL used by the HTTP adapter.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientAuth holds token provisioning settings for the client.
type ClientAuth struct {
	// TokenFile is the path of the bearer-token file.
	TokenFile string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the periodic drain worker should run.
	SyncInterval time.Duration
	// ProbeInterval defines how often connectivity is probed.
	ProbeInterval time.Duration
}

// ClientStream contains stream reconnect and debounce settings.
type ClientStream struct {
	// BackoffBase is the first reconnect delay.
	BackoffBase time.Duration
	// BackoffCap bounds the exponential reconnect delay.
	BackoffCap time.Duration
	// MaxAttempts caps automatic reconnects.
	MaxAttempts int
	// DebounceWindow coalesces event bursts into one invalidation.
	DebounceWindow time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Auth contains token provisioning settings.
	Auth ClientAuth
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Stream contains realtime stream settings.
	Stream ClientStream
}

// Defaults applied when neither env, flags nor the JSON file set a value.
const (
	defaultRequestTimeout = 15 * time.Second
	defaultSyncInterval   = time.Minute
	defaultProbeInterval  = 30 * time.Second
	defaultBackoffBase    = time.Second
	defaultBackoffCap     = 30 * time.Second
	defaultMaxAttempts    = 10
	defaultDebounce       = 500 * time.Millisecond
)

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults for unset tunables, and
// validates the resulting [ClientConfig]. The flags overlay comes from the
// CLI layer and may be nil.
func GetClientConfig(flags *StructuredConfig) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        cfg.Server.BaseURL,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Auth: ClientAuth{
			TokenFile: cfg.Auth.TokenFile,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			ProbeInterval: cfg.Workers.ProbeInterval,
		},
		Stream: ClientStream{
			BackoffBase:    cfg.Stream.BackoffBase,
			BackoffCap:     cfg.Stream.BackoffCap,
			MaxAttempts:    cfg.Stream.MaxAttempts,
			DebounceWindow: cfg.Stream.DebounceWindow,
		},
	}
	clientCfg.fillDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) fillDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = defaultSyncInterval
	}
	if cfg.Workers.ProbeInterval <= 0 {
		cfg.Workers.ProbeInterval = defaultProbeInterval
	}
	if cfg.Stream.BackoffBase <= 0 {
		cfg.Stream.BackoffBase = defaultBackoffBase
	}
	if cfg.Stream.BackoffCap <= 0 {
		cfg.Stream.BackoffCap = defaultBackoffCap
	}
	if cfg.Stream.MaxAttempts <= 0 {
		cfg.Stream.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Stream.DebounceWindow <= 0 {
		cfg.Stream.DebounceWindow = defaultDebounce
	}
}
