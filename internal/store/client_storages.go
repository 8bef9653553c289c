package store

import (
	"context"

	"github.com/familylists/familylists-go/internal/config"
	"github.com/familylists/familylists-go/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the sync core. Currently it holds only
// [KVStore]; additional repositories can be added here as the feature set
// grows.
type ClientStorages struct {
	// KV is the durable key-value store for the mutation queue and the
	// dehydrated cache views.
	KV KVStore

	db *DB
}

// Close releases the underlying database connection, if one was opened.
func (s *ClientStorages) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to a fresh
//     [KVStore].
//
// Persistence is best-effort: if the database cannot be opened or migrated,
// the error is logged and an in-memory KVStore is returned instead, so the
// client keeps working for the session without durability.
func NewClientStorages(cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, log)
	if err != nil {
		log.Err(err).Msg("sqlite unavailable, degrading to in-memory storage")
		return &ClientStorages{KV: NewMemoryKV()}, nil
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Msg("migration failed, degrading to in-memory storage")
		return &ClientStorages{KV: NewMemoryKV()}, nil
	}

	return &ClientStorages{
		KV: NewKVRepository(db, log),
		db: db,
	}, nil
}
