package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/familylists/familylists-go/internal/logger"
)

type kvRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewKVRepository returns a KVStore backed by the kv table of the local
// SQLite database.
func NewKVRepository(db *DB, logger *logger.Logger) KVStore {
	return &kvRepository{
		db:     db,
		logger: logger,
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := sq.Select("value").
		From("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to build kv select")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		r.logger.Err(err).Str("key", key).Msg("failed to scan kv row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := sq.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to build kv upsert")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to execute kv upsert")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	query, args, err := sq.Delete("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to build kv delete")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("key", key).Msg("failed to execute kv delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
