// Package repository persists finished matches and their replay blobs in
// PostgreSQL. The simulation core never touches this layer; the server
// writes here after a match ends and reads back for replay download.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jtsang27/crust-sim/internal/config"
)

// DB wraps the pgx connection pool.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB connects to the configured database and optionally bootstraps the
// schema.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{pool: pool, logger: logger}
	if cfg.BootstrapSchema {
		if err := db.bootstrapSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return db, nil
}

// Stats exposes pool statistics for startup logging.
func (db *DB) Stats() *pgxpool.Stat {
	return db.pool.Stat()
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS matches (
    match_id        UUID PRIMARY KEY,
    seed            BIGINT NOT NULL,
    winner          SMALLINT,
    player1_tower_hp DOUBLE PRECISION NOT NULL,
    player2_tower_hp DOUBLE PRECISION NOT NULL,
    ticks           BIGINT NOT NULL,
    match_time      DOUBLE PRECISION NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS replays (
    match_id   UUID PRIMARY KEY REFERENCES matches(match_id) ON DELETE CASCADE,
    data       BYTEA NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (db *DB) bootstrapSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	db.logger.Info("database schema ready")
	return nil
}
