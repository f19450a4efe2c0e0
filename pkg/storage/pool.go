// Package storage provides the PostgreSQL connection pool and the
// schema bootstrap for the support database. The agent itself does not
// persist business data; the pool exists for the connection gauges, the
// health check, and the initdb command.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"helpdesk-hq/agentd/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps a pgx connection pool.
type Pool struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a connection pool from the database configuration. The
// pool connects lazily; use Ping to verify connectivity.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	return &Pool{
		pool:   pool,
		logger: slog.Default().With("component", "storage"),
	}, nil
}

// Stat returns a snapshot of pool state for the connection gauges.
// *pgxpool.Stat satisfies the metrics PoolStats interface.
func (p *Pool) Stat() *pgxpool.Stat {
	return p.pool.Stat()
}

// Ping verifies connectivity for the health check.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Initialize creates the support schema: tables, indexes, views,
// trigger functions, and the knowledge-base seed rows. Every statement
// is idempotent (IF NOT EXISTS / OR REPLACE / ON CONFLICT DO NOTHING),
// so re-running against an initialized database is safe.
//
// progress, if non-nil, is called after each statement with the number
// of statements completed and the total.
func (p *Pool) Initialize(ctx context.Context, progress func(done, total int)) error {
	total := len(schemaStatements)
	for i, stmt := range schemaStatements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d/%d: %w", i+1, total, err)
		}
		if progress != nil {
			progress(i+1, total)
		}
	}

	p.logger.Info("database schema initialized", "statements", len(schemaStatements))
	return nil
}

// Close releases the pool.
func (p *Pool) Close() {
	p.pool.Close()
}
