package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/genmeta/internal/retry"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Connection pool configuration
const (
	DefaultMaxConns        = 4
	DefaultMinConns        = 0
	DefaultMaxConnIdleTime = 5 * time.Minute
)

// Open connects to databaseURL and returns a Store using it. The pool is
// pinged before returning; transient connection failures are retried.
func Open(ctx context.Context, databaseURL string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url is required: %w", genmeta.ErrInvalidConfig)
	}

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w: %w", genmeta.ErrInvalidConfig, err)
	}

	s := newStore(opts...)
	configurePool(poolConfig, s.logger)

	pool, err := retry.Do(ctx, s.executor, func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port, poolConfig.ConnConfig.Database)
	}

	s.pool = pool
	s.owned = true
	return s, nil
}

func configurePool(poolConfig *pgxpool.Config, logger genmeta.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("postgres: %s", notice.Message)
	}
}

// wrapConnectionError adds a hint for the most common connection failures.
func wrapConnectionError(err error, host string, port uint16, database string) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	var hint string
	switch {
	case strings.Contains(msg, "connection refused"):
		hint = fmt.Sprintf("is PostgreSQL running on %s?", addr)
	case strings.Contains(msg, "no such host"):
		hint = fmt.Sprintf("cannot resolve host %q", host)
	case strings.Contains(msg, "password authentication failed"):
		hint = "check the credentials in GENMETA_DATABASE_URL"
	case strings.Contains(msg, "does not exist"):
		hint = fmt.Sprintf("create the database first: createdb %s", database)
	default:
		return fmt.Errorf("connect to %s: %w: %w", addr, genmeta.ErrStoreFailed, err)
	}
	return fmt.Errorf("connect to %s (%s): %w: %w", addr, hint, genmeta.ErrStoreFailed, err)
}
