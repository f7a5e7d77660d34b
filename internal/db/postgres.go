package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/labsessions/internal/config"
	"github.com/oguzk/labsessions/internal/pkg/apperrors"
	"github.com/oguzk/labsessions/internal/pkg/dberrors"
	"github.com/oguzk/labsessions/internal/pkg/logger"
)

// PostgresDB database connection structure
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB creates a new PostgreSQL connection pool
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connString := cfg.GetPostgresConnectionString()

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	poolConfig.MaxConnLifetime = maxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

// Close closing method
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// TxTimeout bounds every transaction started through WithTransaction.
const TxTimeout = 30 * time.Second

// WithTransaction runs a function within a transaction
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	return RunInTx(ctx, db.Pool, fn)
}

// RunInTx begins a transaction on the pool, runs fn and commits, rolling
// back on error or panic. A transaction timeout is applied when the
// caller's context carries no deadline.
func RunInTx(ctx context.Context, pool *pgxpool.Pool, fn TransactionFn) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, TxTimeout)
		defer cancel()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback on panic
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// storeMaxAttempts bounds retries of transient store faults before the
// failure is surfaced as ErrStoreTimeout.
const storeMaxAttempts = 3

// WithRetry runs a store operation, retrying transient infrastructure
// faults with exponential backoff. Application errors (not found,
// duplicates, capacity) are permanent and returned as-is on the first
// attempt. When all attempts fail on a transient fault the caller
// receives ErrStoreTimeout, which clients may retry.
func WithRetry[T any](ctx context.Context, op func(ctx context.Context) (T, error)) (T, error) {
	var transient bool

	result, err := backoff.Retry(ctx, func() (T, error) {
		v, opErr := op(ctx)
		if opErr != nil && !dberrors.IsTransient(opErr) {
			return v, backoff.Permanent(opErr)
		}
		if opErr != nil {
			transient = true
		}
		return v, opErr
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(storeMaxAttempts),
	)

	if err != nil && transient && dberrors.IsTransient(err) {
		return result, fmt.Errorf("%w: %v", apperrors.ErrStoreTimeout, err)
	}
	return result, err
}
