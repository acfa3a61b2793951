package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/merahputih/kafepos/internal/core"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 16
	cfg.MinConns = 2
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// SQLSTATE yang perlu dikenali caller.
const (
	sqlstateDeadlock    = "40P01"
	sqlstateLockTimeout = "55P03"
	sqlstateFKViolation = "23503"
)

// IsLockFailure: deadlock atau lock timeout; transaksi layak diulang caller.
func IsLockFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlstateDeadlock || pgErr.Code == sqlstateLockTimeout
}

// MarkTransient membungkus kegagalan lock dengan core.ErrTransient supaya
// handler memetakannya ke 503, bukan 500. Error lain lewat apa adanya.
func MarkTransient(err error) error {
	if IsLockFailure(err) {
		return fmt.Errorf("%w: %v", core.ErrTransient, err)
	}
	return err
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlstateFKViolation
}
