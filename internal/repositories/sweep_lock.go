package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdvisoryLocker holds a session-level Postgres advisory lock on a dedicated pooled connection.
type AdvisoryLocker struct {
	DB  *pgxpool.Pool
	Key int64
}

func NewAdvisoryLocker(db *pgxpool.Pool, key int64) *AdvisoryLocker {
	return &AdvisoryLocker{DB: db, Key: key}
}

func (l *AdvisoryLocker) TryLock(ctx context.Context) (func(), bool, error) {
	conn, err := l.DB.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}

	var ok bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, l.Key).Scan(&ok); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !ok {
		conn.Release()
		return nil, false, nil
	}

	release := func() {
		// Unlock on a fresh context so a cancelled sweep still frees the lock.
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, l.Key)
		conn.Release()
	}
	return release, true, nil
}
