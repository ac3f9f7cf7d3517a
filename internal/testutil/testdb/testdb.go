//go:build testutil

// Package testdb starts a throwaway Postgres with the schema applied.
package testdb

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"property-backend/internal/database"
	"property-backend/migrations"
)

type DBHandle struct {
	Pool   *pgxpool.Pool
	cancel func()
	stop   func(context.Context) error
}

func (h *DBHandle) Close() {
	if h.Pool != nil {
		h.Pool.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// Reset empties every domain table between tests. Seeded payment methods and obligation types are kept.
func (h *DBHandle) Reset(ctx context.Context) error {
	_, err := h.Pool.Exec(ctx, `
		TRUNCATE alert_records, notification_logs, rental_payments, obligation_payments, revoked_tokens,
		         monthly_rentals, airbnb_rentals, enser_inventory, ensers, property_laws, property_details,
		         repairs, obligations, rentals, users, tenants, properties
		RESTART IDENTITY CASCADE`)
	return err
}

func Start(ctx context.Context) (*DBHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("property"),
		postgres.WithUsername("property"),
		postgres.WithPassword("property"),
	)
	if err != nil {
		cancel()
		return nil, err
	}

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}
	if err := waitReady(ctx, pool); err != nil {
		pool.Close()
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	if _, err := database.NewMigrator(pool, migrations.FS, zap.NewNop()).RunMigrations(ctx); err != nil {
		pool.Close()
		_ = pg.Terminate(ctx)
		cancel()
		return nil, err
	}

	return &DBHandle{
		Pool:   pool,
		cancel: cancel,
		stop:   pg.Terminate,
	}, nil
}

func waitReady(ctx context.Context, pool *pgxpool.Pool) error {
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("db not ready")
}
