package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migrator applies *.sql files from an fs.FS in lexical order, once each.
type Migrator struct {
	pool  *pgxpool.Pool
	files fs.FS
	log   *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, files fs.FS, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{
		pool:  pool,
		files: files,
		log:   log,
	}
}

// RunMigrations executes every migration not yet listed in schema_migrations.
// Each file runs in its own transaction together with its tracking row.
func (m *Migrator) RunMigrations(ctx context.Context) (int, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	names, err := m.migrationFiles()
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, filename := range names {
		if applied[filename] {
			m.log.Debug("migration already applied", zap.String("file", filename))
			continue
		}

		content, err := fs.ReadFile(m.files, filename)
		if err != nil {
			return ran, fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		m.log.Info("running migration", zap.String("file", filename))
		if err := m.apply(ctx, filename, string(content)); err != nil {
			return ran, err
		}
		ran++
	}

	if ran > 0 {
		m.log.Info("migrations applied", zap.Int("count", ran))
	} else {
		m.log.Info("database schema is up to date")
	}
	return ran, nil
}

// Pending lists migration files that have not been applied.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return nil, err
	}
	applied, err := m.getAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	names, err := m.migrationFiles()
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, n := range names {
		if !applied[n] {
			pending = append(pending, n)
		}
	}
	return pending, nil
}

func (m *Migrator) migrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Migrator) apply(ctx context.Context, filename, sql string) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", filename, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to run migration %s: %w", filename, err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO schema_migrations (filename)
		VALUES ($1)
		ON CONFLICT (filename) DO NOTHING
	`, filename); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", filename, err)
	}
	return tx.Commit(ctx)
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

func (m *Migrator) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.pool.Query(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		applied[filename] = true
	}

	return applied, rows.Err()
}
