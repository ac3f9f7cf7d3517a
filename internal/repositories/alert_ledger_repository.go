package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/alerts"
	"property-backend/internal/models"
)

// AlertLedgerRepository is the append-only alert_records table.
// UNIQUE (entity_kind, entity_id, alert_kind) is the authoritative dedup guard.
type AlertLedgerRepository struct {
	DB *pgxpool.Pool
}

func NewAlertLedgerRepository(db *pgxpool.Pool) *AlertLedgerRepository {
	return &AlertLedgerRepository{DB: db}
}

func (r *AlertLedgerRepository) Exists(ctx context.Context, ref alerts.EntityRef, kind string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alert_records WHERE entity_kind = $1 AND entity_id = $2 AND alert_kind = $3
		)
	`, string(ref.Kind), ref.ID, kind).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("alert ledger lookup %s/%s: %w", ref, kind, err)
	}
	return exists, nil
}

// Create appends a record; a unique violation becomes alerts.ErrAlreadyRecorded.
func (r *AlertLedgerRepository) Create(ctx context.Context, rec alerts.Record) error {
	if !rec.Entity.Valid() {
		return fmt.Errorf("alert ledger: invalid entity %s", rec.Entity)
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO alert_records (entity_kind, entity_id, alert_kind, recipient, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`, string(rec.Entity.Kind), rec.Entity.ID, rec.Kind, rec.Recipient, rec.SentAt)
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s/%s: %w", rec.Entity, rec.Kind, alerts.ErrAlreadyRecorded)
	}
	return err
}

// List returns ledger rows newest first, optionally for one entity kind.
func (r *AlertLedgerRepository) List(ctx context.Context, entityKind string, opts ListOptions) ([]*models.AlertRecord, int, error) {
	var w whereBuilder
	if entityKind != "" {
		w.add("entity_kind = ?", entityKind)
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM alert_records`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, `
		SELECT id, entity_kind, entity_id, alert_kind, recipient, sent_at
		FROM alert_records`+w.sql()+`
		ORDER BY sent_at DESC, id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []*models.AlertRecord
	for rows.Next() {
		rec := &models.AlertRecord{}
		if err := rows.Scan(&rec.ID, &rec.EntityKind, &rec.EntityID, &rec.AlertKind, &rec.Recipient, &rec.SentAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}
