package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type NotificationLogRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationLogRepository(db *pgxpool.Pool) *NotificationLogRepository {
	return &NotificationLogRepository{DB: db}
}

func (r *NotificationLogRepository) Create(ctx context.Context, entry *models.NotificationLog) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO notification_logs (recipient, subject, status, error_message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, entry.Recipient, entry.Subject, entry.Status, nullIfEmpty(entry.ErrorMessage)).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *NotificationLogRepository) List(ctx context.Context, status string, opts ListOptions) ([]*models.NotificationLog, int, error) {
	var w whereBuilder
	if status != "" {
		w.add("status = ?", status)
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM notification_logs`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, `
		SELECT id, recipient, subject, status, COALESCE(error_message, ''), created_at
		FROM notification_logs`+w.sql()+`
		ORDER BY created_at DESC, id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []*models.NotificationLog
	for rows.Next() {
		l := &models.NotificationLog{}
		if err := rows.Scan(&l.ID, &l.Recipient, &l.Subject, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
