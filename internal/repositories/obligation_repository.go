package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/alerts"
	"property-backend/internal/models"
)

type ObligationRepository struct {
	DB *pgxpool.Pool
}

func NewObligationRepository(db *pgxpool.Pool) *ObligationRepository {
	return &ObligationRepository{DB: db}
}

const obligationTypeFK = "obligations_obligation_type_fkey"

const obligationSelect = `
	SELECT o.id, o.property_id, p.name, o.obligation_type, o.entity_name, o.amount, o.due_date,
	       o.temporality, COALESCE(pay.total, 0), o.created_at
	FROM obligations o
	JOIN properties p ON p.id = o.property_id
	LEFT JOIN LATERAL (
		SELECT SUM(op.amount) AS total FROM obligation_payments op WHERE op.obligation_id = o.id
	) pay ON TRUE
`

func scanObligation(row pgx.Row) (*models.Obligation, error) {
	o := &models.Obligation{}
	err := row.Scan(&o.ID, &o.PropertyID, &o.PropertyName, &o.ObligationType, &o.EntityName, &o.Amount,
		&o.DueDate, &o.Temporality, &o.TotalPaid, &o.CreatedAt)
	return o, err
}

func (r *ObligationRepository) Create(ctx context.Context, o *models.Obligation) error {
	query := `
		INSERT INTO obligations (property_id, obligation_type, entity_name, amount, due_date, temporality)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query, o.PropertyID, o.ObligationType, o.EntityName, o.Amount, o.DueDate, o.Temporality).
		Scan(&o.ID, &o.CreatedAt)
	return obligationWriteError(err, o)
}

func obligationWriteError(err error, o *models.Obligation) error {
	if !IsForeignKeyViolation(err) {
		return err
	}
	if constraintName(err) == obligationTypeFK {
		return fmt.Errorf("obligation type %q: %w", o.ObligationType, ErrNotFound)
	}
	return fmt.Errorf("property %d: %w", o.PropertyID, ErrNotFound)
}

func (r *ObligationRepository) Get(ctx context.Context, id int) (*models.Obligation, error) {
	o, err := scanObligation(r.DB.QueryRow(ctx, obligationSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "obligation", id)
	}
	return o, nil
}

func (r *ObligationRepository) List(ctx context.Context, f models.ObligationFilter, opts ListOptions) ([]*models.Obligation, int, error) {
	var w whereBuilder
	if f.PropertyID > 0 {
		w.add("o.property_id = ?", f.PropertyID)
	}
	if f.DueDateFrom != nil {
		w.add("o.due_date >= ?", *f.DueDateFrom)
	}
	if f.DueDateTo != nil {
		w.add("o.due_date <= ?", *f.DueDateTo)
	}
	if f.AmountMin != nil {
		w.add("o.amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		w.add("o.amount <= ?", *f.AmountMax)
	}
	if f.EntityContains != "" {
		w.add("o.entity_name ILIKE ?", "%"+f.EntityContains+"%")
	}
	if f.Temporality != "" {
		w.add("o.temporality = ?", f.Temporality)
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM obligations o`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, obligationSelect+w.sql()+` ORDER BY o.due_date, o.id`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var obligations []*models.Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, 0, err
		}
		obligations = append(obligations, o)
	}
	return obligations, total, rows.Err()
}

func (r *ObligationRepository) Update(ctx context.Context, o *models.Obligation) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE obligations
		SET property_id = $1, obligation_type = $2, entity_name = $3, amount = $4, due_date = $5, temporality = $6
		WHERE id = $7
	`, o.PropertyID, o.ObligationType, o.EntityName, o.Amount, o.DueDate, o.Temporality, o.ID)
	if err != nil {
		return obligationWriteError(err, o)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("obligation %d: %w", o.ID, ErrNotFound)
	}
	return nil
}

func (r *ObligationRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM obligations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("obligation %d: %w", id, ErrNotFound)
	}
	return nil
}

// ObligationsDueOn feeds the alert sweep with obligations due on date and their paid totals.
func (r *ObligationRepository) ObligationsDueOn(ctx context.Context, date time.Time) ([]alerts.DueObligation, error) {
	rows, err := r.DB.Query(ctx, obligationSelect+` WHERE o.due_date = $1 AND p.deleted_at IS NULL ORDER BY o.id`, date)
	if err != nil {
		return nil, fmt.Errorf("query obligations due on %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var out []alerts.DueObligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, alerts.DueObligation{
			ID:           o.ID,
			EntityName:   o.EntityName,
			PropertyName: o.PropertyName,
			Temporality:  o.Temporality,
			Amount:       o.Amount,
			Paid:         o.TotalPaid,
			DueDate:      o.DueDate,
		})
	}
	return out, rows.Err()
}
