package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type ObligationTypeRepository struct {
	DB *pgxpool.Pool
}

func NewObligationTypeRepository(db *pgxpool.Pool) *ObligationTypeRepository {
	return &ObligationTypeRepository{DB: db}
}

func (r *ObligationTypeRepository) List(ctx context.Context) ([]*models.ObligationType, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM obligation_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.ObligationType
	for rows.Next() {
		t := &models.ObligationType{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *ObligationTypeRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM obligation_types WHERE name = $1)`, name).Scan(&exists)
	return exists, err
}

func (r *ObligationTypeRepository) Create(ctx context.Context, t *models.ObligationType) error {
	err := r.DB.QueryRow(ctx, `INSERT INTO obligation_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	if IsUniqueViolation(err) {
		return fmt.Errorf("obligation type %q: %w", t.Name, ErrDuplicate)
	}
	return err
}

// Delete fails with a foreign key violation while obligations still use the type.
func (r *ObligationTypeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM obligation_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("obligation type %d: %w", id, ErrNotFound)
	}
	return nil
}
