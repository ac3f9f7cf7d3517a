package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type RepairRepository struct {
	DB *pgxpool.Pool
}

func NewRepairRepository(db *pgxpool.Pool) *RepairRepository {
	return &RepairRepository{DB: db}
}

const repairSelect = `
	SELECT rp.id, rp.property_id, p.name, rp.cost, rp.repair_date, rp.description, COALESCE(rp.observation, '')
	FROM repairs rp
	JOIN properties p ON p.id = rp.property_id
`

func scanRepair(row pgx.Row) (*models.Repair, error) {
	rp := &models.Repair{}
	err := row.Scan(&rp.ID, &rp.PropertyID, &rp.PropertyName, &rp.Cost, &rp.RepairDate, &rp.Description, &rp.Observation)
	return rp, err
}

func (r *RepairRepository) Create(ctx context.Context, rp *models.Repair) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO repairs (property_id, cost, repair_date, description, observation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rp.PropertyID, rp.Cost, rp.RepairDate, rp.Description, nullIfEmpty(rp.Observation)).Scan(&rp.ID)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("property %d: %w", rp.PropertyID, ErrNotFound)
	}
	return err
}

func (r *RepairRepository) Get(ctx context.Context, id int) (*models.Repair, error) {
	rp, err := scanRepair(r.DB.QueryRow(ctx, repairSelect+` WHERE rp.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "repair", id)
	}
	return rp, nil
}

func (r *RepairRepository) List(ctx context.Context, propertyID int, opts ListOptions) ([]*models.Repair, int, error) {
	var w whereBuilder
	if propertyID > 0 {
		w.add("rp.property_id = ?", propertyID)
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM repairs rp`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, repairSelect+w.sql()+` ORDER BY rp.repair_date DESC, rp.id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var repairs []*models.Repair
	for rows.Next() {
		rp, err := scanRepair(rows)
		if err != nil {
			return nil, 0, err
		}
		repairs = append(repairs, rp)
	}
	return repairs, total, rows.Err()
}

func (r *RepairRepository) Update(ctx context.Context, rp *models.Repair) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE repairs SET property_id = $1, cost = $2, repair_date = $3, description = $4, observation = $5
		WHERE id = $6
	`, rp.PropertyID, rp.Cost, rp.RepairDate, rp.Description, nullIfEmpty(rp.Observation), rp.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repair %d: %w", rp.ID, ErrNotFound)
	}
	return nil
}

func (r *RepairRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM repairs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repair %d: %w", id, ErrNotFound)
	}
	return nil
}
