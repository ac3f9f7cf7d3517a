package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type PropertyRepository struct {
	DB *pgxpool.Pool
}

func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

const propertyColumns = `id, name, use, address, location, zip_code, building_type, city, created_at, updated_at`

func scanProperty(row pgx.Row) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(&p.ID, &p.Name, &p.Use, &p.Address, &p.Location, &p.ZipCode, &p.BuildingType, &p.City, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) error {
	query := `
		INSERT INTO properties (name, use, address, location, zip_code, building_type, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query, p.Name, p.Use, p.Address, p.Location, p.ZipCode, p.BuildingType, p.City).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PropertyRepository) Get(ctx context.Context, id int) (*models.Property, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1 AND deleted_at IS NULL`, id)
	p, err := scanProperty(row)
	if err != nil {
		return nil, notFound(err, "property", id)
	}
	return p, nil
}

func (r *PropertyRepository) List(ctx context.Context, opts ListOptions) ([]*models.Property, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := opts.limitOffset()
	rows, err := r.DB.Query(ctx, `
		SELECT `+propertyColumns+` FROM properties
		WHERE deleted_at IS NULL
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, p)
	}
	return properties, total, rows.Err()
}

func (r *PropertyRepository) Update(ctx context.Context, p *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, use = $2, address = $3, location = $4, zip_code = $5, building_type = $6, city = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := r.DB.QueryRow(ctx, query, p.Name, p.Use, p.Address, p.Location, p.ZipCode, p.BuildingType, p.City, p.ID).
		Scan(&p.UpdatedAt)
	return notFound(err, "property", p.ID)
}

// SoftDelete hides the property; its rentals and obligations stay for history.
func (r *PropertyRepository) SoftDelete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `UPDATE properties SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return nil
}

// LockForUpdate takes a row lock on the property so concurrent rental writes for it serialize.
func (r *PropertyRepository) LockForUpdate(ctx context.Context, q DBTX, id int) error {
	var locked int
	err := q.QueryRow(ctx, `SELECT id FROM properties WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id).Scan(&locked)
	return notFound(err, "property", id)
}
