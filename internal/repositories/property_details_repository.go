package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type PropertyDetailsRepository struct {
	DB *pgxpool.Pool
}

func NewPropertyDetailsRepository(db *pgxpool.Pool) *PropertyDetailsRepository {
	return &PropertyDetailsRepository{DB: db}
}

func (r *PropertyDetailsRepository) Get(ctx context.Context, propertyID int) (*models.PropertyDetails, error) {
	d := &models.PropertyDetails{}
	err := r.DB.QueryRow(ctx, `
		SELECT id, property_id, bedrooms, bathrooms, floors, buildings, observations, updated_at
		FROM property_details WHERE property_id = $1
	`, propertyID).Scan(&d.ID, &d.PropertyID, &d.Bedrooms, &d.Bathrooms, &d.Floors, &d.Buildings, &d.Observations, &d.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "details for property", propertyID)
	}
	return d, nil
}

// Upsert keeps a single details row per property.
func (r *PropertyDetailsRepository) Upsert(ctx context.Context, d *models.PropertyDetails) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO property_details (property_id, bedrooms, bathrooms, floors, buildings, observations)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (property_id) DO UPDATE
		SET bedrooms = EXCLUDED.bedrooms, bathrooms = EXCLUDED.bathrooms, floors = EXCLUDED.floors,
		    buildings = EXCLUDED.buildings, observations = EXCLUDED.observations, updated_at = NOW()
		RETURNING id, updated_at
	`, d.PropertyID, d.Bedrooms, d.Bathrooms, d.Floors, d.Buildings, d.Observations).Scan(&d.ID, &d.UpdatedAt)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("property %d: %w", d.PropertyID, ErrNotFound)
	}
	return err
}
