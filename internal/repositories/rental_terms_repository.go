package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

// RentalTermsRepository stores the type-specific records of monthly and airbnb rentals.
type RentalTermsRepository struct {
	DB *pgxpool.Pool
}

func NewRentalTermsRepository(db *pgxpool.Pool) *RentalTermsRepository {
	return &RentalTermsRepository{DB: db}
}

func (r *RentalTermsRepository) GetMonthly(ctx context.Context, rentalID int) (*models.MonthlyTerms, error) {
	m := &models.MonthlyTerms{}
	err := r.DB.QueryRow(ctx, `
		SELECT id, rental_id, deposit_amount, is_refundable, files_url FROM monthly_rentals WHERE rental_id = $1
	`, rentalID).Scan(&m.ID, &m.RentalID, &m.DepositAmount, &m.IsRefundable, &m.FilesURL)
	if err != nil {
		return nil, notFound(err, "monthly terms for rental", rentalID)
	}
	return m, nil
}

func (r *RentalTermsRepository) UpsertMonthly(ctx context.Context, m *models.MonthlyTerms) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO monthly_rentals (rental_id, deposit_amount, is_refundable, files_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rental_id) DO UPDATE
		SET deposit_amount = EXCLUDED.deposit_amount, is_refundable = EXCLUDED.is_refundable, files_url = EXCLUDED.files_url
		RETURNING id
	`, m.RentalID, m.DepositAmount, m.IsRefundable, m.FilesURL).Scan(&m.ID)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("rental %d: %w", m.RentalID, ErrNotFound)
	}
	return err
}

func (r *RentalTermsRepository) GetAirbnb(ctx context.Context, rentalID int) (*models.AirbnbTerms, error) {
	a := &models.AirbnbTerms{}
	err := r.DB.QueryRow(ctx, `SELECT id, rental_id, is_paid FROM airbnb_rentals WHERE rental_id = $1`, rentalID).
		Scan(&a.ID, &a.RentalID, &a.IsPaid)
	if err != nil {
		return nil, notFound(err, "airbnb terms for rental", rentalID)
	}
	return a, nil
}

func (r *RentalTermsRepository) UpsertAirbnb(ctx context.Context, a *models.AirbnbTerms) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO airbnb_rentals (rental_id, is_paid) VALUES ($1, $2)
		ON CONFLICT (rental_id) DO UPDATE SET is_paid = EXCLUDED.is_paid
		RETURNING id
	`, a.RentalID, a.IsPaid).Scan(&a.ID)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("rental %d: %w", a.RentalID, ErrNotFound)
	}
	return err
}
