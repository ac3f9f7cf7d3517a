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

type RentalRepository struct {
	DB *pgxpool.Pool
}

func NewRentalRepository(db *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{DB: db}
}

const rentalSelect = `
	SELECT r.id, r.property_id, p.name, r.tenant_id,
	       COALESCE(TRIM(t.name || ' ' || t.last_name), ''), COALESCE(t.email, ''),
	       r.rental_type, r.check_in, r.check_out, r.amount, r.people_count, COALESCE(r.notes, ''),
	       r.status, COALESCE(pay.total, 0), r.created_at, r.updated_at
	FROM rentals r
	JOIN properties p ON p.id = r.property_id
	LEFT JOIN tenants t ON t.id = r.tenant_id
	LEFT JOIN LATERAL (
		SELECT SUM(rp.amount) AS total FROM rental_payments rp WHERE rp.rental_id = r.id
	) pay ON TRUE
`

func scanRental(row pgx.Row) (*models.Rental, error) {
	r := &models.Rental{}
	err := row.Scan(
		&r.ID, &r.PropertyID, &r.PropertyName, &r.TenantID,
		&r.TenantName, &r.TenantEmail,
		&r.RentalType, &r.CheckIn, &r.CheckOut, &r.Amount, &r.PeopleCount, &r.Notes,
		&r.Status, &r.TotalPaid, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func collectRentals(rows pgx.Rows) ([]*models.Rental, error) {
	defer rows.Close()
	var rentals []*models.Rental
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, r)
	}
	return rentals, rows.Err()
}

// Create inserts through q so the caller can run it inside its validation transaction.
func (r *RentalRepository) Create(ctx context.Context, q DBTX, rental *models.Rental) error {
	query := `
		INSERT INTO rentals (property_id, tenant_id, rental_type, check_in, check_out, amount, people_count, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		rental.PropertyID,
		rental.TenantID,
		rental.RentalType,
		rental.CheckIn,
		rental.CheckOut,
		rental.Amount,
		rental.PeopleCount,
		nullIfEmpty(rental.Notes),
		rental.Status,
	).Scan(&rental.ID, &rental.CreatedAt, &rental.UpdatedAt)
}

func (r *RentalRepository) Update(ctx context.Context, q DBTX, rental *models.Rental) error {
	query := `
		UPDATE rentals
		SET property_id = $1, tenant_id = $2, rental_type = $3, check_in = $4, check_out = $5,
		    amount = $6, people_count = $7, notes = $8, status = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		rental.PropertyID,
		rental.TenantID,
		rental.RentalType,
		rental.CheckIn,
		rental.CheckOut,
		rental.Amount,
		rental.PeopleCount,
		nullIfEmpty(rental.Notes),
		rental.Status,
		rental.ID,
	).Scan(&rental.UpdatedAt)
	return notFound(err, "rental", rental.ID)
}

func (r *RentalRepository) Get(ctx context.Context, id int) (*models.Rental, error) {
	rental, err := scanRental(r.DB.QueryRow(ctx, rentalSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "rental", id)
	}
	return rental, nil
}

// GetForUpdate locks the rental row inside q's transaction.
func (r *RentalRepository) GetForUpdate(ctx context.Context, q DBTX, id int) (*models.Rental, error) {
	var locked int
	if err := q.QueryRow(ctx, `SELECT id FROM rentals WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
		return nil, notFound(err, "rental", id)
	}
	rental, err := scanRental(q.QueryRow(ctx, rentalSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "rental", id)
	}
	return rental, nil
}

func (r *RentalRepository) List(ctx context.Context, f models.RentalFilter, opts ListOptions) ([]*models.Rental, int, error) {
	var w whereBuilder
	if f.PropertyID > 0 {
		w.add("r.property_id = ?", f.PropertyID)
	}
	if f.TenantID > 0 {
		w.add("r.tenant_id = ?", f.TenantID)
	}
	if f.Status != "" {
		w.add("r.status = ?", f.Status)
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM rentals r`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, rentalSelect+w.sql()+` ORDER BY r.check_in DESC NULLS LAST, r.id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	rentals, err := collectRentals(rows)
	return rentals, total, err
}

// ListOccupiedByProperty returns the occupied rentals the booking guard checks against.
func (r *RentalRepository) ListOccupiedByProperty(ctx context.Context, q DBTX, propertyID int) ([]*models.Rental, error) {
	rows, err := q.Query(ctx, rentalSelect+`
		WHERE r.property_id = $1 AND r.status = 'occupied'
		ORDER BY r.check_in, r.id
	`, propertyID)
	if err != nil {
		return nil, err
	}
	return collectRentals(rows)
}

func (r *RentalRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rental %d: %w", id, ErrNotFound)
	}
	return nil
}

// OccupiedRentalsEndingOn feeds the alert sweep: occupied rentals checking out on date, with paid totals.
func (r *RentalRepository) OccupiedRentalsEndingOn(ctx context.Context, date time.Time) ([]alerts.EndingRental, error) {
	rows, err := r.DB.Query(ctx, rentalSelect+`
		WHERE r.status = 'occupied' AND r.check_out = $1 AND p.deleted_at IS NULL
		ORDER BY r.id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query rentals ending on %s: %w", date.Format("2006-01-02"), err)
	}
	rentals, err := collectRentals(rows)
	if err != nil {
		return nil, err
	}

	out := make([]alerts.EndingRental, 0, len(rentals))
	for _, rental := range rentals {
		e := alerts.EndingRental{
			ID:           rental.ID,
			PropertyName: rental.PropertyName,
			RentalType:   rental.RentalType,
			TenantName:   rental.TenantName,
			TenantEmail:  rental.TenantEmail,
			Amount:       rental.Amount,
			Paid:         rental.TotalPaid,
		}
		if rental.CheckIn != nil {
			e.CheckIn = *rental.CheckIn
		}
		if rental.CheckOut != nil {
			e.CheckOut = *rental.CheckOut
		}
		out = append(out, e)
	}
	return out, nil
}

// ListExpiredOccupied returns occupied rentals whose check-out is before today.
func (r *RentalRepository) ListExpiredOccupied(ctx context.Context, today time.Time) ([]*models.Rental, error) {
	rows, err := r.DB.Query(ctx, rentalSelect+`
		WHERE r.status = 'occupied' AND r.check_out < $1 AND p.deleted_at IS NULL
		ORDER BY r.check_out, r.id
	`, today)
	if err != nil {
		return nil, err
	}
	return collectRentals(rows)
}
