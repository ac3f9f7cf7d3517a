package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"property-backend/internal/booking"
	"property-backend/internal/cache"
	"property-backend/internal/metrics"
	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

var rentalTypes = []string{models.RentalTypeMonthly, models.RentalTypeDaily, models.RentalTypeAirbnb}

// RentalService owns rental writes. Every create and update runs the booking guard
// inside the same transaction that commits the row.
type RentalService struct {
	DB         *pgxpool.Pool
	Repo       *repositories.RentalRepository
	Properties *repositories.PropertyRepository
	Guard      *booking.Guard
	log        *zap.Logger
}

func NewRentalService(db *pgxpool.Pool, repo *repositories.RentalRepository, properties *repositories.PropertyRepository, guard *booking.Guard, log *zap.Logger) *RentalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RentalService{DB: db, Repo: repo, Properties: properties, Guard: guard, log: log}
}

// BuildRental converts a request into a rental, checking field formats only.
// Booking rules are left to the guard.
func BuildRental(req *models.RentalRequest) (*models.Rental, error) {
	if req.PropertyID <= 0 {
		return nil, invalid("property_id", "is required")
	}
	if req.RentalType == "" {
		req.RentalType = models.RentalTypeMonthly
	}
	if err := oneOf("rental_type", req.RentalType, rentalTypes); err != nil {
		return nil, err
	}
	if err := nonNegative("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.PeopleCount == 0 {
		req.PeopleCount = 1
	}
	if req.PeopleCount < 0 {
		return nil, invalid("people_count", "must be positive")
	}
	checkIn, err := optionalDate("check_in", req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := optionalDate("check_out", req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.TenantID != nil && *req.TenantID <= 0 {
		req.TenantID = nil
	}

	return &models.Rental{
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		RentalType:  req.RentalType,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Amount:      req.Amount,
		PeopleCount: req.PeopleCount,
		Notes:       req.Notes,
		Status:      req.Status,
	}, nil
}

func (s *RentalService) Create(ctx context.Context, req *models.RentalRequest) (*models.Rental, error) {
	rental, err := BuildRental(req)
	if err != nil {
		return nil, err
	}
	if err := s.write(ctx, rental, true); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, rental.ID)
}

func (s *RentalService) Update(ctx context.Context, id int, req *models.RentalRequest) (*models.Rental, error) {
	rental, err := BuildRental(req)
	if err != nil {
		return nil, err
	}
	rental.ID = id
	if err := s.write(ctx, rental, false); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *RentalService) write(ctx context.Context, rental *models.Rental, insert bool) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rental write: %w", err)
	}
	defer tx.Rollback(ctx)

	// The property row lock serializes writers for the same property, so the
	// overlap check below sees every committed occupied rental.
	if err := s.Properties.LockForUpdate(ctx, tx, rental.PropertyID); err != nil {
		return err
	}
	if !insert {
		if _, err := s.Repo.GetForUpdate(ctx, tx, rental.ID); err != nil {
			return err
		}
	}

	occupied, err := s.Repo.ListOccupiedByProperty(ctx, tx, rental.PropertyID)
	if err != nil {
		return fmt.Errorf("load occupied rentals: %w", err)
	}
	existing := make([]booking.Period, 0, len(occupied))
	for _, r := range occupied {
		existing = append(existing, r.Period())
	}

	if err := s.Guard.Validate(rental.Period(), existing); err != nil {
		var v *booking.Violation
		if errors.As(err, &v) {
			metrics.BookingViolations.WithLabelValues(string(v.Kind)).Inc()
		}
		return err
	}

	if insert {
		err = s.Repo.Create(ctx, tx, rental)
	} else {
		err = s.Repo.Update(ctx, tx, rental)
	}
	if err != nil {
		return s.writeFailed(ctx, tx, err, rental)
	}

	if err := tx.Commit(ctx); err != nil {
		return s.writeFailed(ctx, tx, err, rental)
	}

	cache.InvalidateDashboard(ctx)
	s.log.Info("rental saved",
		zap.Int("rental_id", rental.ID),
		zap.Int("property_id", rental.PropertyID),
		zap.String("status", rental.Status),
		zap.Bool("created", insert),
	)
	return nil
}

// writeFailed rolls back and, when the exclusion constraint fired, reloads the
// committed occupied rentals so the violation can name the clashing period.
func (s *RentalService) writeFailed(ctx context.Context, tx pgx.Tx, err error, rental *models.Rental) error {
	if !repositories.IsExclusionViolation(err) {
		return mapRentalWriteError(err, rental, nil)
	}
	_ = tx.Rollback(ctx)
	occupied, lerr := s.Repo.ListOccupiedByProperty(ctx, s.DB, rental.PropertyID)
	if lerr != nil {
		s.log.Warn("reload occupied rentals after overlap", zap.Int("property_id", rental.PropertyID), zap.Error(lerr))
	}
	return mapRentalWriteError(err, rental, occupied)
}

// mapRentalWriteError turns constraint failures that slipped past the guard into typed errors.
// occupied is the committed state used to fill the overlap conflict.
func mapRentalWriteError(err error, rental *models.Rental, occupied []*models.Rental) error {
	switch {
	case repositories.IsExclusionViolation(err):
		metrics.BookingViolations.WithLabelValues(string(booking.OverlappingBooking)).Inc()
		v := &booking.Violation{
			Kind:   booking.OverlappingBooking,
			Field:  "check_in",
			Reason: "property is already occupied in that date range",
		}
		candidate := rental.Period()
		for _, other := range occupied {
			if other.ID == rental.ID {
				continue
			}
			p := other.Period()
			if booking.Overlaps(candidate, p) {
				v.Conflict = &p
				break
			}
		}
		return v
	case repositories.IsForeignKeyViolation(err):
		return fmt.Errorf("tenant %v: %w", derefInt(rental.TenantID), repositories.ErrNotFound)
	}
	return err
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func (s *RentalService) Get(ctx context.Context, id int) (*models.Rental, error) {
	return s.Repo.Get(ctx, id)
}

func (s *RentalService) List(ctx context.Context, f models.RentalFilter, opts repositories.ListOptions) ([]*models.Rental, int, error) {
	return s.Repo.List(ctx, f, opts)
}

func (s *RentalService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}

// GetForTenant returns the rental only when it belongs to tenantID.
func (s *RentalService) GetForTenant(ctx context.Context, tenantID, id int) (*models.Rental, error) {
	rental, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.TenantID == nil || *rental.TenantID != tenantID {
		return nil, fmt.Errorf("rental %d: %w", id, repositories.ErrNotFound)
	}
	return rental, nil
}

// ListExpired reports occupied rentals past their check-out. Status is left untouched;
// releasing a unit is an explicit update that clears the tenant.
func (s *RentalService) ListExpired(ctx context.Context, today time.Time) ([]*models.Rental, error) {
	return s.Repo.ListExpiredOccupied(ctx, today)
}
