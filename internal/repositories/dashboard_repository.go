package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"property-backend/internal/models"
)

type DashboardRepository struct {
	DB *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

// Summary computes headline counts; monthStart/monthEnd bound the income window as [start, end).
func (r *DashboardRepository) Summary(ctx context.Context, monthStart, monthEnd time.Time) (*models.DashboardSummary, error) {
	s := &models.DashboardSummary{}
	err := r.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM properties WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM rentals WHERE status = 'occupied'),
			(SELECT COALESCE(SUM(GREATEST(o.amount - COALESCE(pay.total, 0), 0)), 0)
			   FROM obligations o
			   LEFT JOIN LATERAL (
			       SELECT SUM(op.amount) AS total FROM obligation_payments op WHERE op.obligation_id = o.id
			   ) pay ON TRUE),
			(SELECT COALESCE(SUM(amount), 0) FROM rental_payments WHERE payment_date >= $1 AND payment_date < $2)
	`, monthStart, monthEnd).Scan(&s.Properties, &s.OccupiedRentals, &s.OutstandingBalance, &s.MonthIncome)
	if err != nil {
		return nil, err
	}
	return s, nil
}
