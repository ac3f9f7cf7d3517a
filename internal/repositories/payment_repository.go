package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"property-backend/internal/models"
)

// PaymentRepository stores rental and obligation payments.
type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func paymentFilter(w *whereBuilder, alias string, f models.PaymentFilter) {
	if f.DateFrom != nil {
		w.add(alias+".payment_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add(alias+".payment_date <= ?", *f.DateTo)
	}
	if f.AmountMin != nil {
		w.add(alias+".amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		w.add(alias+".amount <= ?", *f.AmountMax)
	}
}

func (r *PaymentRepository) CreateRentalPayment(ctx context.Context, p *models.RentalPayment) error {
	query := `
		INSERT INTO rental_payments (rental_id, payment_method_id, location, payment_date, amount, voucher_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query, p.RentalID, p.PaymentMethodID, p.Location, p.PaymentDate, p.Amount, nullIfEmpty(p.VoucherRef)).
		Scan(&p.ID, &p.CreatedAt)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("rental %d or payment method %d: %w", p.RentalID, p.PaymentMethodID, ErrNotFound)
	}
	return err
}

// ListRentalPayments lists payments of one rental, or of all rentals when rentalID is zero.
func (r *PaymentRepository) ListRentalPayments(ctx context.Context, rentalID int, f models.PaymentFilter, opts ListOptions) ([]*models.RentalPayment, int, error) {
	var w whereBuilder
	if rentalID > 0 {
		w.add("rp.rental_id = ?", rentalID)
	}
	paymentFilter(&w, "rp", f)

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM rental_payments rp`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, `
		SELECT rp.id, rp.rental_id, rp.payment_method_id, pm.name, rp.location, rp.payment_date, rp.amount,
		       COALESCE(rp.voucher_ref, ''), rp.created_at
		FROM rental_payments rp
		JOIN payment_methods pm ON pm.id = rp.payment_method_id`+w.sql()+`
		ORDER BY rp.payment_date DESC, rp.id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []*models.RentalPayment
	for rows.Next() {
		p := &models.RentalPayment{}
		if err := rows.Scan(&p.ID, &p.RentalID, &p.PaymentMethodID, &p.PaymentMethodName, &p.Location,
			&p.PaymentDate, &p.Amount, &p.VoucherRef, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

func (r *PaymentRepository) DeleteRentalPayment(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM rental_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rental payment %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *PaymentRepository) CreateObligationPayment(ctx context.Context, p *models.ObligationPayment) error {
	query := `
		INSERT INTO obligation_payments (obligation_id, payment_method_id, amount, payment_date, voucher_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(ctx, query, p.ObligationID, p.PaymentMethodID, p.Amount, p.PaymentDate, nullIfEmpty(p.VoucherRef)).
		Scan(&p.ID, &p.CreatedAt)
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("obligation %d or payment method %d: %w", p.ObligationID, p.PaymentMethodID, ErrNotFound)
	}
	return err
}

func (r *PaymentRepository) ListObligationPayments(ctx context.Context, obligationID int, f models.PaymentFilter, opts ListOptions) ([]*models.ObligationPayment, int, error) {
	var w whereBuilder
	if obligationID > 0 {
		w.add("op.obligation_id = ?", obligationID)
	}
	paymentFilter(&w, "op", f)

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM obligation_payments op`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageSQL, args := w.page(opts)
	rows, err := r.DB.Query(ctx, `
		SELECT op.id, op.obligation_id, op.payment_method_id, pm.name, op.amount, op.payment_date,
		       COALESCE(op.voucher_ref, ''), op.created_at
		FROM obligation_payments op
		JOIN payment_methods pm ON pm.id = op.payment_method_id`+w.sql()+`
		ORDER BY op.payment_date DESC, op.id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []*models.ObligationPayment
	for rows.Next() {
		p := &models.ObligationPayment{}
		if err := rows.Scan(&p.ID, &p.ObligationID, &p.PaymentMethodID, &p.PaymentMethodName, &p.Amount,
			&p.PaymentDate, &p.VoucherRef, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

func (r *PaymentRepository) DeleteObligationPayment(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM obligation_payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("obligation payment %d: %w", id, ErrNotFound)
	}
	return nil
}

// RentalPaidTotal sums a rental's payments.
func (r *PaymentRepository) RentalPaidTotal(ctx context.Context, rentalID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM rental_payments WHERE rental_id = $1`, rentalID).Scan(&total)
	return total, err
}

func (r *PaymentRepository) ListPaymentMethods(ctx context.Context) ([]*models.PaymentMethod, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM payment_methods ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []*models.PaymentMethod
	for rows.Next() {
		m := &models.PaymentMethod{}
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func (r *PaymentRepository) CreatePaymentMethod(ctx context.Context, m *models.PaymentMethod) error {
	err := r.DB.QueryRow(ctx, `INSERT INTO payment_methods (name) VALUES ($1) RETURNING id`, m.Name).Scan(&m.ID)
	if IsUniqueViolation(err) {
		return fmt.Errorf("payment method %q: %w", m.Name, ErrDuplicate)
	}
	return err
}
