package services

import (
	"context"
	"strings"

	"property-backend/internal/cache"
	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

// PaymentService records payments against rentals and obligations.
type PaymentService struct {
	Repo *repositories.PaymentRepository
}

func NewPaymentService(repo *repositories.PaymentRepository) *PaymentService {
	return &PaymentService{Repo: repo}
}

func (s *PaymentService) AddRentalPayment(ctx context.Context, rentalID int, req *models.RentalPaymentRequest) (*models.RentalPayment, error) {
	if req.PaymentMethodID <= 0 {
		return nil, invalid("payment_method_id", "is required")
	}
	if err := positive("amount", req.Amount); err != nil {
		return nil, err
	}
	date, err := requiredDate("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}
	p := &models.RentalPayment{
		RentalID:        rentalID,
		PaymentMethodID: req.PaymentMethodID,
		Location:        req.Location,
		PaymentDate:     date,
		Amount:          req.Amount,
		VoucherRef:      req.VoucherRef,
	}
	if err := s.Repo.CreateRentalPayment(ctx, p); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx)
	return p, nil
}

func (s *PaymentService) ListRentalPayments(ctx context.Context, rentalID int, f models.PaymentFilter, opts repositories.ListOptions) ([]*models.RentalPayment, int, error) {
	return s.Repo.ListRentalPayments(ctx, rentalID, f, opts)
}

func (s *PaymentService) DeleteRentalPayment(ctx context.Context, id int) error {
	if err := s.Repo.DeleteRentalPayment(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}

func (s *PaymentService) AddObligationPayment(ctx context.Context, obligationID int, req *models.ObligationPaymentRequest) (*models.ObligationPayment, error) {
	if req.PaymentMethodID <= 0 {
		return nil, invalid("payment_method_id", "is required")
	}
	if err := positive("amount", req.Amount); err != nil {
		return nil, err
	}
	date, err := requiredDate("payment_date", req.PaymentDate)
	if err != nil {
		return nil, err
	}
	p := &models.ObligationPayment{
		ObligationID:    obligationID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
		PaymentDate:     date,
		VoucherRef:      req.VoucherRef,
	}
	if err := s.Repo.CreateObligationPayment(ctx, p); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx)
	return p, nil
}

func (s *PaymentService) ListObligationPayments(ctx context.Context, obligationID int, f models.PaymentFilter, opts repositories.ListOptions) ([]*models.ObligationPayment, int, error) {
	return s.Repo.ListObligationPayments(ctx, obligationID, f, opts)
}

func (s *PaymentService) DeleteObligationPayment(ctx context.Context, id int) error {
	if err := s.Repo.DeleteObligationPayment(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}

func (s *PaymentService) ListPaymentMethods(ctx context.Context) ([]*models.PaymentMethod, error) {
	return s.Repo.ListPaymentMethods(ctx)
}

func (s *PaymentService) CreatePaymentMethod(ctx context.Context, name string) (*models.PaymentMethod, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	m := &models.PaymentMethod{Name: strings.TrimSpace(name)}
	if err := s.Repo.CreatePaymentMethod(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
