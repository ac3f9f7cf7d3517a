package services

import (
	"context"

	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

// RentalTermsService keeps the per-type record of a rental: deposit terms for
// monthly rentals, payout status for airbnb ones.
type RentalTermsService struct {
	Repo    *repositories.RentalTermsRepository
	Rentals *repositories.RentalRepository
}

func NewRentalTermsService(repo *repositories.RentalTermsRepository, rentals *repositories.RentalRepository) *RentalTermsService {
	return &RentalTermsService{Repo: repo, Rentals: rentals}
}

func buildMonthlyTerms(rentalID int, req *models.MonthlyTermsRequest) (*models.MonthlyTerms, error) {
	if err := nonNegative("deposit_amount", req.DepositAmount); err != nil {
		return nil, err
	}
	files, err := optionalURL("files_url", req.FilesURL)
	if err != nil {
		return nil, err
	}
	refundable := true
	if req.IsRefundable != nil {
		refundable = *req.IsRefundable
	}
	return &models.MonthlyTerms{
		RentalID:      rentalID,
		DepositAmount: req.DepositAmount,
		IsRefundable:  refundable,
		FilesURL:      files,
	}, nil
}

// requireType loads the rental and checks it is of the given type.
func (s *RentalTermsService) requireType(ctx context.Context, rentalID int, rentalType string) error {
	rental, err := s.Rentals.Get(ctx, rentalID)
	if err != nil {
		return err
	}
	if rental.RentalType != rentalType {
		return invalid("rental_type", "rental %d is a %s rental, not %s", rentalID, rental.RentalType, rentalType)
	}
	return nil
}

func (s *RentalTermsService) GetMonthly(ctx context.Context, rentalID int) (*models.MonthlyTerms, error) {
	if err := s.requireType(ctx, rentalID, models.RentalTypeMonthly); err != nil {
		return nil, err
	}
	return s.Repo.GetMonthly(ctx, rentalID)
}

func (s *RentalTermsService) SaveMonthly(ctx context.Context, rentalID int, req *models.MonthlyTermsRequest) (*models.MonthlyTerms, error) {
	m, err := buildMonthlyTerms(rentalID, req)
	if err != nil {
		return nil, err
	}
	if err := s.requireType(ctx, rentalID, models.RentalTypeMonthly); err != nil {
		return nil, err
	}
	if err := s.Repo.UpsertMonthly(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *RentalTermsService) GetAirbnb(ctx context.Context, rentalID int) (*models.AirbnbTerms, error) {
	if err := s.requireType(ctx, rentalID, models.RentalTypeAirbnb); err != nil {
		return nil, err
	}
	return s.Repo.GetAirbnb(ctx, rentalID)
}

func (s *RentalTermsService) SaveAirbnb(ctx context.Context, rentalID int, req *models.AirbnbTermsRequest) (*models.AirbnbTerms, error) {
	if err := s.requireType(ctx, rentalID, models.RentalTypeAirbnb); err != nil {
		return nil, err
	}
	a := &models.AirbnbTerms{RentalID: rentalID, IsPaid: req.IsPaid}
	if err := s.Repo.UpsertAirbnb(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
