package services

import (
	"context"
	"strings"

	"property-backend/internal/cache"
	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

type ObligationService struct {
	Repo  *repositories.ObligationRepository
	Types *repositories.ObligationTypeRepository
}

func NewObligationService(repo *repositories.ObligationRepository, types *repositories.ObligationTypeRepository) *ObligationService {
	return &ObligationService{Repo: repo, Types: types}
}

func buildObligation(req *models.ObligationRequest) (*models.Obligation, error) {
	if req.PropertyID <= 0 {
		return nil, invalid("property_id", "is required")
	}
	if err := requireText("obligation_type", req.ObligationType); err != nil {
		return nil, err
	}
	if err := requireText("entity_name", req.EntityName); err != nil {
		return nil, err
	}
	if err := nonNegative("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.Temporality == "" {
		req.Temporality = "one_time"
	}
	if err := oneOf("temporality", req.Temporality, models.Temporalities); err != nil {
		return nil, err
	}
	due, err := requiredDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	return &models.Obligation{
		PropertyID:     req.PropertyID,
		ObligationType: strings.ToLower(strings.TrimSpace(req.ObligationType)),
		EntityName:     strings.TrimSpace(req.EntityName),
		Amount:         req.Amount,
		DueDate:        due,
		Temporality:    req.Temporality,
	}, nil
}

// checkType rejects obligation types missing from the catalogue.
func (s *ObligationService) checkType(ctx context.Context, name string) error {
	ok, err := s.Types.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return invalid("obligation_type", "unknown obligation type %q", name)
	}
	return nil
}

func (s *ObligationService) Create(ctx context.Context, req *models.ObligationRequest) (*models.Obligation, error) {
	o, err := buildObligation(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkType(ctx, o.ObligationType); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx)
	return s.Repo.Get(ctx, o.ID)
}

func (s *ObligationService) Get(ctx context.Context, id int) (*models.Obligation, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ObligationService) List(ctx context.Context, f models.ObligationFilter, opts repositories.ListOptions) ([]*models.Obligation, int, error) {
	return s.Repo.List(ctx, f, opts)
}

func (s *ObligationService) Update(ctx context.Context, id int, req *models.ObligationRequest) (*models.Obligation, error) {
	o, err := buildObligation(req)
	if err != nil {
		return nil, err
	}
	o.ID = id
	if err := s.checkType(ctx, o.ObligationType); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, o); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx)
	return s.Repo.Get(ctx, id)
}

func (s *ObligationService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}
