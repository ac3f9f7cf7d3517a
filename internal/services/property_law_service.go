package services

import (
	"context"
	"strings"

	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

type PropertyLawService struct {
	Repo       *repositories.PropertyLawRepository
	Properties *repositories.PropertyRepository
}

func NewPropertyLawService(repo *repositories.PropertyLawRepository, properties *repositories.PropertyRepository) *PropertyLawService {
	return &PropertyLawService{Repo: repo, Properties: properties}
}

func buildPropertyLaw(req *models.PropertyLawRequest) (*models.PropertyLaw, error) {
	if req.PropertyID <= 0 {
		return nil, invalid("property_id", "is required")
	}
	if err := requireText("entity_name", req.EntityName); err != nil {
		return nil, err
	}
	if err := requireText("legal_number", req.LegalNumber); err != nil {
		return nil, err
	}
	if err := nonNegative("original_amount", req.OriginalAmount); err != nil {
		return nil, err
	}
	doc, err := optionalURL("document_url", req.DocumentURL)
	if err != nil {
		return nil, err
	}
	return &models.PropertyLaw{
		PropertyID:     req.PropertyID,
		EntityName:     strings.TrimSpace(req.EntityName),
		DocumentURL:    doc,
		OriginalAmount: req.OriginalAmount,
		LegalNumber:    strings.TrimSpace(req.LegalNumber),
		IsPaid:         req.IsPaid,
	}, nil
}

func (s *PropertyLawService) Create(ctx context.Context, req *models.PropertyLawRequest) (*models.PropertyLaw, error) {
	l, err := buildPropertyLaw(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.Properties.Get(ctx, l.PropertyID); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, l.ID)
}

func (s *PropertyLawService) Get(ctx context.Context, id int) (*models.PropertyLaw, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PropertyLawService) List(ctx context.Context, f models.PropertyLawFilter, opts repositories.ListOptions) ([]*models.PropertyLaw, int, error) {
	return s.Repo.List(ctx, f, opts)
}

func (s *PropertyLawService) Update(ctx context.Context, id int, req *models.PropertyLawRequest) (*models.PropertyLaw, error) {
	l, err := buildPropertyLaw(req)
	if err != nil {
		return nil, err
	}
	l.ID = id
	if _, err := s.Properties.Get(ctx, l.PropertyID); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *PropertyLawService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
