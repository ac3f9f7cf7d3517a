package services

import (
	"context"
	"strings"

	"property-backend/internal/cache"
	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

type PropertyService struct {
	Repo    *repositories.PropertyRepository
	Details *repositories.PropertyDetailsRepository
}

func NewPropertyService(repo *repositories.PropertyRepository, details *repositories.PropertyDetailsRepository) *PropertyService {
	return &PropertyService{Repo: repo, Details: details}
}

func buildProperty(req *models.PropertyRequest) (*models.Property, error) {
	if err := requireText("name", req.Name); err != nil {
		return nil, err
	}
	return &models.Property{
		Name:         strings.TrimSpace(req.Name),
		Use:          req.Use,
		Address:      req.Address,
		Location:     req.Location,
		ZipCode:      req.ZipCode,
		BuildingType: req.BuildingType,
		City:         req.City,
	}, nil
}

func (s *PropertyService) Create(ctx context.Context, req *models.PropertyRequest) (*models.Property, error) {
	p, err := buildProperty(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx)
	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, id int) (*models.Property, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PropertyService) List(ctx context.Context, opts repositories.ListOptions) ([]*models.Property, int, error) {
	return s.Repo.List(ctx, opts)
}

func (s *PropertyService) Update(ctx context.Context, id int, req *models.PropertyRequest) (*models.Property, error) {
	p, err := buildProperty(req)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *PropertyService) Delete(ctx context.Context, id int) error {
	if err := s.Repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}

func buildPropertyDetails(propertyID int, req *models.PropertyDetailsRequest) (*models.PropertyDetails, error) {
	counts := []struct {
		field string
		n     int
	}{
		{"bedrooms", req.Bedrooms},
		{"bathrooms", req.Bathrooms},
		{"floors", req.Floors},
		{"buildings", req.Buildings},
	}
	for _, c := range counts {
		if err := nonNegativeInt(c.field, c.n); err != nil {
			return nil, err
		}
	}
	buildings := req.Buildings
	if buildings == 0 {
		buildings = 1
	}
	return &models.PropertyDetails{
		PropertyID:   propertyID,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Floors:       req.Floors,
		Buildings:    buildings,
		Observations: strings.TrimSpace(req.Observations),
	}, nil
}

// GetDetails returns the details of a live property.
func (s *PropertyService) GetDetails(ctx context.Context, propertyID int) (*models.PropertyDetails, error) {
	if _, err := s.Repo.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.Details.Get(ctx, propertyID)
}

// SaveDetails creates or replaces the details row of a live property.
func (s *PropertyService) SaveDetails(ctx context.Context, propertyID int, req *models.PropertyDetailsRequest) (*models.PropertyDetails, error) {
	d, err := buildPropertyDetails(propertyID, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	if err := s.Details.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
