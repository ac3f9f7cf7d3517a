package services

import (
	"context"
	"strings"

	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

// EnserService manages the furniture catalogue and what each property holds.
type EnserService struct {
	Repo       *repositories.EnserRepository
	Properties *repositories.PropertyRepository
}

func NewEnserService(repo *repositories.EnserRepository, properties *repositories.PropertyRepository) *EnserService {
	return &EnserService{Repo: repo, Properties: properties}
}

func buildEnser(req *models.EnserRequest) (*models.Enser, error) {
	if err := requireText("name", req.Name); err != nil {
		return nil, err
	}
	if err := nonNegative("price", req.Price); err != nil {
		return nil, err
	}
	condition := strings.ToLower(strings.TrimSpace(req.Condition))
	if err := oneOf("condition", condition, models.EnserConditions); err != nil {
		return nil, err
	}
	return &models.Enser{
		Name:      strings.TrimSpace(req.Name),
		Price:     req.Price,
		Condition: condition,
	}, nil
}

func buildInventoryItem(propertyID int, req *models.InventoryItemRequest) (*models.InventoryItem, error) {
	if req.EnserID <= 0 {
		return nil, invalid("enser_id", "is required")
	}
	media, err := optionalURL("media_url", req.MediaURL)
	if err != nil {
		return nil, err
	}
	return &models.InventoryItem{PropertyID: propertyID, EnserID: req.EnserID, MediaURL: media}, nil
}

func (s *EnserService) Create(ctx context.Context, req *models.EnserRequest) (*models.Enser, error) {
	e, err := buildEnser(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EnserService) Get(ctx context.Context, id int) (*models.Enser, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EnserService) List(ctx context.Context, f models.EnserFilter, opts repositories.ListOptions) ([]*models.Enser, int, error) {
	if f.Condition != "" {
		if err := oneOf("condition", f.Condition, models.EnserConditions); err != nil {
			return nil, 0, err
		}
	}
	return s.Repo.List(ctx, f, opts)
}

func (s *EnserService) Update(ctx context.Context, id int, req *models.EnserRequest) (*models.Enser, error) {
	e, err := buildEnser(req)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EnserService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *EnserService) AddItem(ctx context.Context, propertyID int, req *models.InventoryItemRequest) (*models.InventoryItem, error) {
	it, err := buildInventoryItem(propertyID, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.Properties.Get(ctx, propertyID); err != nil {
		return nil, err
	}
	if _, err := s.Repo.Get(ctx, it.EnserID); err != nil {
		return nil, err
	}
	if err := s.Repo.AddItem(ctx, it); err != nil {
		return nil, err
	}
	return s.Repo.GetItem(ctx, propertyID, it.ID)
}

func (s *EnserService) ListInventory(ctx context.Context, propertyID int, opts repositories.ListOptions) ([]*models.InventoryItem, int, error) {
	if _, err := s.Properties.Get(ctx, propertyID); err != nil {
		return nil, 0, err
	}
	return s.Repo.ListInventory(ctx, propertyID, opts)
}

func (s *EnserService) RemoveItem(ctx context.Context, propertyID, id int) error {
	return s.Repo.RemoveItem(ctx, propertyID, id)
}
