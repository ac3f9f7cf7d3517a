package services

import (
	"context"
	"strings"

	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

type TenantService struct {
	Repo *repositories.TenantRepository
}

func NewTenantService(repo *repositories.TenantRepository) *TenantService {
	return &TenantService{Repo: repo}
}

func buildTenant(req *models.TenantRequest) (*models.Tenant, error) {
	if err := requireText("name", req.Name); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !strings.Contains(email, "@") {
		return nil, invalid("email", "is not a valid address")
	}
	return &models.Tenant{
		Name:         strings.TrimSpace(req.Name),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone1:       req.Phone1,
		Phone2:       req.Phone2,
		Observations: req.Observations,
	}, nil
}

func (s *TenantService) Create(ctx context.Context, req *models.TenantRequest) (*models.Tenant, error) {
	t, err := buildTenant(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TenantService) Get(ctx context.Context, id int) (*models.Tenant, error) {
	return s.Repo.Get(ctx, id)
}

func (s *TenantService) List(ctx context.Context, search string, opts repositories.ListOptions) ([]*models.Tenant, int, error) {
	return s.Repo.List(ctx, strings.TrimSpace(search), opts)
}

func (s *TenantService) Update(ctx context.Context, id int, req *models.TenantRequest) (*models.Tenant, error) {
	t, err := buildTenant(req)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *TenantService) Delete(ctx context.Context, id int) error {
	err := s.Repo.Delete(ctx, id)
	if repositories.IsForeignKeyViolation(err) {
		return invalid("tenant", "has rentals and cannot be deleted")
	}
	return err
}
