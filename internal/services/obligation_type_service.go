package services

import (
	"context"
	"strings"

	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

type ObligationTypeService struct {
	Repo *repositories.ObligationTypeRepository
}

func NewObligationTypeService(repo *repositories.ObligationTypeRepository) *ObligationTypeService {
	return &ObligationTypeService{Repo: repo}
}

// buildObligationType normalizes names to lower case so "Tax" and "tax" collide.
func buildObligationType(name string) (*models.ObligationType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len(name) > 50 {
		return nil, invalid("name", "must be at most 50 characters")
	}
	return &models.ObligationType{Name: name}, nil
}

func (s *ObligationTypeService) List(ctx context.Context) ([]*models.ObligationType, error) {
	return s.Repo.List(ctx)
}

func (s *ObligationTypeService) Create(ctx context.Context, name string) (*models.ObligationType, error) {
	t, err := buildObligationType(name)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ObligationTypeService) Delete(ctx context.Context, id int) error {
	err := s.Repo.Delete(ctx, id)
	if repositories.IsForeignKeyViolation(err) {
		return invalid("obligation_type", "is used by obligations and cannot be deleted")
	}
	return err
}
