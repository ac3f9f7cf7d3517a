package services

import (
	"context"

	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

type RepairService struct {
	Repo *repositories.RepairRepository
}

func NewRepairService(repo *repositories.RepairRepository) *RepairService {
	return &RepairService{Repo: repo}
}

func buildRepair(req *models.RepairRequest) (*models.Repair, error) {
	if req.PropertyID <= 0 {
		return nil, invalid("property_id", "is required")
	}
	if err := requireText("description", req.Description); err != nil {
		return nil, err
	}
	if err := nonNegative("cost", req.Cost); err != nil {
		return nil, err
	}
	date, err := requiredDate("repair_date", req.RepairDate)
	if err != nil {
		return nil, err
	}
	return &models.Repair{
		PropertyID:  req.PropertyID,
		Cost:        req.Cost,
		RepairDate:  date,
		Description: req.Description,
		Observation: req.Observation,
	}, nil
}

func (s *RepairService) Create(ctx context.Context, req *models.RepairRequest) (*models.Repair, error) {
	rp, err := buildRepair(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, rp); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, rp.ID)
}

func (s *RepairService) Get(ctx context.Context, id int) (*models.Repair, error) {
	return s.Repo.Get(ctx, id)
}

func (s *RepairService) List(ctx context.Context, propertyID int, opts repositories.ListOptions) ([]*models.Repair, int, error) {
	return s.Repo.List(ctx, propertyID, opts)
}

func (s *RepairService) Update(ctx context.Context, id int, req *models.RepairRequest) (*models.Repair, error) {
	rp, err := buildRepair(req)
	if err != nil {
		return nil, err
	}
	rp.ID = id
	if err := s.Repo.Update(ctx, rp); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *RepairService) Delete(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
