package services

import (
	"context"
	"encoding/json"

	"property-backend/internal/cache"
	"property-backend/internal/models"
	"property-backend/internal/repositories"
	"property-backend/internal/timeutil"
)

type DashboardService struct {
	Repo *repositories.DashboardRepository
}

func NewDashboardService(repo *repositories.DashboardRepository) *DashboardService {
	return &DashboardService{Repo: repo}
}

// Summary serves from redis when warm and recomputes otherwise.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	if data, ok := cache.GetCachedDashboard(ctx); ok {
		var cached models.DashboardSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	today := timeutil.Today()
	monthStart := today.AddDate(0, 0, 1-today.Day())
	monthEnd := monthStart.AddDate(0, 1, 0)

	sum, err := s.Repo.Summary(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	sum.GeneratedAt = timeutil.Now()

	if data, err := json.Marshal(sum); err == nil {
		cache.CacheDashboard(ctx, data)
	}
	return sum, nil
}
