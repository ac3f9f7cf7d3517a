package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db    Pinger
	redis func(ctx context.Context) error
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
	Redis    ComponentHealth `json:"redis"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// NewHealthChecker takes an optional redis ping; nil reports redis as disabled.
func NewHealthChecker(db Pinger, redisPing func(ctx context.Context) error) *HealthChecker {
	return &HealthChecker{db: db, redis: redisPing}
}

// CheckBasic reports unhealthy only when the database is down; redis is optional.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	db := check(ctx, h.db.Ping)
	rd := ComponentHealth{Status: "disabled"}
	if h.redis != nil {
		rd = check(ctx, h.redis)
	}

	status := "healthy"
	if db.Status != "healthy" {
		status = "unhealthy"
	} else if rd.Status == "unhealthy" {
		status = "degraded"
	}
	return HealthStatus{Status: status, Database: db, Redis: rd}
}

func check(ctx context.Context, ping func(context.Context) error) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return ComponentHealth{Status: "unhealthy", ResponseTime: elapsed}
	}
	return ComponentHealth{Status: "healthy", ResponseTime: elapsed}
}
