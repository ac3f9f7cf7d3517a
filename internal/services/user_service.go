package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"property-backend/internal/auth"
	"property-backend/internal/models"
	"property-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	Tenants    *repositories.TenantRepository
	Revoked    *repositories.RevokedTokenRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, tenants *repositories.TenantRepository, revoked *repositories.RevokedTokenRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, Tenants: tenants, Revoked: revoked, JWTManager: jwtManager}
}

// Login verifies credentials and issues an access and a refresh token.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.JWTManager.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, RefreshToken: refresh, User: user}, nil
}

// Refresh exchanges a live refresh token for a new access token. The user must
// still exist and be active.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.JWTManager.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return nil, ErrInvalidToken
	}
	revoked, err := s.Revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	user, err := s.Repo.Get(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token}, nil
}

// Logout revokes a refresh token until it would have expired anyway.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.JWTManager.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return invalid("refresh_token", "is invalid or expired")
	}
	return s.Revoked.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time)
}

// PurgeRevokedTokens drops deny list rows whose tokens have expired.
func (s *UserService) PurgeRevokedTokens(ctx context.Context) error {
	_, err := s.Revoked.PurgeExpired(ctx, time.Now())
	return err
}

// CreateUser validates role/tenant coherence and stores a hashed password.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := requireText("name", req.Name); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		return nil, invalid("email", "is not a valid address")
	}
	if len(req.Password) < 8 {
		return nil, invalid("password", "must be at least 8 characters")
	}
	if req.Role == "" {
		req.Role = models.RoleClient
	}
	if err := oneOf("role", req.Role, []string{models.RoleAdmin, models.RoleClient}); err != nil {
		return nil, err
	}

	switch req.Role {
	case models.RoleClient:
		if req.TenantID == nil {
			return nil, invalid("tenant_id", "is required for client users")
		}
		if _, err := s.Tenants.Get(ctx, *req.TenantID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, invalid("tenant_id", "tenant %d does not exist", *req.TenantID)
			}
			return nil, err
		}
	case models.RoleAdmin:
		if req.TenantID != nil {
			return nil, invalid("tenant_id", "must be empty for admin users")
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		TenantID:     req.TenantID,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureAdmin creates the bootstrap admin unless the address already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, bool, error) {
	existing, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, err
	}
	u, err := s.CreateUser(ctx, &models.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// SetActive suspends or restores an account. The last active admin cannot be suspended.
func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	if !active {
		u, err := s.Repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u.Role == models.RoleAdmin {
			n, err := s.Repo.CountAdmins(ctx)
			if err != nil {
				return err
			}
			if n <= 1 {
				return invalid("id", "cannot suspend the last active admin")
			}
		}
	}
	return s.Repo.SetActive(ctx, id, active)
}
