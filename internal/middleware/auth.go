package middleware

import (
	"context"
	"net/http"
	"strings"

	"property-backend/internal/auth"
	"property-backend/internal/models"
	"property-backend/pkg/utils"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"
const TenantIDKey contextKey = "tenant_id"

// UserLookup resolves the current account state so suspensions apply immediately.
type UserLookup interface {
	Get(ctx context.Context, id int) (*models.User, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      UserLookup
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, users: users}
}

// Authenticate validates the bearer token and loads the user into the context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, status, msg := m.resolve(r)
		if user == nil {
			utils.Error(w, status, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// RequireRole authenticates and then rejects users whose role is not listed.
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, status, msg := m.resolve(r)
			if user == nil {
				utils.Error(w, status, msg)
				return
			}
			for _, role := range allowedRoles {
				if user.Role == role {
					next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
					return
				}
			}
			utils.Error(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

func (m *AuthMiddleware) resolve(r *http.Request) (*models.User, int, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, http.StatusUnauthorized, "Authorization header required"
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, http.StatusUnauthorized, "Invalid authorization format"
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	user, err := m.users.Get(r.Context(), claims.UserID)
	if err != nil {
		return nil, http.StatusUnauthorized, "User not found"
	}
	if !user.IsActive {
		return nil, http.StatusForbidden, "Account suspended. Please contact administrator."
	}
	return user, 0, ""
}

func withUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, user.ID)
	ctx = context.WithValue(ctx, EmailKey, user.Email)
	ctx = context.WithValue(ctx, RoleKey, user.Role)
	if user.TenantID != nil {
		ctx = context.WithValue(ctx, TenantIDKey, *user.TenantID)
	}
	return ctx
}

func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetTenantIDFromContext is set only for client users linked to a tenant.
func GetTenantIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(TenantIDKey).(int)
	return id, ok
}
