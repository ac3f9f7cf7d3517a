package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"property-backend/internal/auth"
	"property-backend/internal/models"
)

type stubUsers map[int]*models.User

func (s stubUsers) Get(_ context.Context, id int) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func setup(t *testing.T) (*AuthMiddleware, *auth.JWTManager, stubUsers) {
	t.Helper()
	tenant := 9
	users := stubUsers{
		1: {ID: 1, Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true},
		2: {ID: 2, Email: "client@example.com", Role: models.RoleClient, TenantID: &tenant, IsActive: true},
		3: {ID: 3, Email: "gone@example.com", Role: models.RoleAdmin, IsActive: false},
	}
	jm := auth.NewJWTManager("test-secret", "test", 1)
	return NewAuthMiddleware(jm, users), jm, users
}

func bearer(t *testing.T, jm *auth.JWTManager, u *models.User) string {
	t.Helper()
	tok, err := jm.GenerateToken(u)
	require.NoError(t, err)
	return "Bearer " + tok
}

func refreshBearer(t *testing.T, jm *auth.JWTManager, u *models.User) string {
	t.Helper()
	tok, _, err := jm.GenerateRefreshToken(u)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireRole(t *testing.T) {
	m, jm, users := setup(t)
	var gotTenant int
	h := m.RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	client := m.RequireRole(models.RoleClient)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant, _ = GetTenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		h      http.Handler
		want   int
	}{
		{"no header", "", h, http.StatusUnauthorized},
		{"bad scheme", "Token abc", h, http.StatusUnauthorized},
		{"bad token", "Bearer abc", h, http.StatusUnauthorized},
		{"admin", bearer(t, jm, users[1]), h, http.StatusNoContent},
		{"client on admin route", bearer(t, jm, users[2]), h, http.StatusForbidden},
		{"suspended", bearer(t, jm, users[3]), h, http.StatusForbidden},
		{"client route", bearer(t, jm, users[2]), client, http.StatusNoContent},
		{"refresh token", refreshBearer(t, jm, users[1]), h, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			tc.h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
	assert.Equal(t, 9, gotTenant)
}

func TestPanicRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := PanicRecovery(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRequestLoggerSkipsHealthAndMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/properties", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, int64(http.StatusTeapot), entry.ContextMap()["status"])
}
