package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"property-backend/internal/auth"
	"property-backend/internal/handlers"
	"property-backend/internal/health"
	"property-backend/internal/middleware"
	"property-backend/internal/models"
)

type noUsers struct{}

func (noUsers) Get(context.Context, int) (*models.User, error) { return nil, errors.New("not found") }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter() http.Handler {
	log := zap.NewNop()
	authMW := middleware.NewAuthMiddleware(auth.NewJWTManager("secret", "test", 1), noUsers{})
	return NewRouter(Handlers{
		Auth:           handlers.NewAuthHandler(nil, log),
		User:           handlers.NewUserHandler(nil, log),
		Property:       handlers.NewPropertyHandler(nil, log),
		Tenant:         handlers.NewTenantHandler(nil, log),
		Rental:         handlers.NewRentalHandler(nil, nil, log),
		Obligation:     handlers.NewObligationHandler(nil, nil, log),
		PaymentMethod:  handlers.NewPaymentMethodHandler(nil, log),
		Repair:         handlers.NewRepairHandler(nil, log),
		PropertyLaw:    handlers.NewPropertyLawHandler(nil, log),
		Enser:          handlers.NewEnserHandler(nil, log),
		RentalTerms:    handlers.NewRentalTermsHandler(nil, log),
		ObligationType: handlers.NewObligationTypeHandler(nil, log),
		Dashboard:      handlers.NewDashboardHandler(nil, log),
		Alert:          handlers.NewAlertHandler(nil, log),
		Portal:         handlers.NewPortalHandler(nil, nil, log),
		Health:         handlers.NewHealthHandler(health.NewHealthChecker(okPinger{}, nil)),
	}, authMW, log)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()
	for _, path := range []string{
		"/api/properties",
		"/api/rentals/1",
		"/api/alerts",
		"/api/ensers",
		"/api/property-laws",
		"/api/obligation-types",
		"/api/properties/1/details",
		"/api/properties/1/inventory",
		"/api/rentals/1/monthly",
		"/api/me",
		"/api/me/rentals",
		"/api/me/rentals/1/statement.pdf",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	router := newTestRouter()
	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestTokenEndpointsArePublic(t *testing.T) {
	router := newTestRouter()
	for _, path := range []string{"/auth/refresh", "/auth/logout"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader("not json")))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}
