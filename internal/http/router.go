package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"property-backend/internal/handlers"
	"property-backend/internal/middleware"
	"property-backend/internal/models"
	"property-backend/pkg/utils"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	User           *handlers.UserHandler
	Property       *handlers.PropertyHandler
	Tenant         *handlers.TenantHandler
	Rental         *handlers.RentalHandler
	Obligation     *handlers.ObligationHandler
	PaymentMethod  *handlers.PaymentMethodHandler
	Repair         *handlers.RepairHandler
	PropertyLaw    *handlers.PropertyLawHandler
	Enser          *handlers.EnserHandler
	RentalTerms    *handlers.RentalTermsHandler
	ObligationType *handlers.ObligationTypeHandler
	Dashboard      *handlers.DashboardHandler
	Alert          *handlers.AlertHandler
	Portal         *handlers.PortalHandler
	Health         *handlers.HealthHandler
}

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware, log *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.Error(w, http.StatusNotFound, "Not found")
	})

	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")
	r.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")

	// Any authenticated user
	r.Handle("/api/me", authMiddleware.Authenticate(http.HandlerFunc(h.User.Me))).Methods("GET")

	// Client portal
	portalAPI := r.PathPrefix("/api/me/rentals").Subrouter()
	portalAPI.Use(authMiddleware.RequireRole(models.RoleClient))
	portalAPI.HandleFunc("", h.Portal.ListRentals).Methods("GET")
	portalAPI.HandleFunc("/{id}", h.Portal.GetRental).Methods("GET")
	portalAPI.HandleFunc("/{id}/payments", h.Portal.ListPayments).Methods("GET")
	portalAPI.HandleFunc("/{id}/statement.pdf", h.Portal.Statement).Methods("GET")

	// Back office
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.RequireRole(models.RoleAdmin))

	api.HandleFunc("/users", h.User.ListUsers).Methods("GET")
	api.HandleFunc("/users", h.User.CreateUser).Methods("POST")
	api.HandleFunc("/users/{id}", h.User.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}/active", h.User.SetActive).Methods("PUT")

	api.HandleFunc("/properties", h.Property.List).Methods("GET")
	api.HandleFunc("/properties", h.Property.Create).Methods("POST")
	api.HandleFunc("/properties/{id}", h.Property.Get).Methods("GET")
	api.HandleFunc("/properties/{id}", h.Property.Update).Methods("PUT")
	api.HandleFunc("/properties/{id}", h.Property.Delete).Methods("DELETE")
	api.HandleFunc("/properties/{id}/details", h.Property.GetDetails).Methods("GET")
	api.HandleFunc("/properties/{id}/details", h.Property.SaveDetails).Methods("PUT")
	api.HandleFunc("/properties/{id}/inventory", h.Enser.ListInventory).Methods("GET")
	api.HandleFunc("/properties/{id}/inventory", h.Enser.AddItem).Methods("POST")
	api.HandleFunc("/properties/{id}/inventory/{itemID}", h.Enser.RemoveItem).Methods("DELETE")

	api.HandleFunc("/property-laws", h.PropertyLaw.List).Methods("GET")
	api.HandleFunc("/property-laws", h.PropertyLaw.Create).Methods("POST")
	api.HandleFunc("/property-laws/{id}", h.PropertyLaw.Get).Methods("GET")
	api.HandleFunc("/property-laws/{id}", h.PropertyLaw.Update).Methods("PUT")
	api.HandleFunc("/property-laws/{id}", h.PropertyLaw.Delete).Methods("DELETE")

	api.HandleFunc("/ensers", h.Enser.List).Methods("GET")
	api.HandleFunc("/ensers", h.Enser.Create).Methods("POST")
	api.HandleFunc("/ensers/{id}", h.Enser.Get).Methods("GET")
	api.HandleFunc("/ensers/{id}", h.Enser.Update).Methods("PUT")
	api.HandleFunc("/ensers/{id}", h.Enser.Delete).Methods("DELETE")

	api.HandleFunc("/tenants", h.Tenant.List).Methods("GET")
	api.HandleFunc("/tenants", h.Tenant.Create).Methods("POST")
	api.HandleFunc("/tenants/{id}", h.Tenant.Get).Methods("GET")
	api.HandleFunc("/tenants/{id}", h.Tenant.Update).Methods("PUT")
	api.HandleFunc("/tenants/{id}", h.Tenant.Delete).Methods("DELETE")

	api.HandleFunc("/rentals", h.Rental.List).Methods("GET")
	api.HandleFunc("/rentals", h.Rental.Create).Methods("POST")
	api.HandleFunc("/rentals/{id}", h.Rental.Get).Methods("GET")
	api.HandleFunc("/rentals/{id}", h.Rental.Update).Methods("PUT")
	api.HandleFunc("/rentals/{id}", h.Rental.Delete).Methods("DELETE")
	api.HandleFunc("/rentals/{id}/payments", h.Rental.ListPayments).Methods("GET")
	api.HandleFunc("/rentals/{id}/payments", h.Rental.AddPayment).Methods("POST")
	api.HandleFunc("/rentals/{id}/payments/{paymentID}", h.Rental.DeletePayment).Methods("DELETE")
	api.HandleFunc("/rentals/{id}/monthly", h.RentalTerms.GetMonthly).Methods("GET")
	api.HandleFunc("/rentals/{id}/monthly", h.RentalTerms.SaveMonthly).Methods("PUT")
	api.HandleFunc("/rentals/{id}/airbnb", h.RentalTerms.GetAirbnb).Methods("GET")
	api.HandleFunc("/rentals/{id}/airbnb", h.RentalTerms.SaveAirbnb).Methods("PUT")

	api.HandleFunc("/obligations", h.Obligation.List).Methods("GET")
	api.HandleFunc("/obligations", h.Obligation.Create).Methods("POST")
	api.HandleFunc("/obligations/{id}", h.Obligation.Get).Methods("GET")
	api.HandleFunc("/obligations/{id}", h.Obligation.Update).Methods("PUT")
	api.HandleFunc("/obligations/{id}", h.Obligation.Delete).Methods("DELETE")
	api.HandleFunc("/obligations/{id}/payments", h.Obligation.ListPayments).Methods("GET")
	api.HandleFunc("/obligations/{id}/payments", h.Obligation.AddPayment).Methods("POST")
	api.HandleFunc("/obligations/{id}/payments/{paymentID}", h.Obligation.DeletePayment).Methods("DELETE")

	api.HandleFunc("/obligation-types", h.ObligationType.List).Methods("GET")
	api.HandleFunc("/obligation-types", h.ObligationType.Create).Methods("POST")
	api.HandleFunc("/obligation-types/{id}", h.ObligationType.Delete).Methods("DELETE")

	api.HandleFunc("/payment-methods", h.PaymentMethod.List).Methods("GET")
	api.HandleFunc("/payment-methods", h.PaymentMethod.Create).Methods("POST")

	api.HandleFunc("/repairs", h.Repair.List).Methods("GET")
	api.HandleFunc("/repairs", h.Repair.Create).Methods("POST")
	api.HandleFunc("/repairs/{id}", h.Repair.Get).Methods("GET")
	api.HandleFunc("/repairs/{id}", h.Repair.Update).Methods("PUT")
	api.HandleFunc("/repairs/{id}", h.Repair.Delete).Methods("DELETE")

	api.HandleFunc("/dashboard", h.Dashboard.Summary).Methods("GET")

	api.HandleFunc("/alerts", h.Alert.ListRecords).Methods("GET")
	api.HandleFunc("/alerts/run", h.Alert.Run).Methods("POST")
	api.HandleFunc("/emails/send", h.Alert.SendEmail).Methods("POST")
	api.HandleFunc("/notifications/log", h.Alert.NotificationLogs).Methods("GET")

	return r
}
