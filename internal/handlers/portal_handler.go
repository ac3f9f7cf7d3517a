package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/middleware"
	"property-backend/internal/models"
	"property-backend/internal/reports"
	"property-backend/internal/repositories"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

// PortalHandler serves client users. Every lookup is scoped to the caller's tenant.
type PortalHandler struct {
	Rentals  *services.RentalService
	Payments *services.PaymentService
	log      *zap.Logger
}

func NewPortalHandler(rentals *services.RentalService, payments *services.PaymentService, log *zap.Logger) *PortalHandler {
	return &PortalHandler{Rentals: rentals, Payments: payments, log: log}
}

func (h *PortalHandler) tenantID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.GetTenantIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusForbidden, "Account is not linked to a tenant")
		return 0, false
	}
	return id, true
}

// ownedRental resolves {id} for the caller; rentals of other tenants read as 404.
func (h *PortalHandler) ownedRental(w http.ResponseWriter, r *http.Request) (*models.Rental, bool) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return nil, false
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}
	rental, err := h.Rentals.GetForTenant(r.Context(), tenantID, id)
	if err != nil {
		writeError(w, h.log, err)
		return nil, false
	}
	return rental, true
}

func (h *PortalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	opts := listOptions(r)
	items, total, err := h.Rentals.List(r.Context(), models.RentalFilter{TenantID: tenantID}, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *PortalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	rental, ok := h.ownedRental(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, rental)
}

func (h *PortalHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	rental, ok := h.ownedRental(w, r)
	if !ok {
		return
	}
	opts := listOptions(r)
	items, total, err := h.Payments.ListRentalPayments(r.Context(), rental.ID, models.PaymentFilter{}, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

// Statement streams a PDF with the rental and all of its payments.
func (h *PortalHandler) Statement(w http.ResponseWriter, r *http.Request) {
	rental, ok := h.ownedRental(w, r)
	if !ok {
		return
	}
	payments, _, err := h.Payments.ListRentalPayments(r.Context(), rental.ID, models.PaymentFilter{}, repositories.ListOptions{Page: 1, PageSize: 1000})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	pdf, err := reports.RentalStatement(rental, payments)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rental-%d-statement.pdf"`, rental.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
