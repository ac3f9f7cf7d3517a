package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/booking"
	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type RentalHandler struct {
	Service  *services.RentalService
	Payments *services.PaymentService
	log      *zap.Logger
}

func NewRentalHandler(s *services.RentalService, payments *services.PaymentService, log *zap.Logger) *RentalHandler {
	return &RentalHandler{Service: s, Payments: payments, log: log}
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RentalRequest
	if !decode(w, r, &req) {
		return
	}
	rental, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, rental)
}

// List supports ?property=, ?tenant= and ?status=.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := &queryParser{r: r}
	f := models.RentalFilter{
		PropertyID: q.intParam("property"),
		TenantID:   q.intParam("tenant"),
		Status:     q.str("status"),
	}
	if q.err == nil && f.Status != "" && !booking.Status(f.Status).Valid() {
		q.err = &services.ValidationError{Field: "status", Message: "must be occupied or available"}
	}
	if q.err != nil {
		writeError(w, h.log, q.err)
		return
	}
	opts := listOptions(r)
	items, total, err := h.Service.List(r.Context(), f, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rental, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.RentalRequest
	if !decode(w, r, &req) {
		return
	}
	rental, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentalHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.Service.Get(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	var req models.RentalPaymentRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Payments.AddRentalPayment(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *RentalHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	f, err := paymentFilter(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	opts := listOptions(r)
	items, total, err := h.Payments.ListRentalPayments(r.Context(), id, f, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *RentalHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "paymentID")
	if !ok {
		return
	}
	if err := h.Payments.DeleteRentalPayment(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
