package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type ObligationHandler struct {
	Service  *services.ObligationService
	Payments *services.PaymentService
	log      *zap.Logger
}

func NewObligationHandler(s *services.ObligationService, payments *services.PaymentService, log *zap.Logger) *ObligationHandler {
	return &ObligationHandler{Service: s, Payments: payments, log: log}
}

func (h *ObligationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ObligationRequest
	if !decode(w, r, &req) {
		return
	}
	o, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, o)
}

func (h *ObligationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := &queryParser{r: r}
	f := models.ObligationFilter{
		PropertyID:     q.intParam("property"),
		DueDateFrom:    q.dateParam("due_date_from"),
		DueDateTo:      q.dateParam("due_date_to"),
		AmountMin:      q.decimalParam("amount_min"),
		AmountMax:      q.decimalParam("amount_max"),
		EntityContains: q.str("entity_contains"),
		Temporality:    q.str("temporality"),
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

func (h *ObligationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, o)
}

func (h *ObligationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.ObligationRequest
	if !decode(w, r, &req) {
		return
	}
	o, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, o)
}

func (h *ObligationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ObligationHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.Service.Get(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	var req models.ObligationPaymentRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Payments.AddObligationPayment(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *ObligationHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
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
	items, total, err := h.Payments.ListObligationPayments(r.Context(), id, f, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *ObligationHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "paymentID")
	if !ok {
		return
	}
	if err := h.Payments.DeleteObligationPayment(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
