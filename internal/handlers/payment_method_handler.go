package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type PaymentMethodHandler struct {
	Service *services.PaymentService
	log     *zap.Logger
}

func NewPaymentMethodHandler(s *services.PaymentService, log *zap.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{Service: s, log: log}
}

func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.Service.ListPaymentMethods(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, methods)
}

func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	m, err := h.Service.CreatePaymentMethod(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, m)
}
