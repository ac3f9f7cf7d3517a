package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

// RentalTermsHandler serves the per-type terms attached to a rental.
type RentalTermsHandler struct {
	Service *services.RentalTermsService
	log     *zap.Logger
}

func NewRentalTermsHandler(s *services.RentalTermsService, log *zap.Logger) *RentalTermsHandler {
	return &RentalTermsHandler{Service: s, log: log}
}

func (h *RentalTermsHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.Service.GetMonthly(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

func (h *RentalTermsHandler) SaveMonthly(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.MonthlyTermsRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.Service.SaveMonthly(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

func (h *RentalTermsHandler) GetAirbnb(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.Service.GetAirbnb(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

func (h *RentalTermsHandler) SaveAirbnb(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.AirbnbTermsRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.Service.SaveAirbnb(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}
