package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type ObligationTypeHandler struct {
	Service *services.ObligationTypeService
	log     *zap.Logger
}

func NewObligationTypeHandler(s *services.ObligationTypeService, log *zap.Logger) *ObligationTypeHandler {
	return &ObligationTypeHandler{Service: s, log: log}
}

func (h *ObligationTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, types)
}

func (h *ObligationTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	t, err := h.Service.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, t)
}

func (h *ObligationTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
