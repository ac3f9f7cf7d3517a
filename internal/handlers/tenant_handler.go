package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type TenantHandler struct {
	Service *services.TenantService
	log     *zap.Logger
}

func NewTenantHandler(s *services.TenantService, log *zap.Logger) *TenantHandler {
	return &TenantHandler{Service: s, log: log}
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TenantRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, t)
}

// List supports ?search= over name, last name and email.
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.Service.List(r.Context(), r.URL.Query().Get("search"), opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.TenantRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
