package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type PropertyHandler struct {
	Service *services.PropertyService
	log     *zap.Logger
}

func NewPropertyHandler(s *services.PropertyService, log *zap.Logger) *PropertyHandler {
	return &PropertyHandler{Service: s, log: log}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PropertyRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.Service.List(r.Context(), opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.PropertyRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *PropertyHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.Service.GetDetails(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, d)
}

func (h *PropertyHandler) SaveDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.PropertyDetailsRequest
	if !decode(w, r, &req) {
		return
	}
	d, err := h.Service.SaveDetails(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, d)
}
