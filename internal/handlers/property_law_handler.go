package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type PropertyLawHandler struct {
	Service *services.PropertyLawService
	log     *zap.Logger
}

func NewPropertyLawHandler(s *services.PropertyLawService, log *zap.Logger) *PropertyLawHandler {
	return &PropertyLawHandler{Service: s, log: log}
}

func (h *PropertyLawHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PropertyLawRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, l)
}

func (h *PropertyLawHandler) List(w http.ResponseWriter, r *http.Request) {
	q := &queryParser{r: r}
	f := models.PropertyLawFilter{
		PropertyID: q.intParam("property"),
		IsPaid:     q.boolParam("is_paid"),
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

func (h *PropertyLawHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	l, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, l)
}

func (h *PropertyLawHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.PropertyLawRequest
	if !decode(w, r, &req) {
		return
	}
	l, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, l)
}

func (h *PropertyLawHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
