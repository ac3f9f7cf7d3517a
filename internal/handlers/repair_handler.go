package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type RepairHandler struct {
	Service *services.RepairService
	log     *zap.Logger
}

func NewRepairHandler(s *services.RepairService, log *zap.Logger) *RepairHandler {
	return &RepairHandler{Service: s, log: log}
}

func (h *RepairHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RepairRequest
	if !decode(w, r, &req) {
		return
	}
	rp, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, rp)
}

func (h *RepairHandler) List(w http.ResponseWriter, r *http.Request) {
	q := &queryParser{r: r}
	propertyID := q.intParam("property")
	if q.err != nil {
		writeError(w, h.log, q.err)
		return
	}
	opts := listOptions(r)
	items, total, err := h.Service.List(r.Context(), propertyID, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *RepairHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, rp)
}

func (h *RepairHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.RepairRequest
	if !decode(w, r, &req) {
		return
	}
	rp, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, rp)
}

func (h *RepairHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
