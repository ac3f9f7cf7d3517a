package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

// EnserHandler serves the furniture catalogue and property inventories.
type EnserHandler struct {
	Service *services.EnserService
	log     *zap.Logger
}

func NewEnserHandler(s *services.EnserService, log *zap.Logger) *EnserHandler {
	return &EnserHandler{Service: s, log: log}
}

func (h *EnserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EnserRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, e)
}

func (h *EnserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := &queryParser{r: r}
	f := models.EnserFilter{
		Condition:    q.str("condition"),
		NameContains: q.str("name_contains"),
	}
	opts := listOptions(r)
	items, total, err := h.Service.List(r.Context(), f, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *EnserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, e)
}

func (h *EnserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.EnserRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, e)
}

func (h *EnserHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *EnserHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	opts := listOptions(r)
	items, total, err := h.Service.ListInventory(r.Context(), propertyID, opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *EnserHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.InventoryItemRequest
	if !decode(w, r, &req) {
		return
	}
	it, err := h.Service.AddItem(r.Context(), propertyID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, it)
}

func (h *EnserHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	if err := h.Service.RemoveItem(r.Context(), propertyID, itemID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
