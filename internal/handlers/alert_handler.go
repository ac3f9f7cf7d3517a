package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type AlertHandler struct {
	Service *services.AlertService
	log     *zap.Logger
}

func NewAlertHandler(s *services.AlertService, log *zap.Logger) *AlertHandler {
	return &AlertHandler{Service: s, log: log}
}

// Run triggers a sweep. The body is optional; an empty body uses configured lead days and today.
func (h *AlertHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req models.RunAlertsRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	sum, err := h.Service.Run(r.Context(), req.AlertDays, req.Date)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	status := http.StatusOK
	if sum.Locked {
		status = http.StatusAccepted
	}
	utils.JSON(w, status, sum)
}

// ListRecords returns the alert ledger, optionally filtered by ?entity_kind=.
func (h *AlertHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.Service.ListRecords(r.Context(), r.URL.Query().Get("entity_kind"), opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}

func (h *AlertHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req models.SendEmailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.SendEmail(r.Context(), &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *AlertHandler) NotificationLogs(w http.ResponseWriter, r *http.Request) {
	opts := listOptions(r)
	items, total, err := h.Service.ListNotificationLogs(r.Context(), r.URL.Query().Get("status"), opts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writePage(w, opts, items, total)
}
