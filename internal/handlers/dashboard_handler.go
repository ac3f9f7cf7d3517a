package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(s *services.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{Service: s, log: log}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Service.Summary(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, sum)
}
