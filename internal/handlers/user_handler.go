package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/middleware"
	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type UserHandler struct {
	Service *services.UserService
	log     *zap.Logger
}

func NewUserHandler(s *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{Service: s, log: log}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Service.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// SetActive handles PUT /api/users/{id}/active with {"is_active": bool}.
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if !decode(w, r, &req) {
		return
	}
	if self, _ := middleware.GetUserIDFromContext(r.Context()); self == id && !req.IsActive {
		utils.Error(w, http.StatusBadRequest, "Cannot suspend your own account")
		return
	}
	if err := h.Service.SetActive(r.Context(), id, req.IsActive); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
