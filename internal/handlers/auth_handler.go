package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/models"
	"property-backend/internal/services"
	"property-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
	log     *zap.Logger
}

func NewAuthHandler(s *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Service: s, log: log}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		h.log.Info("login rejected", zap.String("email", req.Email), zap.String("ip", clientIP(r)), zap.Error(err))
		writeError(w, h.log, err)
		return
	}
	h.log.Info("login", zap.Int("user_id", resp.User.ID), zap.String("ip", clientIP(r)))
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
