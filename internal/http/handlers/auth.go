package handlers

import (
	"net/http"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type AuthHandler struct {
	auth *app.AuthService
}

func NewAuthHandler(auth *app.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	User      *user.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req app.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if _, err := h.auth.Register(r.Context(), req); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "User registered successfully", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req app.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Login successful.", loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		User:      result.User,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := h.auth.Logout(r.Context(), principal); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Logout successful.", nil)
}
