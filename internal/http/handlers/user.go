package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/http/response"
)

type UserHandler struct {
	users *app.UserService
}

func NewUserHandler(users *app.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	account, err := h.users.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "User data obtained successfully.", account)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req app.UpdateUserInput
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	account, err := h.users.Update(r.Context(), id, req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "User updated successfully.", account)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, http.StatusOK, "User deleted successfully.", nil)
}
