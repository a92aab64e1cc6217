package handlers

import (
	"net/http"

	"github.com/baharkarakas/contact-api/internal/api/httpx"
	"github.com/baharkarakas/contact-api/internal/dto"
	"github.com/baharkarakas/contact-api/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, res)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, res)
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Get(r.Context(), u)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	res, err := h.svc.Update(r.Context(), u, req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.svc.Logout(r.Context(), u); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "OK")
}
