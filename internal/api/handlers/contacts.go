package handlers

import (
	"net/http"

	"github.com/baharkarakas/contact-api/internal/api/httpx"
	"github.com/baharkarakas/contact-api/internal/dto"
	"github.com/baharkarakas/contact-api/internal/services"
)

type ContactHandler struct {
	svc *services.ContactService
}

func NewContactHandler(svc *services.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req dto.CreateContactRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	res, err := h.svc.Create(r.Context(), u, req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, res)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "contactId")
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	res, err := h.svc.Get(r.Context(), u, id)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "contactId")
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	var req dto.UpdateContactRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	req.ID = id

	res, err := h.svc.Update(r.Context(), u, req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "contactId")
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	if _, err := h.svc.Remove(r.Context(), u, id); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "OK")
}

// Search serves GET /api/contacts?name=&email=&phone=&page=&size=.
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	size, err := queryInt(r, "size")
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}

	res, err := h.svc.Search(r.Context(), u, dto.SearchContactRequest{
		Name:  queryString(r, "name"),
		Email: queryString(r, "email"),
		Phone: queryString(r, "phone"),
		Page:  page,
		Size:  size,
	})
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
