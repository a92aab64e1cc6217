package handlers

import (
	"net/http"

	"github.com/baharkarakas/contact-api/internal/api/httpx"
	"github.com/baharkarakas/contact-api/internal/dto"
	"github.com/baharkarakas/contact-api/internal/services"
)

type AddressHandler struct {
	svc *services.AddressService
}

func NewAddressHandler(svc *services.AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

func addressKey(r *http.Request) (dto.AddressKey, error) {
	contactID, err := pathID(r, "contactId")
	if err != nil {
		return dto.AddressKey{}, err
	}
	addressID, err := pathID(r, "addressId")
	if err != nil {
		return dto.AddressKey{}, err
	}
	return dto.AddressKey{ContactID: contactID, AddressID: addressID}, nil
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	contactID, err := pathID(r, "contactId")
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	var req dto.CreateAddressRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	req.ContactID = contactID

	res, err := h.svc.Create(r.Context(), u, req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, res)
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	contactID, err := pathID(r, "contactId")
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	res, err := h.svc.List(r.Context(), u, contactID)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, err := addressKey(r)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	res, err := h.svc.Get(r.Context(), u, key)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, err := addressKey(r)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	var req dto.UpdateAddressRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	req.ContactID, req.ID = key.ContactID, key.AddressID

	res, err := h.svc.Update(r.Context(), u, req)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, res)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	key, err := addressKey(r)
	if err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	if _, err := h.svc.Remove(r.Context(), u, key); err != nil {
		httpx.WriteAppError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "OK")
}
