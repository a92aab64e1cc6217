package services

import (
	"context"

	"github.com/baharkarakas/contact-api/internal/apperr"
	"github.com/baharkarakas/contact-api/internal/dto"
	"github.com/baharkarakas/contact-api/internal/models"
	repo "github.com/baharkarakas/contact-api/internal/repository"
)

const msgAddressNotFound = "Address is not found"

// AddressService checks contact ownership first and address membership
// second, so a foreign contact id reports the contact as missing even when
// the address id exists elsewhere.
type AddressService struct {
	r        repo.Addresses
	contacts *ContactService
	audit    *Auditor
}

func NewAddressService(r repo.Addresses, contacts *ContactService, a *Auditor) *AddressService {
	return &AddressService{r: r, contacts: contacts, audit: a}
}

func (s *AddressService) checkMustExist(ctx context.Context, contactID, addressID int64) (models.Address, error) {
	return mustExist(ctx, apperr.NotFound(msgAddressNotFound), func(ctx context.Context) (models.Address, error) {
		return s.r.Get(ctx, contactID, addressID)
	})
}

func (s *AddressService) Create(ctx context.Context, u models.User, req dto.CreateAddressRequest) (dto.AddressResponse, error) {
	if err := validated(req); err != nil {
		return dto.AddressResponse{}, err
	}
	if _, err := s.contacts.CheckMustExist(ctx, u.Username, req.ContactID); err != nil {
		return dto.AddressResponse{}, err
	}

	a, err := s.r.Create(ctx, models.Address{
		ContactID:  req.ContactID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return dto.AddressResponse{}, err
	}

	s.audit.record(models.AuditAddress, idString(a.ID), "create", u.Username, map[string]any{"contactId": a.ContactID})
	return dto.ToAddressResponse(a), nil
}

func (s *AddressService) Get(ctx context.Context, u models.User, key dto.AddressKey) (dto.AddressResponse, error) {
	if err := validated(key); err != nil {
		return dto.AddressResponse{}, err
	}
	if _, err := s.contacts.CheckMustExist(ctx, u.Username, key.ContactID); err != nil {
		return dto.AddressResponse{}, err
	}

	a, err := s.checkMustExist(ctx, key.ContactID, key.AddressID)
	if err != nil {
		return dto.AddressResponse{}, err
	}
	return dto.ToAddressResponse(a), nil
}

// Update replaces every field of the address.
func (s *AddressService) Update(ctx context.Context, u models.User, req dto.UpdateAddressRequest) (dto.AddressResponse, error) {
	if err := validated(req); err != nil {
		return dto.AddressResponse{}, err
	}
	if _, err := s.contacts.CheckMustExist(ctx, u.Username, req.ContactID); err != nil {
		return dto.AddressResponse{}, err
	}
	if _, err := s.checkMustExist(ctx, req.ContactID, req.ID); err != nil {
		return dto.AddressResponse{}, err
	}

	a, err := mustExist(ctx, apperr.NotFound(msgAddressNotFound), func(ctx context.Context) (models.Address, error) {
		return s.r.Update(ctx, models.Address{
			ID:         req.ID,
			ContactID:  req.ContactID,
			Street:     req.Street,
			City:       req.City,
			Province:   req.Province,
			Country:    req.Country,
			PostalCode: req.PostalCode,
		})
	})
	if err != nil {
		return dto.AddressResponse{}, err
	}

	s.audit.record(models.AuditAddress, idString(a.ID), "update", u.Username, map[string]any{"contactId": a.ContactID})
	return dto.ToAddressResponse(a), nil
}

// Remove returns the deleted address.
func (s *AddressService) Remove(ctx context.Context, u models.User, key dto.AddressKey) (dto.AddressResponse, error) {
	if err := validated(key); err != nil {
		return dto.AddressResponse{}, err
	}
	if _, err := s.contacts.CheckMustExist(ctx, u.Username, key.ContactID); err != nil {
		return dto.AddressResponse{}, err
	}
	if _, err := s.checkMustExist(ctx, key.ContactID, key.AddressID); err != nil {
		return dto.AddressResponse{}, err
	}

	a, err := mustExist(ctx, apperr.NotFound(msgAddressNotFound), func(ctx context.Context) (models.Address, error) {
		return s.r.Delete(ctx, key.ContactID, key.AddressID)
	})
	if err != nil {
		return dto.AddressResponse{}, err
	}

	s.audit.record(models.AuditAddress, idString(a.ID), "delete", u.Username, map[string]any{"contactId": a.ContactID})
	return dto.ToAddressResponse(a), nil
}

func (s *AddressService) List(ctx context.Context, u models.User, contactID int64) ([]dto.AddressResponse, error) {
	if _, err := s.contacts.CheckMustExist(ctx, u.Username, contactID); err != nil {
		return nil, err
	}

	rows, err := s.r.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddressResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, dto.ToAddressResponse(a))
	}
	return out, nil
}
