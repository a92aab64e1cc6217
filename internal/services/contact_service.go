package services

import (
	"context"

	"github.com/baharkarakas/contact-api/internal/apperr"
	"github.com/baharkarakas/contact-api/internal/dto"
	"github.com/baharkarakas/contact-api/internal/models"
	repo "github.com/baharkarakas/contact-api/internal/repository"
)

const msgContactNotFound = "Contact is not found"

type ContactService struct {
	r     repo.Contacts
	audit *Auditor
}

func NewContactService(r repo.Contacts, a *Auditor) *ContactService {
	return &ContactService{r: r, audit: a}
}

func (s *ContactService) Create(ctx context.Context, u models.User, req dto.CreateContactRequest) (dto.ContactResponse, error) {
	if err := validated(req); err != nil {
		return dto.ContactResponse{}, err
	}

	c, err := s.r.Create(ctx, models.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Username:  u.Username,
	})
	if err != nil {
		return dto.ContactResponse{}, err
	}

	s.audit.record(models.AuditContact, idString(c.ID), "create", u.Username, nil)
	return dto.ToContactResponse(c), nil
}

// CheckMustExist is the ownership gate: the contact must exist and belong to username.
func (s *ContactService) CheckMustExist(ctx context.Context, username string, id int64) (models.Contact, error) {
	return mustExist(ctx, apperr.NotFound(msgContactNotFound), func(ctx context.Context) (models.Contact, error) {
		return s.r.Get(ctx, username, id)
	})
}

func (s *ContactService) Get(ctx context.Context, u models.User, id int64) (dto.ContactResponse, error) {
	c, err := s.CheckMustExist(ctx, u.Username, id)
	if err != nil {
		return dto.ContactResponse{}, err
	}
	return dto.ToContactResponse(c), nil
}

// Update replaces all editable fields; omitted optional fields are cleared.
func (s *ContactService) Update(ctx context.Context, u models.User, req dto.UpdateContactRequest) (dto.ContactResponse, error) {
	if err := validated(req); err != nil {
		return dto.ContactResponse{}, err
	}
	if _, err := s.CheckMustExist(ctx, u.Username, req.ID); err != nil {
		return dto.ContactResponse{}, err
	}

	c, err := mustExist(ctx, apperr.NotFound(msgContactNotFound), func(ctx context.Context) (models.Contact, error) {
		return s.r.Update(ctx, models.Contact{
			ID:        req.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Username:  u.Username,
		})
	})
	if err != nil {
		return dto.ContactResponse{}, err
	}

	s.audit.record(models.AuditContact, idString(c.ID), "update", u.Username, nil)
	return dto.ToContactResponse(c), nil
}

func (s *ContactService) Remove(ctx context.Context, u models.User, id int64) (dto.ContactResponse, error) {
	if _, err := s.CheckMustExist(ctx, u.Username, id); err != nil {
		return dto.ContactResponse{}, err
	}

	c, err := mustExist(ctx, apperr.NotFound(msgContactNotFound), func(ctx context.Context) (models.Contact, error) {
		return s.r.Delete(ctx, u.Username, id)
	})
	if err != nil {
		return dto.ContactResponse{}, err
	}

	s.audit.record(models.AuditContact, idString(id), "delete", u.Username, nil)
	return dto.ToContactResponse(c), nil
}

// Search pages through the caller's contacts. Zero Page or Size fall back to
// the defaults; a page past the end is an empty result, not an error.
func (s *ContactService) Search(ctx context.Context, u models.User, req dto.SearchContactRequest) (dto.Page[dto.ContactResponse], error) {
	if req.Page == 0 {
		req.Page = dto.DefaultPage
	}
	if req.Size == 0 {
		req.Size = dto.DefaultSize
	}
	if err := validated(req); err != nil {
		return dto.Page[dto.ContactResponse]{}, err
	}

	f := models.ContactFilter{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Limit: req.Size,
	}

	total, err := s.r.Count(ctx, u.Username, f)
	if err != nil {
		return dto.Page[dto.ContactResponse]{}, err
	}
	paging := dto.NewPaging(req.Page, req.Size, total)
	// page <= TotalPages bounds the offset by total, so it cannot overflow
	if req.Page > paging.TotalPages {
		return dto.Page[dto.ContactResponse]{Data: []dto.ContactResponse{}, Paging: paging}, nil
	}

	f.Offset = dto.Offset(req.Page, req.Size)
	rows, err := s.r.Search(ctx, u.Username, f)
	if err != nil {
		return dto.Page[dto.ContactResponse]{}, err
	}

	data := make([]dto.ContactResponse, 0, len(rows))
	for _, c := range rows {
		data = append(data, dto.ToContactResponse(c))
	}
	return dto.Page[dto.ContactResponse]{
		Data:   data,
		Paging: paging,
	}, nil
}
