package dto

import (
	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/validate"
)

type CreateContactRequest struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (r CreateContactRequest) Validate() error {
	var c validate.Checker
	checkContactFields(&c, r.FirstName, r.LastName, r.Email, r.Phone)
	return c.Err()
}

type UpdateContactRequest struct {
	ID        int64   `json:"-"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (r UpdateContactRequest) Validate() error {
	var c validate.Checker
	c.Int("id", r.ID, validate.Positive())
	checkContactFields(&c, r.FirstName, r.LastName, r.Email, r.Phone)
	return c.Err()
}

func checkContactFields(c *validate.Checker, first string, last, email, phone *string) {
	c.String("firstName", first, validate.Required(), validate.MaxLen(100))
	c.OptionalString("lastName", last, validate.Length(1, 100))
	c.OptionalString("email", email, validate.Length(1, 100))
	c.OptionalString("phone", phone, validate.Length(1, 20))
}

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

type SearchContactRequest struct {
	Name  *string
	Email *string
	Phone *string
	Page  int
	Size  int
}

func (r SearchContactRequest) Validate() error {
	var c validate.Checker
	c.OptionalString("name", r.Name, validate.MinLen(1))
	c.OptionalString("email", r.Email, validate.MinLen(1))
	c.OptionalString("phone", r.Phone, validate.MinLen(1))
	c.Int("page", int64(r.Page), validate.Min(1))
	c.Int("size", int64(r.Size), validate.Min(1), validate.Max(MaxSize))
	return c.Err()
}

type ContactResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func ToContactResponse(c models.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}
