package dto

import (
	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/validate"
)

type CreateAddressRequest struct {
	ContactID  int64   `json:"-"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postalCode"`
}

func (r CreateAddressRequest) Validate() error {
	var c validate.Checker
	c.Int("contactId", r.ContactID, validate.Positive())
	checkAddressFields(&c, r.Street, r.City, r.Province, r.Country, r.PostalCode)
	return c.Err()
}

type UpdateAddressRequest struct {
	ID         int64   `json:"-"`
	ContactID  int64   `json:"-"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postalCode"`
}

func (r UpdateAddressRequest) Validate() error {
	var c validate.Checker
	c.Int("addressId", r.ID, validate.Positive())
	c.Int("contactId", r.ContactID, validate.Positive())
	checkAddressFields(&c, r.Street, r.City, r.Province, r.Country, r.PostalCode)
	return c.Err()
}

// AddressKey addresses one address through its owning contact.
type AddressKey struct {
	ContactID int64
	AddressID int64
}

func (k AddressKey) Validate() error {
	var c validate.Checker
	c.Int("contactId", k.ContactID, validate.Positive())
	c.Int("addressId", k.AddressID, validate.Positive())
	return c.Err()
}

func checkAddressFields(c *validate.Checker, street, city, province *string, country, postal string) {
	c.OptionalString("street", street, validate.Length(1, 255))
	c.OptionalString("city", city, validate.Length(1, 100))
	c.OptionalString("province", province, validate.Length(1, 100))
	c.String("country", country, validate.Required(), validate.MaxLen(100))
	c.String("postalCode", postal, validate.Required(), validate.MaxLen(10))
}

type AddressResponse struct {
	ID         int64   `json:"id"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postalCode"`
}

func ToAddressResponse(a models.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
