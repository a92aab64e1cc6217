package models

type Address struct {
	ID         int64
	ContactID  int64
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode string
}
