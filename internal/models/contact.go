package models

// Contact belongs to exactly one user through Username.
// Optional columns are nil when absent, never "".
type Contact struct {
	ID        int64
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	Username  string
}

type ContactFilter struct {
	Name   *string
	Email  *string
	Phone  *string
	Limit  int
	Offset int
}
