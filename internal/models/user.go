package models

// User is the persisted account row. Username is the primary key and never changes.
type User struct {
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	PasswordHash string  `json:"-"`
	Token        *string `json:"-"`
}
