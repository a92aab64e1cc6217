package dto

import (
	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/validate"
)

type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r RegisterUserRequest) Validate() error {
	var c validate.Checker
	c.String("username", r.Username, validate.Required(), validate.MaxLen(100))
	c.String("password", r.Password, validate.Required(), validate.Length(8, 100))
	c.String("name", r.Name, validate.Required(), validate.MaxLen(100))
	return c.Err()
}

type LoginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginUserRequest) Validate() error {
	var c validate.Checker
	c.String("username", r.Username, validate.Required(), validate.MaxLen(100))
	c.String("password", r.Password, validate.Required(), validate.Length(8, 100))
	return c.Err()
}

// UpdateUserRequest is a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (r UpdateUserRequest) Validate() error {
	var c validate.Checker
	c.OptionalString("name", r.Name, validate.Length(1, 100))
	c.OptionalString("password", r.Password, validate.Length(8, 100))
	return c.Err()
}

type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

// ToUserResponse never carries the token; Login sets it on the result.
func ToUserResponse(u models.User) UserResponse {
	return UserResponse{
		Username: u.Username,
		Name:     u.Name,
	}
}
