package model

import (
	"time"
)

// User is an account and its single active session.
//
// Token and TokenExpiredAt are either both set or both nil.
type User struct {
	Base
	Username       string     `json:"username" db:"username"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	Name           string     `json:"name" db:"name"`
	Email          *string    `json:"email,omitempty" db:"email"`
	Token          *string    `json:"-" db:"token"`
	TokenExpiredAt *time.Time `json:"-" db:"token_expired_at"`
}

// SetSession stores a freshly issued token on the user.
func (u *User) SetSession(token string, expiresAt time.Time) {
	u.Token = &token
	u.TokenExpiredAt = &expiresAt
}

// ClearSession drops the token and its expiry together.
func (u *User) ClearSession() {
	u.Token = nil
	u.TokenExpiredAt = nil
}

type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{Username: u.Username, Name: u.Name}
}

// RegisterUserRequest creates an account. Passwords are capped at bcrypt's 72 byte input.
type RegisterUserRequest struct {
	Username string  `json:"username" validate:"required,max=100"`
	Password string  `json:"password" validate:"required,maxbytes=72"`
	Name     string  `json:"name" validate:"required,max=100"`
	Email    *string `json:"email" validate:"omitempty,max=100,email"`
}

func (r *RegisterUserRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=1,maxbytes=72"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

func (r *LoginUserRequest) Validate() error {
	return validate.Struct(r)
}

// TokenResponse is returned by a successful login. ExpiredAt is epoch milliseconds.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiredAt int64  `json:"expiredAt"`
}
