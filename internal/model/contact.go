package model

import (
	"github.com/google/uuid"
)

type Contact struct {
	Base
	UserID    uuid.UUID `json:"-" db:"user_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  *string   `json:"lastName" db:"last_name"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
}

type CreateContactRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,max=100,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=100"`
}

func (r *CreateContactRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateContactRequest replaces every field of the contact.
type UpdateContactRequest struct {
	ContactID string  `param:"contactId" json:"-" validate:"required"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,max=100,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=100"`
}

func (r *UpdateContactRequest) Validate() error {
	return validate.Struct(r)
}

// ContactPathRequest addresses a single contact by its path id.
type ContactPathRequest struct {
	ContactID string `param:"contactId" validate:"required"`
}

func (r *ContactPathRequest) Validate() error {
	return validate.Struct(r)
}

const (
	DefaultPageSize = 10

	// MaxPage bounds the page index so page*size stays a valid OFFSET.
	MaxPage = 1_000_000
)

// SearchContactRequest filters the caller's contacts. Name matches the
// first or last name; every filter is a case-insensitive substring match.
type SearchContactRequest struct {
	Name  string `query:"name" validate:"max=100"`
	Email string `query:"email" validate:"max=100"`
	Phone string `query:"phone" validate:"max=100"`
	Page  int    `query:"page" validate:"min=0,max=1000000"`
	Size  int    `query:"size" validate:"min=0,max=100"`
}

func (r *SearchContactRequest) Validate() error {
	return validate.Struct(r)
}

// PageSize returns Size, or DefaultPageSize when none was given.
func (r *SearchContactRequest) PageSize() int {
	if r.Size <= 0 {
		return DefaultPageSize
	}
	return r.Size
}
