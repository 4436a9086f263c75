package model

import (
	"github.com/google/uuid"
)

type Address struct {
	Base
	ContactID  uuid.UUID `json:"-" db:"contact_id"`
	Street     *string   `json:"street" db:"street"`
	City       *string   `json:"city" db:"city"`
	Province   *string   `json:"province" db:"province"`
	Country    string    `json:"country" db:"country"`
	PostalCode *string   `json:"postalCode" db:"postal_code"`
}

type CreateAddressRequest struct {
	ContactID  string  `param:"contactId" json:"-" validate:"required"`
	Street     *string `json:"street" validate:"omitempty,max=200"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Province   *string `json:"province" validate:"omitempty,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode *string `json:"postalCode" validate:"omitempty,max=10"`
}

func (r *CreateAddressRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateAddressRequest struct {
	ContactID  string  `param:"contactId" json:"-" validate:"required"`
	AddressID  string  `param:"addressId" json:"-" validate:"required"`
	Street     *string `json:"street" validate:"omitempty,max=200"`
	City       *string `json:"city" validate:"omitempty,max=100"`
	Province   *string `json:"province" validate:"omitempty,max=100"`
	Country    string  `json:"country" validate:"required,max=100"`
	PostalCode *string `json:"postalCode" validate:"omitempty,max=10"`
}

func (r *UpdateAddressRequest) Validate() error {
	return validate.Struct(r)
}

// AddressPathRequest addresses one address of one contact.
type AddressPathRequest struct {
	ContactID string `param:"contactId" validate:"required"`
	AddressID string `param:"addressId" validate:"required"`
}

func (r *AddressPathRequest) Validate() error {
	return validate.Struct(r)
}
