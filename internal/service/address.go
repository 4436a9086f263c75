package service

import (
	"context"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
)

// AddressService manages addresses under a contact the user owns.
type AddressService struct {
	contacts  *ContactService
	addresses AddressRepository
}

func NewAddressService(contacts *ContactService, addresses AddressRepository) *AddressService {
	return &AddressService{contacts: contacts, addresses: addresses}
}

func (s *AddressService) Create(ctx context.Context, user *model.User, req *model.CreateAddressRequest) (*model.Address, error) {
	contact, err := s.contacts.Get(ctx, user, req.ContactID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		ContactID:  contact.ID,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}

	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return address, nil
}

func (s *AddressService) Get(ctx context.Context, user *model.User, req *model.AddressPathRequest) (*model.Address, error) {
	contact, err := s.contacts.Get(ctx, user, req.ContactID)
	if err != nil {
		return nil, err
	}

	addressID, err := parseID(req.AddressID, "address")
	if err != nil {
		return nil, err
	}

	address, err := s.addresses.Get(ctx, contact.ID, addressID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return address, nil
}

func (s *AddressService) Update(ctx context.Context, user *model.User, req *model.UpdateAddressRequest) (*model.Address, error) {
	address, err := s.Get(ctx, user, &model.AddressPathRequest{ContactID: req.ContactID, AddressID: req.AddressID})
	if err != nil {
		return nil, err
	}

	address.Street = req.Street
	address.City = req.City
	address.Province = req.Province
	address.Country = req.Country
	address.PostalCode = req.PostalCode

	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, user *model.User, req *model.AddressPathRequest) error {
	contact, err := s.contacts.Get(ctx, user, req.ContactID)
	if err != nil {
		return err
	}

	addressID, err := parseID(req.AddressID, "address")
	if err != nil {
		return err
	}

	if err := s.addresses.Delete(ctx, contact.ID, addressID); err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

func (s *AddressService) List(ctx context.Context, user *model.User, contactID string) ([]model.Address, error) {
	contact, err := s.contacts.Get(ctx, user, contactID)
	if err != nil {
		return nil, err
	}

	addresses, err := s.addresses.ListByContact(ctx, contact.ID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return addresses, nil
}
