package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
)

// ContactService manages the contacts of the authenticated user. A contact
// owned by someone else is indistinguishable from a missing one.
type ContactService struct {
	contacts ContactRepository
}

func NewContactService(contacts ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) Create(ctx context.Context, user *model.User, req *model.CreateContactRequest) (*model.Contact, error) {
	contact := &model.Contact{
		UserID:    user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, user *model.User, rawID string) (*model.Contact, error) {
	id, err := parseID(rawID, "contact")
	if err != nil {
		return nil, err
	}

	contact, err := s.contacts.GetForUser(ctx, user.ID, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, user *model.User, req *model.UpdateContactRequest) (*model.Contact, error) {
	contact, err := s.Get(ctx, user, req.ContactID)
	if err != nil {
		return nil, err
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, user *model.User, rawID string) error {
	id, err := parseID(rawID, "contact")
	if err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, user.ID, id); err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// Search pages through the user's contacts. Pages past the end are empty
// but still report the real page count.
func (s *ContactService) Search(ctx context.Context, user *model.User, req *model.SearchContactRequest) (model.Page[model.Contact], error) {
	if req.Page < 0 || req.Page > model.MaxPage {
		return model.Page[model.Contact]{}, errs.ValidationError("Validation failed", []errs.FieldError{{
			Field: "page",
			Error: fmt.Sprintf("must be between 0 and %d", model.MaxPage),
		}})
	}

	size := req.PageSize()

	contacts, total, err := s.contacts.Search(ctx, user.ID, repository.ContactFilter{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Limit:  size,
		Offset: req.Page * size,
	})
	if err != nil {
		return model.Page[model.Contact]{}, sqlerr.HandleError(err)
	}

	return model.NewPage(contacts, req.Page, size, total), nil
}
