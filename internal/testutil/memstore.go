// Package testutil provides in-memory stores that behave like the
// PostgreSQL repositories, for service and handler tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store keeps users, contacts and addresses in maps. Values are copied in
// and out, so callers never share state with the store, as with a database.
type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]model.User
	contacts  map[uuid.UUID]model.Contact
	addresses map[uuid.UUID]model.Address
	seq       int64
	now       func() time.Time

	// Saves counts Save calls on users.
	Saves int
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]model.User),
		contacts:  make(map[uuid.UUID]model.Contact),
		addresses: make(map[uuid.UUID]model.Address),
		now:       time.Now,
	}
}

// stamp assigns strictly increasing creation times so ordering is stable.
func (s *Store) stamp(b *model.Base) {
	s.seq++
	b.ID = uuid.New()
	b.CreatedAt = time.Unix(0, 0).Add(time.Duration(s.seq) * time.Millisecond)
	b.UpdatedAt = b.CreatedAt
}

// Users

func (s *Store) Users() *UserStore { return &UserStore{s} }

type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Username == user.Username {
			return &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "users",
				ConstraintName: "users_username_key",
			}
		}
	}

	u.s.stamp(&user.Base)
	u.s.users[user.ID] = *user
	return nil
}

func (u *UserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, sqlerr.NotFound("user")
	}
	return &user, nil
}

func (u *UserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (u *UserStore) FindByToken(_ context.Context, token string) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Token != nil && *user.Token == token {
			return &user, nil
		}
	}
	return nil, nil
}

func (u *UserStore) Save(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[user.ID]; !ok {
		return sqlerr.NotFound("user")
	}
	u.s.Saves++
	user.UpdatedAt = u.s.now()
	u.s.users[user.ID] = *user
	return nil
}

// Contacts

func (s *Store) Contacts() *ContactStore { return &ContactStore{s} }

type ContactStore struct{ s *Store }

func (c *ContactStore) Create(_ context.Context, contact *model.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.users[contact.UserID]; !ok {
		return &pgconn.PgError{Code: "23503", TableName: "contacts", ColumnName: "user_id"}
	}
	c.s.stamp(&contact.Base)
	c.s.contacts[contact.ID] = *contact
	return nil
}

func (c *ContactStore) GetForUser(_ context.Context, userID, contactID uuid.UUID) (*model.Contact, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	contact, ok := c.s.contacts[contactID]
	if !ok || contact.UserID != userID {
		return nil, sqlerr.NotFound("contact")
	}
	return &contact, nil
}

func (c *ContactStore) Update(_ context.Context, contact *model.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	existing, ok := c.s.contacts[contact.ID]
	if !ok || existing.UserID != contact.UserID {
		return sqlerr.NotFound("contact")
	}
	contact.CreatedAt = existing.CreatedAt
	contact.UpdatedAt = c.s.now()
	c.s.contacts[contact.ID] = *contact
	return nil
}

func (c *ContactStore) Delete(_ context.Context, userID, contactID uuid.UUID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	existing, ok := c.s.contacts[contactID]
	if !ok || existing.UserID != userID {
		return sqlerr.NotFound("contact")
	}
	delete(c.s.contacts, contactID)
	for id, a := range c.s.addresses {
		if a.ContactID == contactID {
			delete(c.s.addresses, id)
		}
	}
	return nil
}

func containsFold(field *string, needle string) bool {
	if needle == "" {
		return true
	}
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), strings.ToLower(needle))
}

func (c *ContactStore) Search(_ context.Context, userID uuid.UUID, f repository.ContactFilter) ([]model.Contact, int64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var matched []model.Contact
	for _, contact := range c.s.contacts {
		if contact.UserID != userID {
			continue
		}
		first := contact.FirstName
		if f.Name != "" && !containsFold(&first, f.Name) && !containsFold(contact.LastName, f.Name) {
			continue
		}
		if !containsFold(contact.Email, f.Email) || !containsFold(contact.Phone, f.Phone) {
			continue
		}
		matched = append(matched, contact)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := min(f.Offset, len(matched))
	end := min(start+f.Limit, len(matched))

	return append([]model.Contact{}, matched[start:end]...), total, nil
}

// Addresses

func (s *Store) Addresses() *AddressStore { return &AddressStore{s} }

type AddressStore struct{ s *Store }

func (a *AddressStore) Create(_ context.Context, address *model.Address) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if _, ok := a.s.contacts[address.ContactID]; !ok {
		return &pgconn.PgError{Code: "23503", TableName: "addresses", ColumnName: "contact_id"}
	}
	a.s.stamp(&address.Base)
	a.s.addresses[address.ID] = *address
	return nil
}

func (a *AddressStore) Get(_ context.Context, contactID, addressID uuid.UUID) (*model.Address, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	address, ok := a.s.addresses[addressID]
	if !ok || address.ContactID != contactID {
		return nil, sqlerr.NotFound("address")
	}
	return &address, nil
}

func (a *AddressStore) Update(_ context.Context, address *model.Address) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	existing, ok := a.s.addresses[address.ID]
	if !ok || existing.ContactID != address.ContactID {
		return sqlerr.NotFound("address")
	}
	address.CreatedAt = existing.CreatedAt
	address.UpdatedAt = a.s.now()
	a.s.addresses[address.ID] = *address
	return nil
}

func (a *AddressStore) Delete(_ context.Context, contactID, addressID uuid.UUID) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	existing, ok := a.s.addresses[addressID]
	if !ok || existing.ContactID != contactID {
		return sqlerr.NotFound("address")
	}
	delete(a.s.addresses, addressID)
	return nil
}

func (a *AddressStore) ListByContact(_ context.Context, contactID uuid.UUID) ([]model.Address, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	list := []model.Address{}
	for _, address := range a.s.addresses {
		if address.ContactID == contactID {
			list = append(list, address)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// Mailer records welcome emails instead of queueing them.
type Mailer struct {
	mu   sync.Mutex
	Sent []string
	Err  error
}

func (m *Mailer) EnqueueWelcomeEmail(_ context.Context, to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, to)
	return nil
}
