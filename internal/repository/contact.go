package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const contactColumns = `id, user_id, first_name, last_name, email, phone, created_at, updated_at`

// ContactFilter narrows a contact search. Empty strings are ignored.
type ContactFilter struct {
	Name   string
	Email  string
	Phone  string
	Limit  int
	Offset int
}

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func scanContact(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) error {
	query := `
		INSERT INTO contacts (user_id, first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, c.UserID, c.FirstName, c.LastName, c.Email, c.Phone).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetForUser returns the contact only if userID owns it.
func (r *ContactRepository) GetForUser(ctx context.Context, userID, contactID uuid.UUID) (*model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	c, err := scanContact(r.db.QueryRow(ctx, query, contactID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sqlerr.NotFound("contact")
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *model.Contact) error {
	query := `
		UPDATE contacts
		SET first_name = $3, last_name = $4, email = $5, phone = $6
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, c.ID, c.UserID, c.FirstName, c.LastName, c.Email, c.Phone).
		Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.NotFound("contact")
	}
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Delete removes the contact and, by cascade, its addresses.
func (r *ContactRepository) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, contactID, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.NotFound("contact")
	}
	return nil
}

// searchWhere builds the WHERE clause shared by the count and page queries.
func searchWhere(userID uuid.UUID, f ContactFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
	}
	if f.Email != "" {
		args = append(args, "%"+f.Email+"%")
		conds = append(conds, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if f.Phone != "" {
		args = append(args, "%"+f.Phone+"%")
		conds = append(conds, fmt.Sprintf("phone ILIKE $%d", len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// Search returns one page of the user's matching contacts and the total match count.
func (r *ContactRepository) Search(ctx context.Context, userID uuid.UUID, f ContactFilter) ([]model.Contact, int64, error) {
	where, args := searchWhere(userID, f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	query := `SELECT ` + contactColumns + ` FROM contacts` + where +
		fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d OFFSET $%d`, len(pageArgs)-1, len(pageArgs))

	rows, err := r.db.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]model.Contact, 0, f.Limit)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contacts: %w", err)
	}

	return contacts, total, nil
}
