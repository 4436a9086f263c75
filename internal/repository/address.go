package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const addressColumns = `id, contact_id, street, city, province, country, postal_code, created_at, updated_at`

// AddressRepository scopes every query by contact id. Ownership of the
// contact itself is checked by the caller.
type AddressRepository struct {
	db DBTX
}

func NewAddressRepository(db DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

func scanAddress(row pgx.Row) (*model.Address, error) {
	var a model.Address
	err := row.Scan(
		&a.ID,
		&a.ContactID,
		&a.Street,
		&a.City,
		&a.Province,
		&a.Country,
		&a.PostalCode,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) Create(ctx context.Context, a *model.Address) error {
	query := `
		INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, a.ContactID, a.Street, a.City, a.Province, a.Country, a.PostalCode).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func (r *AddressRepository) Get(ctx context.Context, contactID, addressID uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND contact_id = $2`

	a, err := scanAddress(r.db.QueryRow(ctx, query, addressID, contactID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sqlerr.NotFound("address")
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (r *AddressRepository) Update(ctx context.Context, a *model.Address) error {
	query := `
		UPDATE addresses
		SET street = $3, city = $4, province = $5, country = $6, postal_code = $7
		WHERE id = $1 AND contact_id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, a.ID, a.ContactID, a.Street, a.City, a.Province, a.Country, a.PostalCode).
		Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.NotFound("address")
	}
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, contactID, addressID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND contact_id = $2`, addressID, contactID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.NotFound("address")
	}
	return nil
}

// ListByContact returns every address of the contact, oldest first.
func (r *AddressRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE contact_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	return addresses, nil
}
