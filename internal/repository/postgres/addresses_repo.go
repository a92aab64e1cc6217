package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/repository"
)

type addressesRepo struct{ db repository.DBTX }

func NewAddresses(db repository.DBTX) repository.Addresses {
	return &addressesRepo{db: db}
}

const addressColumns = `id, contact_id, street, city, province, country, postal_code`

func scanAddress(row interface{ Scan(...any) error }) (models.Address, error) {
	var a models.Address
	var street, city, province sql.NullString
	if err := row.Scan(&a.ID, &a.ContactID, &street, &city, &province, &a.Country, &a.PostalCode); err != nil {
		return models.Address{}, err
	}
	a.Street = nullable(street)
	a.City = nullable(city)
	a.Province = nullable(province)
	return a, nil
}

func (r *addressesRepo) one(ctx context.Context, op, q string, args ...any) (models.Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Address{}, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return models.Address{}, dbErr(op, err)
	}
	return a, nil
}

func (r *addressesRepo) Create(ctx context.Context, a models.Address) (models.Address, error) {
	return r.one(ctx, "create address",
		`INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+addressColumns,
		a.ContactID, a.Street, a.City, a.Province, a.Country, a.PostalCode,
	)
}

func (r *addressesRepo) Get(ctx context.Context, contactID, id int64) (models.Address, error) {
	return r.one(ctx, "get address",
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1 AND contact_id = $2`,
		id, contactID,
	)
}

func (r *addressesRepo) Update(ctx context.Context, a models.Address) (models.Address, error) {
	return r.one(ctx, "update address",
		`UPDATE addresses SET street = $3, city = $4, province = $5, country = $6, postal_code = $7
		 WHERE id = $1 AND contact_id = $2
		 RETURNING `+addressColumns,
		a.ID, a.ContactID, a.Street, a.City, a.Province, a.Country, a.PostalCode,
	)
}

func (r *addressesRepo) Delete(ctx context.Context, contactID, id int64) (models.Address, error) {
	return r.one(ctx, "delete address",
		`DELETE FROM addresses WHERE id = $1 AND contact_id = $2
		 RETURNING `+addressColumns,
		id, contactID,
	)
}

func (r *addressesRepo) ListByContact(ctx context.Context, contactID int64) ([]models.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE contact_id = $1 ORDER BY id`, contactID)
	if err != nil {
		return nil, dbErr("list addresses", err)
	}
	defer rows.Close()

	out := []models.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, dbErr("list addresses", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("list addresses", err)
	}
	return out, nil
}
