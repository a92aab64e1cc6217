package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/repository"
)

type contactsRepo struct{ db repository.DBTX }

func NewContacts(db repository.DBTX) repository.Contacts {
	return &contactsRepo{db: db}
}

const contactColumns = `id, first_name, last_name, email, phone, username`

func scanContact(row interface{ Scan(...any) error }) (models.Contact, error) {
	var c models.Contact
	var last, email, phone sql.NullString
	if err := row.Scan(&c.ID, &c.FirstName, &last, &email, &phone, &c.Username); err != nil {
		return models.Contact{}, err
	}
	c.LastName = nullable(last)
	c.Email = nullable(email)
	c.Phone = nullable(phone)
	return c, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func (r *contactsRepo) one(ctx context.Context, op, q string, args ...any) (models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return models.Contact{}, dbErr(op, err)
	}
	return c, nil
}

func (r *contactsRepo) Create(ctx context.Context, c models.Contact) (models.Contact, error) {
	return r.one(ctx, "create contact",
		`INSERT INTO contacts (first_name, last_name, email, phone, username)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+contactColumns,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Username,
	)
}

func (r *contactsRepo) Get(ctx context.Context, username string, id int64) (models.Contact, error) {
	return r.one(ctx, "get contact",
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND username = $2`,
		id, username,
	)
}

// Update replaces every editable column; nil optional fields become NULL.
func (r *contactsRepo) Update(ctx context.Context, c models.Contact) (models.Contact, error) {
	return r.one(ctx, "update contact",
		`UPDATE contacts SET first_name = $3, last_name = $4, email = $5, phone = $6
		 WHERE id = $1 AND username = $2
		 RETURNING `+contactColumns,
		c.ID, c.Username, c.FirstName, c.LastName, c.Email, c.Phone,
	)
}

func (r *contactsRepo) Delete(ctx context.Context, username string, id int64) (models.Contact, error) {
	return r.one(ctx, "delete contact",
		`DELETE FROM contacts WHERE id = $1 AND username = $2
		 RETURNING `+contactColumns,
		id, username,
	)
}

func (r *contactsRepo) Search(ctx context.Context, username string, f models.ContactFilter) ([]models.Contact, error) {
	where, args := contactWhere(username, f)
	args = append(args, f.Limit, f.Offset)
	q := `SELECT ` + contactColumns + ` FROM contacts WHERE ` + where +
		` ORDER BY id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, dbErr("search contacts", err)
	}
	defer rows.Close()

	out := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, dbErr("search contacts", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr("search contacts", err)
	}
	return out, nil
}

func (r *contactsRepo) Count(ctx context.Context, username string, f models.ContactFilter) (int64, error) {
	where, args := contactWhere(username, f)
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE `+where, args...).Scan(&n); err != nil {
		return 0, dbErr("count contacts", err)
	}
	return n, nil
}

// contactWhere builds the owner predicate plus one ILIKE term per filter,
// all joined with AND. The name filter matches first or last name.
func contactWhere(username string, f models.ContactFilter) (string, []any) {
	args := []any{username}
	terms := []string{"username = $1"}

	next := func(v string) string {
		args = append(args, "%"+escapeLike(v)+"%")
		return "$" + strconv.Itoa(len(args))
	}
	if f.Name != nil {
		p := next(*f.Name)
		terms = append(terms, "(first_name ILIKE "+p+" OR last_name ILIKE "+p+")")
	}
	if f.Email != nil {
		terms = append(terms, "email ILIKE "+next(*f.Email))
	}
	if f.Phone != nil {
		terms = append(terms, "phone ILIKE "+next(*f.Phone))
	}
	return strings.Join(terms, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
