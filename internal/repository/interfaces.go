package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/baharkarakas/contact-api/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// DBTX is the subset of database/sql used by the postgres repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByToken(ctx context.Context, token string) (models.User, error)
	// Update applies only the non-nil fields.
	Update(ctx context.Context, username string, name, passwordHash *string) (models.User, error)
	SetToken(ctx context.Context, username string, token *string) (models.User, error)
}

// Contacts are always addressed together with their owner's username.
type Contacts interface {
	Create(ctx context.Context, c models.Contact) (models.Contact, error)
	Get(ctx context.Context, username string, id int64) (models.Contact, error)
	Update(ctx context.Context, c models.Contact) (models.Contact, error)
	Delete(ctx context.Context, username string, id int64) (models.Contact, error)
	Search(ctx context.Context, username string, f models.ContactFilter) ([]models.Contact, error)
	Count(ctx context.Context, username string, f models.ContactFilter) (int64, error)
}

// Addresses are always addressed together with their contact id.
type Addresses interface {
	Create(ctx context.Context, a models.Address) (models.Address, error)
	Get(ctx context.Context, contactID, id int64) (models.Address, error)
	Update(ctx context.Context, a models.Address) (models.Address, error)
	Delete(ctx context.Context, contactID, id int64) (models.Address, error)
	ListByContact(ctx context.Context, contactID int64) ([]models.Address, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Repositories is one storage backend's full set.
type Repositories struct {
	Users     Users
	Contacts  Contacts
	Addresses Addresses
	AuditLogs AuditLogs
}
