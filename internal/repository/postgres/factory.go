package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	repo "github.com/baharkarakas/contact-api/internal/repository"
)

func NewRepositories(db repo.DBTX) repo.Repositories {
	return repo.Repositories{
		Users:     &usersRepo{db},
		Contacts:  &contactsRepo{db},
		Addresses: &addressesRepo{db},
		AuditLogs: &auditLogsRepo{db},
	}
}

const uniqueViolation = "23505"

// dbErr wraps a driver error, mapping unique violations to repo.ErrConflict.
func dbErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, repo.ErrConflict)
	}
	return fmt.Errorf("%s: db error: %w", op, err)
}
