package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/repository"
)

type usersRepo struct{ db repository.DBTX }

func NewUsers(db repository.DBTX) repository.Users {
	return &usersRepo{db: db}
}

const userColumns = `username, name, password, token`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var token sql.NullString
	if err := row.Scan(&u.Username, &u.Name, &u.PasswordHash, &token); err != nil {
		return models.User{}, err
	}
	if token.Valid {
		u.Token = &token.String
	}
	return u, nil
}

func (r *usersRepo) one(ctx context.Context, op, q string, args ...any) (models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return models.User{}, dbErr(op, err)
	}
	return u, nil
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	return r.one(ctx, "create user",
		`INSERT INTO users (username, name, password) VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		u.Username, u.Name, u.PasswordHash,
	)
}

func (r *usersRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&n)
	if err != nil {
		return 0, dbErr("count users", err)
	}
	return n, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.one(ctx, "get user",
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *usersRepo) GetByToken(ctx context.Context, token string) (models.User, error) {
	return r.one(ctx, "get user by token",
		`SELECT `+userColumns+` FROM users WHERE token = $1`, token)
}

func (r *usersRepo) Update(ctx context.Context, username string, name, passwordHash *string) (models.User, error) {
	return r.one(ctx, "update user",
		`UPDATE users SET name = COALESCE($2, name), password = COALESCE($3, password)
		 WHERE username = $1
		 RETURNING `+userColumns,
		username, name, passwordHash,
	)
}

func (r *usersRepo) SetToken(ctx context.Context, username string, token *string) (models.User, error) {
	return r.one(ctx, "set token",
		`UPDATE users SET token = $2 WHERE username = $1
		 RETURNING `+userColumns,
		username, token,
	)
}
