package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bestiary-backend/internal/domains/user/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the user repository backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
        INSERT INTO users (first_name, last_name, email, gender, username, password_hash, role)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, first_name, last_name, email, gender, username, password_hash, role
    `

	var created model.User
	err := r.pool.QueryRow(
		ctx,
		query,
		u.FirstName,
		u.LastName,
		u.Email,
		u.Gender,
		u.Username,
		u.PasswordHash,
		u.Role,
	).Scan(
		&created.ID,
		&created.FirstName,
		&created.LastName,
		&created.Email,
		&created.Gender,
		&created.Username,
		&created.PasswordHash,
		&created.Role,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.Message, "email") {
				return nil, model.ErrDuplicateEmail
			}
			return nil, model.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
        SELECT id, first_name, last_name, email, gender, username, password_hash, role
        FROM users
        WHERE id = $1
    `

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
        SELECT id, first_name, last_name, email, gender, username, password_hash, role
        FROM users
        WHERE username = $1
    `

	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

func (r *postgresRepository) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Gender,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}
