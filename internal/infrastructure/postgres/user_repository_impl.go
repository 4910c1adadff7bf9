package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
)

const (
	uniqueViolation = "23505"

	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, created_at
	`, u.Username, u.Password, u.FirstName, u.LastName, u.Email)

	return mapWriteError(row.Scan(&u.ID, &u.CreatedAt))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, username, password, first_name, last_name, email, created_at
		FROM users
		WHERE username = $1
	`, username)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, username, password, first_name, last_name, email, created_at
		FROM users
		WHERE id::text = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetAllUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT username FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// GetAllEmails returns the users with only ID, Username and Email populated.
func (r *UserRepository) GetAllEmails(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id::text, username, email FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// mapWriteError turns unique violations into repository sentinels.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return repository.ErrDuplicateUsername
		case emailConstraint:
			return repository.ErrDuplicateEmail
		}
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
