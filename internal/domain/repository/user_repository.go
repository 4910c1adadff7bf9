package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

//go:generate mockgen -source=user_repository.go -destination=mocks/user_repository_mock.go -package=mocks

// UserRepository defines the data-access capability used by registration.
// Create must enforce username and email uniqueness itself and report
// violations as ErrDuplicateUsername / ErrDuplicateEmail.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	GetAllUsernames(ctx context.Context) ([]string, error)
	GetAllEmails(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
}
