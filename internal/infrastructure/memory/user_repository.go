package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
)

// UserRepository is an in-process user store. Create enforces the same
// username/email uniqueness as the users table constraints.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User // by id
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.users[id]; u.Username == username {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetAllUsernames(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id].Username)
	}
	return out, nil
}

func (r *UserRepository) GetAllEmails(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.users[id]))
	}
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = clone(u)
	r.order = append(r.order, u.ID)
	return nil
}

func clone(u *entity.User) *entity.User {
	c := *u
	return &c
}

var _ repository.UserRepository = (*UserRepository)(nil)
