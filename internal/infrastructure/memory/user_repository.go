package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cinehub/auth-service/internal/domain/entity"
	"github.com/cinehub/auth-service/internal/domain/repository"
)

// UserRepository is a mutex-guarded in-memory account store. It implements
// the same interface as the postgres repository so tests and local runs can
// substitute it without touching the service layer.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User // keyed by id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := entity.NormalizeEmail(u.Email)
	for _, existing := range r.users {
		if entity.NormalizeEmail(existing.Email) == email {
			return repository.ErrDuplicateEmail
		}
	}

	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(id, false)
}

func (r *UserRepository) GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error) {
	return r.find(id, true)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findByEmail(email, false)
}

func (r *UserRepository) GetByEmailWithPassword(ctx context.Context, email string) (*entity.User, error) {
	return r.findByEmail(email, true)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}

	email := entity.NormalizeEmail(u.Email)
	for id, existing := range r.users {
		if id != u.ID && entity.NormalizeEmail(existing.Email) == email {
			return repository.ErrDuplicateEmail
		}
	}

	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = time.Now()
	r.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, strip(clone(u)))
	}
	return users, nil
}

func (r *UserRepository) find(id string, withPassword bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := clone(u)
	if !withPassword {
		strip(cp)
	}
	return cp, nil
}

func (r *UserRepository) findByEmail(email string, withPassword bool) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = entity.NormalizeEmail(email)
	for _, u := range r.users {
		if entity.NormalizeEmail(u.Email) == email {
			cp := clone(u)
			if !withPassword {
				strip(cp)
			}
			return cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// clone copies so callers never alias stored state.
func clone(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func strip(u *entity.User) *entity.User {
	u.Password = ""
	u.PasswordHash = ""
	u.PasswordChanged = false
	return u
}

var _ repository.UserRepository = (*UserRepository)(nil)
