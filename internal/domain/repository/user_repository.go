package repository

import (
	"context"
	"errors"

	"github.com/cinehub/auth-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write collides with the unique
	// email constraint. The store is the authority on uniqueness; the
	// service's pre-check alone cannot be (find-then-create is not atomic).
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for account persistence.
// Reads exclude the password hash unless the WithPassword variant is used,
// matching the rule that the hash only surfaces where verification needs it.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
}
