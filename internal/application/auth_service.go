package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/cinehub/auth-service/internal/domain/entity"
	repo "github.com/cinehub/auth-service/internal/domain/repository"
	"github.com/cinehub/auth-service/pkg/helpers"
)

var (
	// ErrUserExists signals a register attempt against a taken email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials merges unknown-email and wrong-password so a
	// caller cannot enumerate accounts. Do not split these cases.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound signals an id lookup miss.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword signals a failed current-password check on update.
	ErrWrongPassword = errors.New("current password incorrect")
	// ErrUserCreateFailed signals the store accepted the write but returned
	// no usable record.
	ErrUserCreateFailed = errors.New("invalid user data")
)

// AuthService orchestrates account registration, login and profile
// operations. Stateless: everything it needs arrives per call or was fixed
// at construction (store, token manager, clock).
type AuthService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Redis    *redis.Client // optional profile cache; nil disables caching
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // defaults to "user" when empty
}

type UpdateProfileInput struct {
	Name            string
	CurrentPassword string
	NewPassword     string
}

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// Register creates a new account and returns it sanitized together with a
// fresh token. The email pre-check gives the friendly duplicate error; the
// store's unique index is what actually guarantees uniqueness under
// concurrent registrations.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	email := entity.NormalizeEmail(in.Email)
	if email != "" {
		if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
			return nil, "", ErrUserExists
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, "", err
		}
	}

	u, err := entity.NewUser(in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		return nil, "", err
	}
	if err := s.hashPendingPassword(u); err != nil {
		return nil, "", err
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}
	if u.ID == "" {
		return nil, "", ErrUserCreateFailed
	}

	token, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return u.Sanitized(), token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmailWithPassword(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}

	s.Logger.WithField("user_id", u.ID).Info("user logged in")
	return u.Sanitized(), token, nil
}

// GetProfile loads an account by id, hash excluded. Served from the redis
// cache when possible; the store stays the source of truth.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if s.Redis != nil {
		var cached entity.User
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sanitized := u.Sanitized()
	s.cacheProfile(ctx, sanitized)
	return sanitized, nil
}

// UpdateProfile applies a patch to the account. A password change requires
// the correct current password and is verified before any mutation; the new
// plaintext is staged through SetPassword and hashed on persist. A fresh
// token bound to the account is issued on every successful update.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, string, error) {
	u, err := s.Repo.GetByIDWithPassword(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if in.CurrentPassword != "" && in.NewPassword != "" {
		if !helpers.CompareHashAndPassword(u.PasswordHash, in.CurrentPassword) {
			return nil, "", ErrWrongPassword
		}
		u.SetPassword(in.NewPassword)
	}
	if in.Name != "" {
		u.Name = strings.TrimSpace(in.Name)
	}

	if err := u.Validate(); err != nil {
		return nil, "", err
	}
	if err := s.hashPendingPassword(u); err != nil {
		return nil, "", err
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}

	sanitized := u.Sanitized()
	s.cacheProfile(ctx, sanitized)
	s.Logger.WithField("user_id", u.ID).Info("profile updated")
	return sanitized, token, nil
}

// ListUsers returns every account, sanitized. Admin-gated at the route.
func (s *AuthService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out, nil
}

// hashPendingPassword hashes the staged plaintext when PasswordChanged is
// up and clears it. No-op otherwise, so unrelated updates keep the hash.
func (s *AuthService) hashPendingPassword(u *entity.User) error {
	if !u.PasswordChanged {
		return nil
	}
	hash, err := helpers.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Password = ""
	u.PasswordChanged = false
	u.UpdatedAt = time.Now()
	return nil
}

func (s *AuthService) cacheProfile(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(u.ID), u, s.CacheTTL); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile cache write failed")
	}
}
