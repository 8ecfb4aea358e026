package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinehub/auth-service/internal/domain/entity"
	"github.com/cinehub/auth-service/internal/infrastructure/memory"
	"github.com/cinehub/auth-service/pkg/helpers"
)

func newTestService(t *testing.T) (*AuthService, *memory.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAuthService(repo, jwt, nil, logger, time.Minute), repo
}

func register(t *testing.T, s *AuthService, name, email, password, role string) (*entity.User, string) {
	t.Helper()
	u, token, err := s.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: password, Role: role})
	require.NoError(t, err)
	return u, token
}

func TestRegister(t *testing.T) {
	s, _ := newTestService(t)

	u, token, err := s.Register(context.Background(), RegisterInput{
		Name: "João Silva", Email: "joao@exemplo.com", Password: "senha123456",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "João Silva", u.Name)
	assert.Equal(t, "joao@exemplo.com", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role, "role defaults to user")
	assert.Empty(t, u.PasswordHash, "returned account must be sanitized")
	assert.Empty(t, u.Password)

	claims, err := s.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	s, _ := newTestService(t)

	u, _ := register(t, s, "A", "A@X.com", "secret1", "")
	assert.Equal(t, "a@x.com", u.Email)

	// Login with any case variant of the same address works.
	logged, _, err := s.Login(context.Background(), "A@X.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, repo := newTestService(t)
	register(t, s, "A", "joao@exemplo.com", "secret1", "")

	_, _, err := s.Register(context.Background(), RegisterInput{
		Name: "B", Email: "JOAO@EXEMPLO.COM", Password: "secret2",
	})
	require.ErrorIs(t, err, ErrUserExists)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1, "store must hold exactly one account for the email")
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestService(t)

	_, _, err := s.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@x.com", Password: "12345",
	})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Password must be at least 6 characters long", verr.Message)
}

func TestRegisterAdminRole(t *testing.T) {
	s, _ := newTestService(t)

	u, token := register(t, s, "Admin", "admin@x.com", "secret1", entity.RoleAdmin)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	claims, err := s.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestLoginInvalidCredentialsUniform(t *testing.T) {
	s, _ := newTestService(t)
	register(t, s, "A", "a@x.com", "secret1", "")

	_, _, errUnknown := s.Login(context.Background(), "nobody@x.com", "whatever1")
	_, _, errWrongPw := s.Login(context.Background(), "a@x.com", "wrong-password")

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw, "both failures must be indistinguishable")
}

func TestLoginReturnsSanitizedUser(t *testing.T) {
	s, _ := newTestService(t)
	register(t, s, "A", "a@x.com", "secret1", "")

	u, token, err := s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.NotEmpty(t, token)
}

func TestGetProfile(t *testing.T) {
	s, _ := newTestService(t)
	created, _ := register(t, s, "A", "a@x.com", "secret1", "")

	p1, err := s.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	p2, err := s.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, p1.ID, p2.ID)
	assert.Equal(t, p1.Name, p2.Name)
	assert.Equal(t, p1.Email, p2.Email)
	assert.Equal(t, p1.Role, p2.Role)
	assert.Empty(t, p1.PasswordHash)
}

func TestGetProfileNotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.GetProfile(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileName(t *testing.T) {
	s, _ := newTestService(t)
	created, _ := register(t, s, "A", "a@x.com", "secret1", "")

	u, token, err := s.UpdateProfile(context.Background(), created.ID, UpdateProfileInput{Name: "  New Name  "})
	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
	assert.NotEmpty(t, token)

	claims, err := s.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	s, _ := newTestService(t)
	created, _ := register(t, s, "A", "a@x.com", "secret1", "")

	_, token, err := s.UpdateProfile(context.Background(), created.ID, UpdateProfileInput{
		CurrentPassword: "secret1", NewPassword: "novasenha123",
	})
	require.NoError(t, err)

	claims, err := s.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID, "fresh token still bound to the account")

	_, _, err = s.Login(context.Background(), "a@x.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials, "old password must no longer verify")

	_, _, err = s.Login(context.Background(), "a@x.com", "novasenha123")
	require.NoError(t, err, "new password must verify")
}

func TestUpdateProfileWrongCurrentPassword(t *testing.T) {
	s, _ := newTestService(t)
	created, _ := register(t, s, "A", "a@x.com", "secret1", "")

	_, _, err := s.UpdateProfile(context.Background(), created.ID, UpdateProfileInput{
		CurrentPassword: "wrong-password", NewPassword: "novasenha123",
	})
	require.ErrorIs(t, err, ErrWrongPassword)

	// No changes applied: the old password still works.
	_, _, err = s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
}

func TestUpdateProfileShortNewPassword(t *testing.T) {
	s, _ := newTestService(t)
	created, _ := register(t, s, "A", "a@x.com", "secret1", "")

	_, _, err := s.UpdateProfile(context.Background(), created.ID, UpdateProfileInput{
		CurrentPassword: "secret1", NewPassword: "123",
	})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)

	// Stored hash untouched.
	_, _, err = s.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
}

func TestUpdateProfileNotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, _, err := s.UpdateProfile(context.Background(), "no-such-id", UpdateProfileInput{Name: "X"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsersSanitized(t *testing.T) {
	s, _ := newTestService(t)
	register(t, s, "A", "a@x.com", "secret1", "")
	register(t, s, "B", "b@x.com", "secret2", entity.RoleAdmin)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
		assert.Empty(t, u.Password)
	}
}

func TestRegisterNoSecretFails(t *testing.T) {
	repo := memory.NewUserRepository()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s := NewAuthService(repo, helpers.NewJWTManager("", time.Hour), nil, logger, time.Minute)

	_, _, err := s.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.ErrorIs(t, err, helpers.ErrNoSecret)
}
