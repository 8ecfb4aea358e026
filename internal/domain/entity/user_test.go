package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaultsAndNormalization(t *testing.T) {
	u, err := NewUser("  João Silva  ", "  JOAO@Exemplo.COM  ", "senha123456", "")
	require.NoError(t, err)

	assert.Equal(t, "João Silva", u.Name)
	assert.Equal(t, "joao@exemplo.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.PasswordChanged)
	assert.Equal(t, "senha123456", u.Password)
	assert.Empty(t, u.PasswordHash)
}

func TestNewUserExplicitRole(t *testing.T) {
	u, err := NewUser("Admin", "admin@exemplo.com", "senha123456", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestNewUserRequiredFields(t *testing.T) {
	cases := []struct {
		name, email, password, field, msg string
	}{
		{"", "joao@exemplo.com", "senha123456", "name", "Name is required"},
		{"   ", "joao@exemplo.com", "senha123456", "name", "Name is required"},
		{"João", "", "senha123456", "email", "Email is required"},
		{"João", "joao@exemplo.com", "", "password", "Password is required"},
	}
	for _, tc := range cases {
		_, err := NewUser(tc.name, tc.email, tc.password, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "case %+v", tc)
		assert.Equal(t, tc.field, verr.Field)
		assert.Equal(t, tc.msg, verr.Message)
	}
}

func TestNewUserEmailGrammar(t *testing.T) {
	valid := []string{
		"test@exemplo.com",
		"user@domain.com",
		"user123@test.com",
		"first.last@sub.domain.org",
	}
	for _, email := range valid {
		_, err := NewUser("Test User", email, "senha123456", "")
		assert.NoError(t, err, "email %q", email)
	}

	invalid := []string{
		"email-sem-arroba",
		"email@",
		"@domain.com",
		"email..duplo@domain.com",
		"email@domain",
		"email@.domain.com",
	}
	for _, email := range invalid {
		_, err := NewUser("Test User", email, "senha123456", "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "email %q", email)
		assert.Equal(t, "Please provide a valid email", verr.Message)
	}
}

func TestNewUserShortPassword(t *testing.T) {
	for _, pw := range []string{"1", "12", "123", "1234", "12345"} {
		_, err := NewUser("Test User", "test@exemplo.com", pw, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "password %q", pw)
		assert.Equal(t, "Password must be at least 6 characters long", verr.Message)
	}
}

func TestNewUserInvalidRole(t *testing.T) {
	for _, role := range []string{"superuser", "moderator", "guest", "ADMIN"} {
		_, err := NewUser("Test User", "test@exemplo.com", "senha123456", role)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "role %q", role)
		assert.Equal(t, "role", verr.Field)
	}
}

func TestValidateSkipsPasswordWhenNotStaged(t *testing.T) {
	// A loaded account has a hash and no staged plaintext; it must validate.
	u := &User{Name: "Test", Email: "test@exemplo.com", PasswordHash: "$2a$10$something", Role: RoleUser}
	assert.NoError(t, u.Validate())
}

func TestSetPasswordRaisesFlag(t *testing.T) {
	u := &User{Name: "Test", Email: "test@exemplo.com", PasswordHash: "old-hash", Role: RoleUser}
	u.SetPassword("novasenha123")

	assert.True(t, u.PasswordChanged)
	assert.Equal(t, "novasenha123", u.Password)
	assert.Equal(t, "old-hash", u.PasswordHash, "hash untouched until persist")
}

func TestSanitizedStripsSecrets(t *testing.T) {
	u := &User{ID: "1", Name: "Test", Email: "test@exemplo.com", Password: "plain", PasswordHash: "hash", PasswordChanged: true, Role: RoleUser}
	s := u.Sanitized()

	assert.Empty(t, s.Password)
	assert.Empty(t, s.PasswordHash)
	assert.False(t, s.PasswordChanged)
	assert.Equal(t, "1", s.ID)
	// Original is untouched.
	assert.Equal(t, "hash", u.PasswordHash)
}
