package entity

import (
	"regexp"
	"strings"
	"time"
)

// Roles an account may hold. Anything else is rejected at validation time.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// MinPasswordLength is enforced on the plaintext before hashing.
const MinPasswordLength = 6

// emailRe mirrors the account rules: word characters with single dot/dash
// separators on both sides, domain ending in a dot-separated 2-3 letter
// label. Rejects consecutive dots and dotless domains.
var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidationError reports a single invalid account field. The message is a
// fixed wire string returned to clients as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// User is the aggregate root for the account domain.
// PasswordHash holds the bcrypt hash; Password holds a transient plaintext
// that exists only between a password change and the next persist, guarded
// by the PasswordChanged flag. Neither field ever leaves this process.
type User struct {
	ID           string
	Name         string
	Email        string
	Password     string `json:"-"` // transient plaintext, set via SetPassword
	PasswordHash string `json:"-"`
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// PasswordChanged signals the persist path that Password carries a new
	// plaintext which must be hashed before the record is written. Replaces
	// ORM-style dirty tracking with an explicit flag.
	PasswordChanged bool `json:"-"`
}

// NewUser builds a normalized, validated account with the given plaintext
// password pending hash. Role defaults to RoleUser when empty.
func NewUser(name, email, password, role string) (*User, error) {
	if role == "" {
		role = RoleUser
	}
	u := &User{
		Name:  strings.TrimSpace(name),
		Email: NormalizeEmail(email),
		Role:  role,
	}
	u.SetPassword(password)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail trims and lower-cases an email address. All lookups and
// stored values go through this so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword stages a new plaintext password and raises PasswordChanged so
// the persist path re-hashes. The hash itself stays untouched until then.
func (u *User) SetPassword(plain string) {
	u.Password = plain
	u.PasswordChanged = true
}

// Validate checks the account invariants. The plaintext password is only
// checked when a change is staged; already-hashed accounts pass.
func (u *User) Validate() error {
	if u.Name == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if u.Email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if !emailRe.MatchString(u.Email) {
		return &ValidationError{Field: "email", Message: "Please provide a valid email"}
	}
	if u.PasswordChanged {
		if u.Password == "" {
			return &ValidationError{Field: "password", Message: "Password is required"}
		}
		if len(u.Password) < MinPasswordLength {
			return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
		}
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return &ValidationError{Field: "role", Message: "Invalid role"}
	}
	return nil
}

// Sanitized returns a copy with every password field stripped. Applied
// unconditionally before an account leaves the application layer.
func (u *User) Sanitized() *User {
	cp := *u
	cp.Password = ""
	cp.PasswordHash = ""
	cp.PasswordChanged = false
	return &cp
}
