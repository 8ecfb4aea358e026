package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret is returned when a token is issued or verified without a
	// configured signing secret.
	ErrNoSecret = errors.New("jwt signing secret is not configured")
	// ErrTokenExpired marks a structurally valid token past its expiry.
	// Callers present the same outward failure as ErrInvalidToken; the
	// distinction exists for diagnostics only.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken covers malformed tokens and signature mismatches.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenClaims carries the identity claims embedded in issued tokens.
type TokenClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies bearer tokens with a shared HS256 secret.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl}
}

// Generate issues a signed token carrying the user id and role.
func (m *JWTManager) Generate(userID, role string) (string, error) {
	if len(m.Secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := &TokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

// Parse verifies the signature and expiry and returns the claims.
// Returns ErrTokenExpired for expired tokens and ErrInvalidToken for every
// other failure (malformed structure, wrong method, bad signature).
func (m *JWTManager) Parse(tokenStr string) (*TokenClaims, error) {
	if len(m.Secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := &TokenClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
