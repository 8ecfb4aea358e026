package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseExpiry(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", DefaultJWTExpiration},
		{"  ", DefaultJWTExpiration},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"1h", time.Hour},
		{"30m", 30 * time.Minute},
		{"60s", 60 * time.Second},
		{"3600", time.Hour},
		{"bogus", DefaultJWTExpiration},
		{"-5m", DefaultJWTExpiration},
		{"0d", DefaultJWTExpiration},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseExpiry(tc.in), "input %q", tc.in)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRATION", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultJWTExpiration, cfg.JWTExpiration)
	assert.Empty(t, cfg.JWTSecret, "signing secret must not default")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p",
		DBName: "authdb", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/authdb?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "http://a.test, http://b.test ,,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
