package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	require.True(t, CompareHashAndPassword(hash, "secret1"))
	require.False(t, CompareHashAndPassword(hash, "secret2"))
}

func TestHashPasswordSalted(t *testing.T) {
	// bcrypt salts every hash; identical plaintexts must not collide.
	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestCompareHashAndPasswordGarbageHash(t *testing.T) {
	require.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "secret1"))
	require.False(t, CompareHashAndPassword("", ""))
}
