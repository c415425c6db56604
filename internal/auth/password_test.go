package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret")
	require.NoError(t, err)
	h2, err := HashPassword("secret")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "equal inputs must hash differently")
	require.True(t, CheckPassword("secret", h1))
	require.True(t, CheckPassword("secret", h2))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret")
	require.NoError(t, err)

	require.False(t, CheckPassword("wrong", h))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.False(t, CheckPassword("secret", "not-a-bcrypt-hash"))
	require.False(t, CheckPassword("secret", ""))
}
