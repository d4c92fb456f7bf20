package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundtrip(t *testing.T) {
	hash, err := HashPassword("abcdef")
	require.NoError(t, err)

	assert.NotEqual(t, "abcdef", hash)
	assert.True(t, VerifyPassword("abcdef", hash))
	assert.False(t, VerifyPassword("abcdeF", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	first, err := HashPassword("abcdef")
	require.NoError(t, err)

	second, err := HashPassword("abcdef")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("abcdef", first))
	assert.True(t, VerifyPassword("abcdef", second))
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("abcdef", "not-a-bcrypt-digest"))
}
