package security

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	plaintext, hash, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, plaintext, 64)
	_, err = hex.DecodeString(plaintext)
	assert.NoError(t, err)

	assert.Equal(t, HashResetToken(plaintext), hash)
	assert.NotEqual(t, plaintext, hash)
}

func TestGenerateResetToken_Unique(t *testing.T) {
	first, _, err := GenerateResetToken()
	require.NoError(t, err)

	second, _, err := GenerateResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("candidate"), HashResetToken("candidate"))
	assert.NotEqual(t, HashResetToken("candidate"), HashResetToken("other"))
}
