package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_IssueVerifyRoundtrip(t *testing.T) {
	issuer := NewJWTIssuer("secret", "devlink", 2*time.Hour)

	token, err := issuer.Issue("64f1c9a2e5b3d40012345678")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c9a2e5b3d40012345678", userID)
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := NewJWTIssuer("secret", "devlink", -time.Minute)

	token, err := issuer.Issue("64f1c9a2e5b3d40012345678")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_Tampered(t *testing.T) {
	issuer := NewJWTIssuer("secret", "devlink", time.Hour)

	token, err := issuer.Issue("64f1c9a2e5b3d40012345678")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	token, err := NewJWTIssuer("secret", "devlink", time.Hour).Issue("64f1c9a2e5b3d40012345678")
	require.NoError(t, err)

	_, err = NewJWTIssuer("other", "devlink", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_Malformed(t *testing.T) {
	issuer := NewJWTIssuer("secret", "devlink", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
