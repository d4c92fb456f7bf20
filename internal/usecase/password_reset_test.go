package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlinkhq/devlink/internal/config"
	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/security"
)

func newResetFixture(t *testing.T) (*fakeUserRepo, *fakeMailer, PasswordResetUsecase, *model.User) {
	t.Helper()

	repo := newFakeUserRepo()
	mail := &fakeMailer{}
	cfg := &config.Config{
		ResetTokenTTL: 15 * time.Minute,
		ResetURLBase:  "https://app.devlink.test/reset-password",
	}

	hash, err := security.HashPassword("original-password")
	require.NoError(t, err)

	user, err := repo.CreateUser(context.Background(), &model.User{
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: hash,
		Avatar:       model.DefaultAvatarURL,
	})
	require.NoError(t, err)

	return repo, mail, NewPasswordResetUsecase(repo, mail, cfg), user
}

// tokenFromMail extracts the plaintext reset token from the mailed URL.
func tokenFromMail(t *testing.T, mail *fakeMailer) string {
	t.Helper()

	require.NotEmpty(t, mail.lastURL)
	parts := strings.Split(mail.lastURL, "/")
	return parts[len(parts)-1]
}

func TestRequestReset_StoresHashAndMailsPlaintext(t *testing.T) {
	repo, mail, uc, user := newResetFixture(t)

	require.NoError(t, uc.RequestReset(context.Background(), user.Email))

	assert.Equal(t, []string{user.Email}, mail.sentTo)

	token := tokenFromMail(t, mail)
	assert.Len(t, token, 64)

	stored, err := repo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)

	// Only the digest is persisted, never the plaintext; the two reset
	// fields are set together.
	assert.Equal(t, security.HashResetToken(token), stored.PasswordResetTokenHash)
	assert.NotEqual(t, token, stored.PasswordResetTokenHash)
	require.NotNil(t, stored.PasswordResetExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *stored.PasswordResetExpiresAt, time.Minute)
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	_, mail, uc, _ := newResetFixture(t)

	err := uc.RequestReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrEmailNotFound)
	assert.Empty(t, mail.sentTo)
}

func TestRequestReset_DeliveryFailureRollsBack(t *testing.T) {
	repo, mail, uc, user := newResetFixture(t)
	mail.fail = true

	err := uc.RequestReset(context.Background(), user.Email)
	assert.ErrorIs(t, err, ErrEmailDelivery)

	stored, err := repo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, stored.PasswordResetTokenHash)
	assert.Nil(t, stored.PasswordResetExpiresAt)
}

func TestCompleteReset_SucceedsExactlyOnce(t *testing.T) {
	repo, mail, uc, user := newResetFixture(t)

	require.NoError(t, uc.RequestReset(context.Background(), user.Email))
	token := tokenFromMail(t, mail)

	require.NoError(t, uc.CompleteReset(context.Background(), token, "brand-new-password"))

	stored, err := repo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("brand-new-password", stored.PasswordHash))
	assert.False(t, security.VerifyPassword("original-password", stored.PasswordHash))
	assert.Empty(t, stored.PasswordResetTokenHash)
	assert.Nil(t, stored.PasswordResetExpiresAt)

	// The transition is terminal: replaying the same token fails.
	err = uc.CompleteReset(context.Background(), token, "yet-another-password")
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
	stored, err = repo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("brand-new-password", stored.PasswordHash))
}

func TestCompleteReset_WrongToken(t *testing.T) {
	_, _, uc, user := newResetFixture(t)

	require.NoError(t, uc.RequestReset(context.Background(), user.Email))

	err := uc.CompleteReset(context.Background(), strings.Repeat("ab", 32), "brand-new-password")
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
}

func TestCompleteReset_ExpiredToken(t *testing.T) {
	repo, mail, uc, user := newResetFixture(t)

	require.NoError(t, uc.RequestReset(context.Background(), user.Email))
	token := tokenFromMail(t, mail)

	repo.expireResetToken(user.ID.Hex())

	err := uc.CompleteReset(context.Background(), token, "brand-new-password")
	assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)

	stored, err := repo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("original-password", stored.PasswordHash))
}

func TestCompleteReset_ConcurrentAttemptsOneWinner(t *testing.T) {
	_, mail, uc, user := newResetFixture(t)

	require.NoError(t, uc.RequestReset(context.Background(), user.Email))
	token := tokenFromMail(t, mail)

	const attempts = 2
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(password string) {
			defer wg.Done()
			results <- uc.CompleteReset(context.Background(), token, password)
		}("concurrent-password-" + string(rune('a'+i)))
	}
	wg.Wait()
	close(results)

	var succeeded, invalid int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, ErrTokenInvalidOrExpired)
			invalid++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, invalid)
}

func TestUpdatePassword(t *testing.T) {
	repo, _, uc, user := newResetFixture(t)

	updated, err := uc.UpdatePassword(context.Background(), user, "original-password", "changed-password")
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("changed-password", updated.PasswordHash))

	stored, err := repo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("changed-password", stored.PasswordHash))
}

func TestUpdatePassword_WrongOldPassword(t *testing.T) {
	repo, _, uc, user := newResetFixture(t)

	_, err := uc.UpdatePassword(context.Background(), user, "not-the-password", "changed-password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	stored, err := repo.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.True(t, security.VerifyPassword("original-password", stored.PasswordHash))
}
