package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/devlinkhq/devlink/internal/config"
	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/repository"
	"github.com/devlinkhq/devlink/internal/security"
)

// ResetMailer delivers a password reset URL to a user.
type ResetMailer interface {
	SendPasswordReset(to, resetURL string, ttl time.Duration) error
}

// PasswordResetUsecase defines the business logic for the password reset
// token lifecycle and for authenticated password changes.
type PasswordResetUsecase interface {
	// RequestReset mints a reset token for the account behind the email,
	// persists its digest and mails the plaintext inside a reset URL. A
	// delivery failure rolls the stored digest back so no valid-looking
	// token is left dangling.
	RequestReset(ctx context.Context, email string) error

	// CompleteReset consumes a reset token and sets the new password. The
	// token is single-use: matching and clearing happen in one conditional
	// update, so a replay or a concurrent attempt with the same token fails.
	CompleteReset(ctx context.Context, token, newPassword string) error

	// UpdatePassword changes the password of an authenticated user after
	// verifying the old one.
	UpdatePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) (*model.User, error)
}

var (
	ErrEmailNotFound         = errors.New("email was not found")
	ErrEmailDelivery         = errors.New("an error occurred while sending the email")
	ErrTokenInvalidOrExpired = errors.New("token is invalid or has expired")
	ErrWrongPassword         = errors.New("incorrect old password")
)

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	mailer   ResetMailer
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer ResetMailer,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrEmailNotFound
		}
		return err
	}

	plaintext, tokenHash, err := security.GenerateResetToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(u.cfg.ResetTokenTTL)
	if err := u.userRepo.SetResetToken(ctx, user.ID.Hex(), tokenHash, expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/%s", u.cfg.ResetURLBase, plaintext)
	if err := u.mailer.SendPasswordReset(user.Email, resetURL, u.cfg.ResetTokenTTL); err != nil {
		// Roll back so the account is not left with a token that was never
		// delivered to its owner.
		if clearErr := u.userRepo.ClearResetToken(ctx, user.ID.Hex()); clearErr != nil {
			return clearErr
		}
		return ErrEmailDelivery
	}

	return nil
}

func (u *passwordResetUsecase) CompleteReset(ctx context.Context, token, newPassword string) error {
	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	tokenHash := security.HashResetToken(token)
	if _, err := u.userRepo.ConsumeResetToken(ctx, tokenHash, passwordHash); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenInvalidOrExpired
		}
		return err
	}

	return nil
}

func (u *passwordResetUsecase) UpdatePassword(
	ctx context.Context,
	user *model.User,
	oldPassword, newPassword string,
) (*model.User, error) {
	if !security.VerifyPassword(oldPassword, user.PasswordHash) {
		return nil, ErrWrongPassword
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	updated, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
