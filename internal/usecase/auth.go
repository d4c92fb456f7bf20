package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/devlinkhq/devlink/internal/auth"
	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/repository"
	"github.com/devlinkhq/devlink/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	SignUp(ctx context.Context, params SignUpParams) (*model.User, string, error)
	Login(ctx context.Context, params LoginParams) (*model.User, string, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// SignUpParams defines the parameters for user registration.
type SignUpParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type authUsecase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtIssuer   *auth.JWTIssuer
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	jwtIssuer *auth.JWTIssuer,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtIssuer:   jwtIssuer,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, params SignUpParams) (*model.User, string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Avatar:       model.DefaultAvatarURL,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}

		return nil, "", err
	}

	token, err := u.jwtIssuer.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if !security.VerifyPassword(params.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.jwtIssuer.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := u.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	// The profile is deleted best-effort after the user; an account without
	// a profile is valid, a profile without an account is not reachable.
	if err := u.profileRepo.DeleteProfileByUserID(ctx, userID); err != nil &&
		!errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	return nil
}
