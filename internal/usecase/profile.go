package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/repository"
)

// AvatarResolver looks up the avatar URL for an external username.
type AvatarResolver interface {
	AvatarURL(ctx context.Context, username string) (string, error)
}

// ProfileUsecase defines the business logic for user profiles.
type ProfileUsecase interface {
	// UpsertProfile creates the caller's profile or merges the given fields
	// into the existing one. The returned bool reports whether a profile was
	// created.
	UpsertProfile(ctx context.Context, user *model.User, params ProfileParams) (*model.Profile, bool, error)

	CurrentProfile(ctx context.Context, userID string) (*model.Profile, error)
	ProfileByHandle(ctx context.Context, handle string) (*model.Profile, error)
	ProfileByID(ctx context.Context, id string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.Profile, error)

	AddExperience(ctx context.Context, userID string, exp model.Experience) (*model.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*model.Profile, error)
	AddEducation(ctx context.Context, userID string, edu model.Education) (*model.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*model.Profile, error)
}

// ProfileParams defines the fields accepted when creating or updating a
// profile. Nil pointer fields are left untouched on update.
type ProfileParams struct {
	Handle         string
	Company        *string
	Website        *string
	Location       *string
	Status         string
	Skills         []string
	Bio            *string
	GithubUsername *string
	Social         *model.Social
}

var (
	ErrProfileNotFound = errors.New("profile was not found")
	ErrHandleTaken     = errors.New("handle already exists")
)

type profileUsecase struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	avatars     AvatarResolver
}

func NewProfileUsecase(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	avatars AvatarResolver,
) ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		avatars:     avatars,
	}
}

func (u *profileUsecase) UpsertProfile(
	ctx context.Context,
	user *model.User,
	params ProfileParams,
) (*model.Profile, bool, error) {
	existing, err := u.profileRepo.GetProfileByUserID(ctx, user.ID.Hex())
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	if existing == nil {
		profile, err := u.createProfile(ctx, user, params)
		if err != nil {
			return nil, false, err
		}
		return profile, true, nil
	}

	profile, err := u.updateProfile(ctx, user, existing, params)
	if err != nil {
		return nil, false, err
	}
	return profile, false, nil
}

func (u *profileUsecase) createProfile(
	ctx context.Context,
	user *model.User,
	params ProfileParams,
) (*model.Profile, error) {
	profile := &model.Profile{
		UserID: user.ID,
		Handle: params.Handle,
		Status: params.Status,
		Skills: params.Skills,
		Avatar: user.Avatar,
	}
	if params.Company != nil {
		profile.Company = *params.Company
	}
	if params.Website != nil {
		profile.Website = *params.Website
	}
	if params.Location != nil {
		profile.Location = *params.Location
	}
	if params.Bio != nil {
		profile.Bio = *params.Bio
	}
	if params.Social != nil {
		profile.Social = *params.Social
	}
	if params.GithubUsername != nil && *params.GithubUsername != "" {
		profile.GithubUsername = *params.GithubUsername
		profile.Avatar = u.resolveAvatar(ctx, user, *params.GithubUsername)
	}

	created, err := u.profileRepo.CreateProfile(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrHandleTaken
		}
		return nil, err
	}

	return created, nil
}

func (u *profileUsecase) updateProfile(
	ctx context.Context,
	user *model.User,
	existing *model.Profile,
	params ProfileParams,
) (*model.Profile, error) {
	update := repository.UpdateProfileParams{
		Company:        params.Company,
		Website:        params.Website,
		Location:       params.Location,
		Bio:            params.Bio,
		Social:         params.Social,
		GithubUsername: params.GithubUsername,
	}
	if params.Handle != "" {
		update.Handle = &params.Handle
	}
	if params.Status != "" {
		update.Status = &params.Status
	}
	if params.Skills != nil {
		update.Skills = params.Skills
	}

	if params.GithubUsername != nil && *params.GithubUsername != existing.GithubUsername {
		avatar := u.resolveAvatar(ctx, user, *params.GithubUsername)
		update.Avatar = &avatar
	}

	updated, err := u.profileRepo.UpdateProfile(ctx, existing.ID.Hex(), update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrHandleTaken
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return updated, nil
}

// resolveAvatar fetches the GitHub avatar for a username and mirrors it onto
// the user record. An empty username or a lookup failure falls back to the
// default avatar rather than failing the profile write.
func (u *profileUsecase) resolveAvatar(ctx context.Context, user *model.User, username string) string {
	avatar := model.DefaultAvatarURL
	if username != "" {
		if fetched, err := u.avatars.AvatarURL(ctx, username); err == nil && fetched != "" {
			avatar = fetched
		}
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		Avatar: &avatar,
	}); err != nil {
		return model.DefaultAvatarURL
	}

	return avatar
}

func (u *profileUsecase) CurrentProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return mapProfileErr(u.profileRepo.GetProfileByUserID(ctx, userID))
}

func (u *profileUsecase) ProfileByHandle(ctx context.Context, handle string) (*model.Profile, error) {
	return mapProfileErr(u.profileRepo.GetProfileByHandle(ctx, handle))
}

func (u *profileUsecase) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	return mapProfileErr(u.profileRepo.GetProfile(ctx, id))
}

func mapProfileErr(profile *model.Profile, err error) (*model.Profile, error) {
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	return u.profileRepo.ListProfiles(ctx)
}

func (u *profileUsecase) AddExperience(
	ctx context.Context,
	userID string,
	exp model.Experience,
) (*model.Profile, error) {
	profile, err := u.CurrentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u.profileRepo.AddExperience(ctx, profile.ID.Hex(), exp)
}

func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, expID string) (*model.Profile, error) {
	profile, err := u.CurrentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u.profileRepo.RemoveExperience(ctx, profile.ID.Hex(), expID)
}

func (u *profileUsecase) AddEducation(
	ctx context.Context,
	userID string,
	edu model.Education,
) (*model.Profile, error) {
	profile, err := u.CurrentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u.profileRepo.AddEducation(ctx, profile.ID.Hex(), edu)
}

func (u *profileUsecase) RemoveEducation(ctx context.Context, userID, eduID string) (*model.Profile, error) {
	profile, err := u.CurrentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u.profileRepo.RemoveEducation(ctx, profile.ID.Hex(), eduID)
}
