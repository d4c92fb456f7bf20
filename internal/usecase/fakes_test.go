package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository. A single mutex guards every
// operation, which mirrors the per-document atomicity the Mongo
// implementation relies on for ConsumeResetToken.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, mongo.CommandError{Code: 11000, Message: "duplicate key error"}
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID.Hex()] = &clone

	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Avatar != nil {
		user.Avatar = *params.Avatar
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.users, id)
	return user, nil
}

func (r *fakeUserRepo) SetResetToken(
	_ context.Context,
	id string,
	tokenHash string,
	expiresAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.PasswordResetTokenHash = tokenHash
	user.PasswordResetExpiresAt = &expiresAt

	return nil
}

func (r *fakeUserRepo) ClearResetToken(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.PasswordResetTokenHash = ""
	user.PasswordResetExpiresAt = nil

	return nil
}

func (r *fakeUserRepo) ConsumeResetToken(
	_ context.Context,
	tokenHash, newPasswordHash string,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.PasswordResetTokenHash != tokenHash {
			continue
		}
		if user.PasswordResetExpiresAt == nil || !user.PasswordResetExpiresAt.After(time.Now()) {
			continue
		}

		user.PasswordHash = newPasswordHash
		user.PasswordResetTokenHash = ""
		user.PasswordResetExpiresAt = nil
		user.UpdatedAt = time.Now()

		clone := *user
		return &clone, nil
	}

	return nil, mongo.ErrNoDocuments
}

// expireResetToken backdates the stored expiry so the token window has
// already closed.
func (r *fakeUserRepo) expireResetToken(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[id]; ok && user.PasswordResetExpiresAt != nil {
		past := time.Now().Add(-time.Minute)
		user.PasswordResetExpiresAt = &past
	}
}

// fakeProfileRepo implements only what the auth usecase touches.
type fakeProfileRepo struct {
	repository.ProfileRepository

	mu      sync.Mutex
	deleted []string
}

func (r *fakeProfileRepo) DeleteProfileByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleted = append(r.deleted, userID)
	return nil
}

// fakeMailer records sent reset URLs and can be told to fail.
type fakeMailer struct {
	mu      sync.Mutex
	fail    bool
	sentTo  []string
	lastURL string
}

func (m *fakeMailer) SendPasswordReset(to, resetURL string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errSMTPDown
	}

	m.sentTo = append(m.sentTo, to)
	m.lastURL = resetURL

	return nil
}

var errSMTPDown = errors.New("smtp connection refused")
