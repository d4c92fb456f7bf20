package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/devlinkhq/devlink/internal/auth"
	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/repository"
)

// stubUserRepo resolves a single known user; every other lookup misses.
type stubUserRepo struct {
	repository.UserRepository

	user *model.User
}

func (r *stubUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	if r.user != nil && r.user.ID.Hex() == id {
		return r.user, nil
	}

	return nil, mongo.ErrNoDocuments
}

func newGate(user *model.User) (http.Handler, *auth.JWTIssuer) {
	issuer := auth.NewJWTIssuer("test-secret", "devlink", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := Caller(r.Context())
		if !ok {
			http.Error(w, "caller missing", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(caller.Email))
	})

	return RequireAuth(issuer, &stubUserRepo{user: user})(next), issuer
}

func TestRequireAuth_BindsCaller(t *testing.T) {
	user := &model.User{ID: bson.NewObjectID(), Email: "dana@example.com"}
	gate, issuer := newGate(user)

	token, err := issuer.Issue(user.ID.Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dana@example.com", rec.Body.String())
}

func TestRequireAuth_MissingOrMalformedHeader(t *testing.T) {
	user := &model.User{ID: bson.NewObjectID(), Email: "dana@example.com"}
	gate, issuer := newGate(user)

	token, err := issuer.Issue(user.ID.Hex())
	require.NoError(t, err)

	headers := map[string]string{
		"no header":      "",
		"no scheme":      token,
		"wrong scheme":   "Basic " + token,
		"empty token":    "Bearer ",
		"garbage token":  "Bearer not-a-jwt",
		"tampered token": "Bearer " + token[:len(token)-2] + "xx",
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"status":"Failed","message":"Unauthenticated"}`, rec.Body.String())
		})
	}
}

func TestRequireAuth_AccountGone(t *testing.T) {
	// Token is valid but the account it names no longer exists; the gate
	// must answer Unauthenticated, not NotFound.
	gate, issuer := newGate(nil)

	token, err := issuer.Issue(bson.NewObjectID().Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":"Failed","message":"Unauthenticated"}`, rec.Body.String())
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	user := &model.User{ID: bson.NewObjectID(), Email: "dana@example.com"}

	expired := auth.NewJWTIssuer("test-secret", "devlink", -time.Minute)
	token, err := expired.Issue(user.ID.Hex())
	require.NoError(t, err)

	gate, _ := newGate(user)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
