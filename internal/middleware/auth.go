package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/devlinkhq/devlink/internal/auth"
	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/repository"
)

type callerKey struct{}

// RequireAuth gates protected routes. It extracts the bearer token from the
// Authorization header, verifies it and re-fetches the account it names —
// session tokens carry identity only, so account state is always re-read
// from the store. Every failure, including an account that no longer
// exists, is the same 401 so the gate reveals nothing about why.
func RequireAuth(jwtIssuer *auth.JWTIssuer, userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthenticated(w)
				return
			}

			userID, err := jwtIssuer.Verify(token)
			if err != nil {
				unauthenticated(w)
				return
			}

			user, err := userRepo.GetUser(r.Context(), userID)
			if err != nil {
				unauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Caller returns the account bound to the request by RequireAuth.
func Caller(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(callerKey{}).(*model.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "Failed",
		"message": "Unauthenticated",
	})
}
