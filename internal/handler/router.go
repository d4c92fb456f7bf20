package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/devlinkhq/devlink/internal/auth"
	"github.com/devlinkhq/devlink/internal/middleware"
	"github.com/devlinkhq/devlink/internal/repository"
)

// NewRouter wires all routes under /api/v1. Protected routes are wrapped by
// the authentication gate; everything else is public.
func NewRouter(
	logger *zerolog.Logger,
	jwtIssuer *auth.JWTIssuer,
	userRepo repository.UserRepository,
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	postHandler *PostHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(hlog.NewHandler(*logger))
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(chimiddleware.Recoverer)

	requireAuth := middleware.RequireAuth(jwtIssuer, userRepo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
			r.Post("/forgotPassword", authHandler.ForgotPassword)
			r.Post("/resetPassword/{resetToken}", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/current", authHandler.Current)
				r.Patch("/updatePassword", authHandler.UpdatePassword)
				r.Delete("/", authHandler.DeleteAccount)
			})
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", profileHandler.List)
			r.Get("/handle/{handle}", profileHandler.ByHandle)
			r.Get("/{id}", profileHandler.ByID)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", profileHandler.Upsert)
				r.Get("/current", profileHandler.Current)
				r.Post("/experience", profileHandler.AddExperience)
				r.Delete("/experience/{expId}", profileHandler.RemoveExperience)
				r.Post("/education", profileHandler.AddEducation)
				r.Delete("/education/{eduId}", profileHandler.RemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/{postId}", postHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", postHandler.Create)
				r.Delete("/{postId}", postHandler.Delete)
				r.Post("/likes/{postId}", postHandler.Like)
				r.Post("/unlikes/{postId}", postHandler.Unlike)
				r.Post("/comments/{postId}", postHandler.Comment)
				r.Delete("/comments/{postId}/{commentId}", postHandler.DeleteComment)
			})
		})
	})

	return r
}

func accessLogger(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
}
