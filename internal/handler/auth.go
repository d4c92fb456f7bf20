package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/devlinkhq/devlink/internal/apperror"
	"github.com/devlinkhq/devlink/internal/middleware"
	"github.com/devlinkhq/devlink/internal/usecase"
	"github.com/devlinkhq/devlink/internal/validation"
)

// AuthHandler serves the account and password endpoints.
type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	resetUsecase usecase.PasswordResetUsecase
	validator    *validation.Validator
	logger       *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	resetUsecase usecase.PasswordResetUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		resetUsecase: resetUsecase,
		validator:    validator,
		logger:       logger,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	user, token, err := h.authUsecase.SignUp(r.Context(), usecase.SignUpParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			respondError(w, h.logger, apperror.BadRequest("Email already exists"))
			return
		}
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, envelope{
		"message": "User was successfully created",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, h.logger, apperror.BadRequest("Please provide both email and password"))
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondError(w, h.logger, apperror.BadRequest("Invalid email or password"))
			return
		}
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Successfully login",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"user": user})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if req.Email == "" {
		respondError(w, h.logger, apperror.BadRequest("Please provide an email"))
		return
	}

	if err := h.resetUsecase.RequestReset(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailNotFound):
			respondError(w, h.logger, apperror.NotFound("Email was not found"))
		case errors.Is(err, usecase.ErrEmailDelivery):
			respondError(w, h.logger, apperror.New(
				http.StatusInternalServerError,
				"An error occurred while sending the email",
			))
		default:
			respondError(w, h.logger, err)
		}
		return
	}

	// Success does not say whether the email reached an inbox, only that a
	// reset was initiated.
	respondSuccess(w, http.StatusOK, envelope{
		"message": "Please check your email for password reset",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	resetToken := chi.URLParam(r, "resetToken")
	if resetToken == "" {
		respondError(w, h.logger, apperror.Unauthorized("Unauthorized"))
		return
	}

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if req.Password == "" || req.PasswordConfirm == "" {
		respondError(w, h.logger, apperror.Unauthorized("Please provide password and password confirmation"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	if err := h.resetUsecase.CompleteReset(r.Context(), resetToken, req.Password); err != nil {
		if errors.Is(err, usecase.ErrTokenInvalidOrExpired) {
			respondError(w, h.logger, apperror.BadRequest("Token is invalid or has expired"))
			return
		}
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Password was successfully changed",
	})
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if req.OldPassword == "" {
		respondError(w, h.logger, apperror.BadRequest("Please provide old password"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.resetUsecase.UpdatePassword(r.Context(), user, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, usecase.ErrWrongPassword) {
			respondError(w, h.logger, apperror.Unauthorized("Incorrect old password"))
			return
		}
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Password was successfully changed",
		"user":    updated,
	})
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	if err := h.authUsecase.DeleteAccount(r.Context(), user.ID.Hex()); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Successfully deleted account",
	})
}
