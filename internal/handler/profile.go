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

// ProfileHandler serves the profile endpoints.
type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

func NewProfileHandler(
	profileUsecase usecase.ProfileUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
		logger:         logger,
	}
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	profile, created, err := h.profileUsecase.UpsertProfile(r.Context(), user, req.toParams())
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	message := "Profile was successfully updated"
	if created {
		message = "Profile was successfully created"
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": message,
		"profile": profile,
	})
}

func (h *ProfileHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	profile, err := h.profileUsecase.CurrentProfile(r.Context(), user.ID.Hex())
	if err != nil {
		if errors.Is(err, usecase.ErrProfileNotFound) {
			respondError(w, h.logger, apperror.NotFound("User profile was not found"))
			return
		}
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"profile": profile})
}

func (h *ProfileHandler) ByHandle(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.ProfileByHandle(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"profile": profile})
}

func (h *ProfileHandler) ByID(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.ProfileByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"profile": profile})
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileUsecase.ListProfiles(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"count":    len(profiles),
		"profiles": profiles,
	})
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	var req experienceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUsecase.AddExperience(r.Context(), user.ID.Hex(), req.toModel())
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"profile": profile})
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	profile, err := h.profileUsecase.RemoveExperience(r.Context(), user.ID.Hex(), chi.URLParam(r, "expId"))
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Successfully deleted experience",
		"profile": profile,
	})
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	var req educationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUsecase.AddEducation(r.Context(), user.ID.Hex(), req.toModel())
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"profile": profile})
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	profile, err := h.profileUsecase.RemoveEducation(r.Context(), user.ID.Hex(), chi.URLParam(r, "eduId"))
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Successfully deleted education",
		"profile": profile,
	})
}

func (h *ProfileHandler) respondProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		respondError(w, h.logger, apperror.NotFound("No profile was found"))
	case errors.Is(err, usecase.ErrHandleTaken):
		respondError(w, h.logger, apperror.BadRequest("Handle already exists"))
	default:
		respondError(w, h.logger, err)
	}
}
