package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/devlinkhq/devlink/internal/apperror"
)

// envelope is the uniform response body: status is "Success" or "Failed".
type envelope map[string]any

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondSuccess(w http.ResponseWriter, status int, body envelope) {
	if body == nil {
		body = envelope{}
	}
	body["status"] = "Success"
	respondJSON(w, status, body)
}

// respondError translates a domain failure into the failure envelope. Errors
// without an apperror mapping are unexpected: they are logged and surfaced
// as an opaque 500 so internals never leak to the client.
func respondError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logger.Error().Err(err).Msg("unexpected error")
		appErr = apperror.New(http.StatusInternalServerError, "Something went wrong")
	}

	respondJSON(w, appErr.Status, envelope{
		"status":  "Failed",
		"message": appErr.Message,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.BadRequest("Invalid request body")
	}

	return nil
}
