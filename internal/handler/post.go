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

// PostHandler serves the post endpoints.
type PostHandler struct {
	postUsecase usecase.PostUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewPostHandler(
	postUsecase usecase.PostUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	post, err := h.postUsecase.CreatePost(r.Context(), user, req.Text)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusCreated, envelope{
		"message": "Post was successfully created",
		"post":    post,
	})
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postUsecase.ListPosts(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"posts": posts})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postUsecase.GetPost(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		h.respondPostError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{"post": post})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	if err := h.postUsecase.DeletePost(r.Context(), user, chi.URLParam(r, "postId")); err != nil {
		h.respondPostError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Post was successfully deleted",
	})
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	post, added, err := h.postUsecase.Like(r.Context(), user, chi.URLParam(r, "postId"))
	if err != nil {
		h.respondPostError(w, err)
		return
	}

	message := "Like was successfully removed"
	if added {
		message = "Like was successfully added"
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": message,
		"post":    post,
	})
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	post, added, err := h.postUsecase.Unlike(r.Context(), user, chi.URLParam(r, "postId"))
	if err != nil {
		h.respondPostError(w, err)
		return
	}

	message := "Unlike was successfully removed"
	if added {
		message = "Unlike was successfully added"
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": message,
		"post":    post,
	})
}

func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.Caller(r.Context())
	if !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(w, h.logger, apperror.BadRequest(err.Error()))
		return
	}

	post, err := h.postUsecase.Comment(r.Context(), user, chi.URLParam(r, "postId"), req.Text)
	if err != nil {
		h.respondPostError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, envelope{
		"message": "Comment was successfully added",
		"post":    post,
	})
}

func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.Caller(r.Context()); !ok {
		respondError(w, h.logger, apperror.Unauthorized("Unauthenticated"))
		return
	}

	postID := chi.URLParam(r, "postId")
	commentID := chi.URLParam(r, "commentId")

	if err := h.postUsecase.DeleteComment(r.Context(), postID, commentID); err != nil {
		h.respondPostError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, envelope{
		"message": "Comment was successfully deleted",
	})
}

func (h *PostHandler) respondPostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrPostNotFound):
		respondError(w, h.logger, apperror.NotFound("No post was found"))
	case errors.Is(err, usecase.ErrNotPostOwner):
		respondError(w, h.logger, apperror.Unauthorized("Unauthorized to delete this post"))
	case errors.Is(err, usecase.ErrCommentNotFound):
		respondError(w, h.logger, apperror.NotFound("No comment to delete"))
	default:
		respondError(w, h.logger, err)
	}
}
