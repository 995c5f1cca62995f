package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openforum-dev/openforum/shared/api"
	"github.com/openforum-dev/openforum/shared/domain"
	"github.com/openforum-dev/openforum/shared/utils"
)

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	c, err := h.content.CreateComment(r.Context(), domain.CommentCreationData{
		Body:            req.Body,
		CourseId:        req.CourseId,
		CommentThreadId: chi.URLParam(r, "thread_id"),
		AuthorId:        req.AuthorId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, commentToResult(&c))
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateCommentRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	c, err := h.content.UpdateComment(r.Context(), chi.URLParam(r, "comment_id"), domain.CommentUpdate{
		Body:     req.Body,
		Endorsed: req.Endorsed,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, commentToResult(&c))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteComment(r.Context(), chi.URLParam(r, "comment_id")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) FlagComment(w http.ResponseWriter, r *http.Request) {
	h.flagComment(w, r, h.content.FlagComment)
}

func (h *Handler) UnflagComment(w http.ResponseWriter, r *http.Request) {
	h.flagComment(w, r, h.content.UnflagComment)
}

func (h *Handler) flagComment(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id domain.CommentId, userId domain.UserId) (domain.Comment, error)) {
	userId := r.URL.Query().Get("user_id")
	if userId == "" {
		utils.WriteErrorAndStatusCode(w, badRequest("user_id parameter is required"))
		return
	}

	c, err := op(r.Context(), chi.URLParam(r, "comment_id"), userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, commentToResult(&c))
}

func commentToResult(c *domain.Comment) api.CommentResult {
	return api.CommentResult{
		Id:              c.Id,
		Body:            c.Body,
		CourseId:        c.CourseId,
		CommentThreadId: c.CommentThreadId,
		AuthorId:        c.AuthorId,
		Endorsed:        c.Endorsed,
		Flagged:         c.Flagged(),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
