package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openforum-dev/openforum/shared/api"
	"github.com/openforum-dev/openforum/shared/domain"
	"github.com/openforum-dev/openforum/shared/utils"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var req api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	t, err := h.content.CreateThread(r.Context(), domain.ThreadCreationData{
		Title:         req.Title,
		Body:          req.Body,
		CourseId:      req.CourseId,
		CommentableId: req.CommentableId,
		AuthorId:      req.AuthorId,
		ThreadType:    req.ThreadType,
		Context:       req.Context,
		GroupId:       req.GroupId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	utils.WriteJSON(w, threadToResult(&t))
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	t, err := h.content.GetThread(r.Context(), chi.URLParam(r, "thread_id"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, threadToResult(&t))
}

func (h *Handler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateThreadRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	t, err := h.content.UpdateThread(r.Context(), chi.URLParam(r, "thread_id"), domain.ThreadUpdate{
		Title:         req.Title,
		Body:          req.Body,
		CourseId:      req.CourseId,
		CommentableId: req.CommentableId,
		ThreadType:    req.ThreadType,
		Context:       req.Context,
		Closed:        req.Closed,
		GroupId:       req.GroupId,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, threadToResult(&t))
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteThread(r.Context(), chi.URLParam(r, "thread_id")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) VoteThread(w http.ResponseWriter, r *http.Request) {
	var req api.VoteRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	t, err := h.content.VoteThread(r.Context(), chi.URLParam(r, "thread_id"), req.UserId, req.Value == "up")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, threadToResult(&t))
}

func (h *Handler) UnvoteThread(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	if userId == "" {
		utils.WriteErrorAndStatusCode(w, badRequest("user_id parameter is required"))
		return
	}

	t, err := h.content.UnvoteThread(r.Context(), chi.URLParam(r, "thread_id"), userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, threadToResult(&t))
}

func (h *Handler) FlagThread(w http.ResponseWriter, r *http.Request) {
	h.flagThread(w, r, h.content.FlagThread)
}

func (h *Handler) UnflagThread(w http.ResponseWriter, r *http.Request) {
	h.flagThread(w, r, h.content.UnflagThread)
}

func (h *Handler) flagThread(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error)) {
	userId := r.URL.Query().Get("user_id")
	if userId == "" {
		utils.WriteErrorAndStatusCode(w, badRequest("user_id parameter is required"))
		return
	}

	t, err := op(r.Context(), chi.URLParam(r, "thread_id"), userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, threadToResult(&t))
}

func (h *Handler) PinThread(w http.ResponseWriter, r *http.Request) {
	h.pinThread(w, r, true)
}

func (h *Handler) UnpinThread(w http.ResponseWriter, r *http.Request) {
	h.pinThread(w, r, false)
}

func (h *Handler) pinThread(w http.ResponseWriter, r *http.Request, pinned bool) {
	t, err := h.content.PinThread(r.Context(), chi.URLParam(r, "thread_id"), pinned)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, threadToResult(&t))
}

func (h *Handler) MarkThreadRead(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	if userId == "" {
		utils.WriteErrorAndStatusCode(w, badRequest("user_id parameter is required"))
		return
	}

	if err := h.content.MarkRead(r.Context(), userId, chi.URLParam(r, "thread_id")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
