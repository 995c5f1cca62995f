// Package handler translates HTTP requests into service calls.
// Handlers own parsing and status codes only; all business rules live
// one layer down.
package handler

import (
	"context"

	"github.com/openforum-dev/openforum/shared/domain"
)

type SearchService interface {
	SearchThreads(ctx context.Context, filters domain.SearchFilters) (domain.PageResult, error)
}

type ContentService interface {
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	UpdateThread(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdate) (domain.Thread, error)
	DeleteThread(ctx context.Context, id domain.ThreadId) error

	CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
	UpdateComment(ctx context.Context, id domain.CommentId, upd domain.CommentUpdate) (domain.Comment, error)
	DeleteComment(ctx context.Context, id domain.CommentId) error

	VoteThread(ctx context.Context, id domain.ThreadId, userId domain.UserId, up bool) (domain.Thread, error)
	UnvoteThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error)
	FlagThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error)
	UnflagThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error)
	FlagComment(ctx context.Context, id domain.CommentId, userId domain.UserId) (domain.Comment, error)
	UnflagComment(ctx context.Context, id domain.CommentId, userId domain.UserId) (domain.Comment, error)
	PinThread(ctx context.Context, id domain.ThreadId, pinned bool) (domain.Thread, error)
	MarkRead(ctx context.Context, userId domain.UserId, threadId domain.ThreadId) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	search  SearchService
	content ContentService
	storage Pinger
}

func NewHandler(search SearchService, content ContentService, storage Pinger) *Handler {
	return &Handler{search: search, content: content, storage: storage}
}
