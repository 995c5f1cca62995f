// Package storage defines the content-store and read-marker contracts.
// The content store is the source of truth; the search index is a
// disposable projection rebuilt from it.
package storage

import (
	"context"
	"time"

	"github.com/openforum-dev/openforum/shared/domain"
)

type Storage interface {
	CreateThread(ctx context.Context, t *domain.Thread) error
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	GetThreads(ctx context.Context, ids []domain.ThreadId) ([]domain.Thread, error)
	// UpdateThread applies only the non-nil fields of upd, bumps
	// updated_at and last_activity_at, and returns the new document.
	UpdateThread(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdate) (domain.Thread, error)
	// DeleteThread soft-deletes the thread and its comments.
	DeleteThread(ctx context.Context, id domain.ThreadId) error
	// ListThreads returns all non-deleted threads (index rebuild).
	ListThreads(ctx context.Context) ([]domain.Thread, error)

	CreateComment(ctx context.Context, c *domain.Comment) error
	GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error)
	UpdateComment(ctx context.Context, id domain.CommentId, upd domain.CommentUpdate) (domain.Comment, error)
	DeleteComment(ctx context.Context, id domain.CommentId) error
	// ListThreadComments returns the non-deleted comments of a thread.
	ListThreadComments(ctx context.Context, threadId domain.ThreadId) ([]domain.Comment, error)

	Ping(ctx context.Context) error
}

// ReadMarkerStorage records when a user last read a thread. A thread
// is unread when no marker exists at or after its last activity.
type ReadMarkerStorage interface {
	MarkRead(ctx context.Context, userId domain.UserId, threadId domain.ThreadId, at time.Time) error
	LastReadAt(ctx context.Context, userId domain.UserId, threadId domain.ThreadId) (time.Time, bool, error)
}
