package service

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openforum-dev/openforum/internal/storage"
	"github.com/openforum-dev/openforum/shared/domain"
	internal_errors "github.com/openforum-dev/openforum/shared/errors"
	"github.com/openforum-dev/openforum/shared/logger"
)

// Content owns thread and comment mutations. Every write lands in the
// content store first; the index projection runs after and its failure
// never fails the mutation (the index can always be rebuilt).
type Content struct {
	storage   storage.Storage
	markers   storage.ReadMarkerStorage
	projector *Projector
}

func NewContent(st storage.Storage, markers storage.ReadMarkerStorage, projector *Projector) *Content {
	return &Content{storage: st, markers: markers, projector: projector}
}

// projectAsync-by-contract: projection failures are logged and counted,
// never returned to the mutation caller.
func (c *Content) project(err error) {
	if err != nil {
		projectionFailures.Inc()
		logger.Log.Error("index projection failed", "error", err.Error())
	}
}

func (c *Content) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	if data.Title == "" || data.Body == "" {
		return domain.Thread{}, &internal_errors.ValidationError{Message: "title and body are required"}
	}
	threadType := data.ThreadType
	if threadType == "" {
		threadType = domain.ThreadTypeDiscussion
	}
	if !domain.ValidThreadType(threadType) {
		return domain.Thread{}, &internal_errors.ValidationError{Message: "unknown thread_type"}
	}
	threadContext := data.Context
	if threadContext == "" {
		threadContext = domain.ContextCourse
	}
	if !domain.ValidContext(threadContext) {
		return domain.Thread{}, &internal_errors.ValidationError{Message: "unknown context"}
	}

	now := time.Now().UTC()
	t := domain.Thread{
		Id:             uuid.NewString(),
		Title:          data.Title,
		Body:           data.Body,
		CourseId:       data.CourseId,
		CommentableId:  data.CommentableId,
		AuthorId:       data.AuthorId,
		ThreadType:     threadType,
		Context:        threadContext,
		GroupId:        data.GroupId,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastActivityAt: now,
	}
	if err := c.storage.CreateThread(ctx, &t); err != nil {
		return domain.Thread{}, err
	}
	c.project(c.projector.ProjectThread(ctx, t.Id))
	return t, nil
}

func (c *Content) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	t, err := c.storage.GetThread(ctx, id)
	if err != nil {
		return domain.Thread{}, err
	}
	if t.Deleted {
		return domain.Thread{}, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: http.StatusNotFound}
	}
	return t, nil
}

func (c *Content) UpdateThread(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdate) (domain.Thread, error) {
	if upd.ThreadType != nil && !domain.ValidThreadType(*upd.ThreadType) {
		return domain.Thread{}, &internal_errors.ValidationError{Message: "unknown thread_type"}
	}
	if upd.Context != nil && !domain.ValidContext(*upd.Context) {
		return domain.Thread{}, &internal_errors.ValidationError{Message: "unknown context"}
	}
	t, err := c.storage.UpdateThread(ctx, id, upd)
	if err != nil {
		return domain.Thread{}, err
	}
	c.project(c.projector.ProjectThread(ctx, id))
	return t, nil
}

// DeleteThread soft-deletes the thread with its comments and removes
// their index documents. Comment ids are captured before the cascade.
func (c *Content) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	comments, err := c.storage.ListThreadComments(ctx, id)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteThread(ctx, id); err != nil {
		return err
	}
	commentIds := make([]domain.CommentId, len(comments))
	for i := range comments {
		commentIds[i] = comments[i].Id
	}
	c.project(c.projector.RemoveThread(ctx, id, commentIds))
	return nil
}

func (c *Content) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	if data.Body == "" {
		return domain.Comment{}, &internal_errors.ValidationError{Message: "body is required"}
	}
	now := time.Now().UTC()
	cm := domain.Comment{
		Id:              uuid.NewString(),
		Body:            data.Body,
		CourseId:        data.CourseId,
		CommentThreadId: data.CommentThreadId,
		AuthorId:        data.AuthorId,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := c.storage.CreateComment(ctx, &cm); err != nil {
		return domain.Comment{}, err
	}
	c.project(c.projector.ProjectComment(ctx, cm.Id))
	return cm, nil
}

func (c *Content) UpdateComment(ctx context.Context, id domain.CommentId, upd domain.CommentUpdate) (domain.Comment, error) {
	cm, err := c.storage.UpdateComment(ctx, id, upd)
	if err != nil {
		return domain.Comment{}, err
	}
	c.project(c.projector.ProjectComment(ctx, id))
	return cm, nil
}

func (c *Content) DeleteComment(ctx context.Context, id domain.CommentId) error {
	if err := c.storage.DeleteComment(ctx, id); err != nil {
		return err
	}
	// reprojects the parent too: comment_count and unanswered move
	c.project(c.projector.ProjectComment(ctx, id))
	return nil
}

// VoteThread records a single up or down vote per user; revoting the
// other way moves the vote.
func (c *Content) VoteThread(ctx context.Context, id domain.ThreadId, userId domain.UserId, up bool) (domain.Thread, error) {
	t, err := c.GetThread(ctx, id)
	if err != nil {
		return domain.Thread{}, err
	}
	votes := domain.Votes{
		Up:   without(t.Votes.Up, string(userId)),
		Down: without(t.Votes.Down, string(userId)),
	}
	if up {
		votes.Up = append(votes.Up, string(userId))
	} else {
		votes.Down = append(votes.Down, string(userId))
	}
	return c.UpdateThread(ctx, id, domain.ThreadUpdate{Votes: &votes})
}

func (c *Content) UnvoteThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error) {
	t, err := c.GetThread(ctx, id)
	if err != nil {
		return domain.Thread{}, err
	}
	votes := domain.Votes{
		Up:   without(t.Votes.Up, string(userId)),
		Down: without(t.Votes.Down, string(userId)),
	}
	return c.UpdateThread(ctx, id, domain.ThreadUpdate{Votes: &votes})
}

func (c *Content) FlagThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error) {
	t, err := c.GetThread(ctx, id)
	if err != nil {
		return domain.Thread{}, err
	}
	flaggers := append(without(t.AbuseFlaggers, string(userId)), string(userId))
	return c.UpdateThread(ctx, id, domain.ThreadUpdate{AbuseFlaggers: &flaggers})
}

func (c *Content) UnflagThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error) {
	t, err := c.GetThread(ctx, id)
	if err != nil {
		return domain.Thread{}, err
	}
	flaggers := without(t.AbuseFlaggers, string(userId))
	return c.UpdateThread(ctx, id, domain.ThreadUpdate{AbuseFlaggers: &flaggers})
}

func (c *Content) FlagComment(ctx context.Context, id domain.CommentId, userId domain.UserId) (domain.Comment, error) {
	cm, err := c.storage.GetComment(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	flaggers := append(without(cm.AbuseFlaggers, string(userId)), string(userId))
	return c.UpdateComment(ctx, id, domain.CommentUpdate{AbuseFlaggers: &flaggers})
}

func (c *Content) UnflagComment(ctx context.Context, id domain.CommentId, userId domain.UserId) (domain.Comment, error) {
	cm, err := c.storage.GetComment(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	flaggers := without(cm.AbuseFlaggers, string(userId))
	return c.UpdateComment(ctx, id, domain.CommentUpdate{AbuseFlaggers: &flaggers})
}

func (c *Content) PinThread(ctx context.Context, id domain.ThreadId, pinned bool) (domain.Thread, error) {
	return c.UpdateThread(ctx, id, domain.ThreadUpdate{Pinned: &pinned})
}

// MarkRead records that the user has seen the thread as of now.
func (c *Content) MarkRead(ctx context.Context, userId domain.UserId, threadId domain.ThreadId) error {
	if _, err := c.GetThread(ctx, threadId); err != nil {
		return err
	}
	return c.markers.MarkRead(ctx, userId, threadId, time.Now().UTC())
}

// Rebuild replays the whole content store into the index.
func (c *Content) Rebuild(ctx context.Context) error {
	return c.projector.Rebuild(ctx)
}

func without(list []string, item string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}
