package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"html"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/openforum-dev/openforum/internal/search"
	"github.com/openforum-dev/openforum/internal/storage"
	"github.com/openforum-dev/openforum/shared/domain"
	internal_errors "github.com/openforum-dev/openforum/shared/errors"
)

const lockStripes = 64

// Projector synchronizes content-store documents into the search
// index. Overwrites are idempotent and keyed by document id; per-id
// striped locks serialize concurrent projections of the same id, so
// the last store read wins.
type Projector struct {
	storage   storage.Storage
	engine    search.Engine
	sanitizer *bluemonday.Policy
	locks     [lockStripes]sync.Mutex
}

func NewProjector(st storage.Storage, engine search.Engine) *Projector {
	return &Projector{
		storage:   st,
		engine:    engine,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (p *Projector) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &p.locks[h.Sum32()%lockStripes]
}

// cleanText strips markup so tags never match search terms.
func (p *Projector) cleanText(s string) string {
	return html.UnescapeString(p.sanitizer.Sanitize(s))
}

func projectionErr(id string, err error) error {
	return &internal_errors.ProjectionError{DocumentId: id, Err: err}
}

// ProjectThread rebuilds the thread's search document from the store.
// A missing or soft-deleted thread removes the document instead.
func (p *Projector) ProjectThread(ctx context.Context, id domain.ThreadId) error {
	mu := p.lock(id)
	mu.Lock()
	defer mu.Unlock()
	return p.projectThreadLocked(ctx, id)
}

func (p *Projector) projectThreadLocked(ctx context.Context, id domain.ThreadId) error {
	t, err := p.storage.GetThread(ctx, id)
	if err != nil {
		if isNotFound(err) {
			if err := p.engine.Delete(id); err != nil {
				return projectionErr(id, err)
			}
			return nil
		}
		return projectionErr(id, err)
	}
	if t.Deleted {
		if err := p.engine.Delete(id); err != nil {
			return projectionErr(id, err)
		}
		return nil
	}

	unanswered, err := p.threadUnanswered(ctx, &t)
	if err != nil {
		return projectionErr(id, err)
	}

	doc := domain.SearchDocument{
		Id:             t.Id,
		ContentType:    domain.ContentTypeThread,
		ThreadId:       t.Id,
		CourseId:       t.CourseId,
		CommentableId:  t.CommentableId,
		Context:        t.Context,
		GroupId:        t.GroupId,
		Text:           strings.TrimSpace(p.cleanText(t.Title) + " " + p.cleanText(t.Body)),
		VotesPoint:     t.Votes.Point(),
		CommentCount:   t.CommentCount,
		Flagged:        t.Flagged(),
		Unanswered:     unanswered,
		CreatedAt:      t.CreatedAt,
		LastActivityAt: t.LastActivityAt,
	}
	if err := p.engine.Index(doc); err != nil {
		return projectionErr(id, err)
	}
	return nil
}

// threadUnanswered derives the cross-document invariant: a question
// thread is unanswered until any of its comments is endorsed. Zero
// comments still count as unanswered.
func (p *Projector) threadUnanswered(ctx context.Context, t *domain.Thread) (bool, error) {
	if t.ThreadType != domain.ThreadTypeQuestion {
		return false, nil
	}
	comments, err := p.storage.ListThreadComments(ctx, t.Id)
	if err != nil {
		return false, err
	}
	for _, c := range comments {
		if c.Endorsed {
			return false, nil
		}
	}
	return true, nil
}

// ProjectComment rebuilds the comment's search document, then issues
// the one bounded secondary projection of the parent thread: a
// comment's endorsement flips the thread's unanswered state, which
// lives on the thread document.
func (p *Projector) ProjectComment(ctx context.Context, id domain.CommentId) error {
	c, err := p.storage.GetComment(ctx, id)
	if err != nil {
		if isNotFound(err) {
			if err := p.deleteLocked(id); err != nil {
				return projectionErr(id, err)
			}
			return nil
		}
		return projectionErr(id, err)
	}

	if err := p.projectCommentDoc(ctx, &c); err != nil {
		return err
	}
	return p.ProjectThread(ctx, c.CommentThreadId)
}

func (p *Projector) projectCommentDoc(ctx context.Context, c *domain.Comment) error {
	mu := p.lock(c.Id)
	mu.Lock()
	defer mu.Unlock()

	if c.Deleted {
		if err := p.engine.Delete(c.Id); err != nil {
			return projectionErr(c.Id, err)
		}
		return nil
	}

	parent, err := p.storage.GetThread(ctx, c.CommentThreadId)
	if err != nil {
		if isNotFound(err) {
			if err := p.engine.Delete(c.Id); err != nil {
				return projectionErr(c.Id, err)
			}
			return nil
		}
		return projectionErr(c.Id, err)
	}
	if parent.Deleted {
		if err := p.engine.Delete(c.Id); err != nil {
			return projectionErr(c.Id, err)
		}
		return nil
	}

	unanswered, err := p.threadUnanswered(ctx, &parent)
	if err != nil {
		return projectionErr(c.Id, err)
	}

	doc := domain.SearchDocument{
		Id:             c.Id,
		ContentType:    domain.ContentTypeComment,
		ThreadId:       parent.Id,
		CourseId:       c.CourseId,
		CommentableId:  parent.CommentableId,
		Context:        parent.Context,
		GroupId:        parent.GroupId,
		Text:           p.cleanText(c.Body),
		CommentCount:   parent.CommentCount,
		Flagged:        c.Flagged(),
		Unanswered:     unanswered,
		CreatedAt:      c.CreatedAt,
		LastActivityAt: parent.LastActivityAt,
	}
	if err := p.engine.Index(doc); err != nil {
		return projectionErr(c.Id, err)
	}
	return nil
}

// RemoveThread deletes the thread document and the documents of the
// given comment ids (captured by the caller before the soft delete).
// Each delete holds the same per-id lock the projections take, so an
// in-flight re-projection cannot resurrect a removed document.
func (p *Projector) RemoveThread(ctx context.Context, threadId domain.ThreadId, commentIds []domain.CommentId) error {
	if err := p.deleteLocked(threadId); err != nil {
		return projectionErr(threadId, err)
	}
	for _, cid := range commentIds {
		if err := p.deleteLocked(cid); err != nil {
			return projectionErr(cid, err)
		}
	}
	return nil
}

func (p *Projector) deleteLocked(id string) error {
	mu := p.lock(id)
	mu.Lock()
	defer mu.Unlock()
	return p.engine.Delete(id)
}

// Rebuild replays every live document from the content store. The
// index is a disposable projection; this is its recovery path.
func (p *Projector) Rebuild(ctx context.Context) error {
	threads, err := p.storage.ListThreads(ctx)
	if err != nil {
		return fmt.Errorf("failed to list threads for rebuild: %w", err)
	}
	for i := range threads {
		if err := p.ProjectThread(ctx, threads[i].Id); err != nil {
			return err
		}
		comments, err := p.storage.ListThreadComments(ctx, threads[i].Id)
		if err != nil {
			return fmt.Errorf("failed to list comments for rebuild: %w", err)
		}
		for j := range comments {
			if err := p.projectCommentDoc(ctx, &comments[j]); err != nil {
				return err
			}
		}
	}
	return p.engine.Refresh()
}

func isNotFound(err error) bool {
	var statusErr *internal_errors.ErrorWithStatusCode
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, internal_errors.NotFound)
}
