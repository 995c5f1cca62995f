// Package memory is a map-backed content store. It backs unit and
// end-to-end tests and single-node deployments that do not need
// Postgres durability.
package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/openforum-dev/openforum/shared/domain"
	internal_errors "github.com/openforum-dev/openforum/shared/errors"
)

type Storage struct {
	mu       sync.RWMutex
	threads  map[domain.ThreadId]*domain.Thread
	comments map[domain.CommentId]*domain.Comment
	// read markers keyed by user, then thread
	markers map[domain.UserId]map[domain.ThreadId]time.Time
}

func New() *Storage {
	return &Storage{
		threads:  make(map[domain.ThreadId]*domain.Thread),
		comments: make(map[domain.CommentId]*domain.Comment),
		markers:  make(map[domain.UserId]map[domain.ThreadId]time.Time),
	}
}

func notFound(what string) error {
	return &internal_errors.ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

func (s *Storage) CreateThread(ctx context.Context, t *domain.Thread) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.threads[t.Id] = &cp
	return nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.threads[id]
	if !ok {
		return domain.Thread{}, notFound("Thread")
	}
	return *t, nil
}

func (s *Storage) GetThreads(ctx context.Context, ids []domain.ThreadId) ([]domain.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Thread, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.threads[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *Storage) UpdateThread(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdate) (domain.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[id]
	if !ok || t.Deleted {
		return domain.Thread{}, notFound("Thread")
	}
	applyThreadUpdate(t, upd)
	now := time.Now().UTC()
	t.UpdatedAt = now
	// only content edits count as activity; votes, flags, pins and
	// closes must not reorder the activity sort or mark threads unread
	if upd.Title != nil || upd.Body != nil {
		t.LastActivityAt = now
	}
	return *t, nil
}

func applyThreadUpdate(t *domain.Thread, upd domain.ThreadUpdate) {
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Body != nil {
		t.Body = *upd.Body
	}
	if upd.CourseId != nil {
		t.CourseId = *upd.CourseId
	}
	if upd.CommentableId != nil {
		t.CommentableId = *upd.CommentableId
	}
	if upd.ThreadType != nil {
		t.ThreadType = *upd.ThreadType
	}
	if upd.Context != nil {
		t.Context = *upd.Context
	}
	if upd.Pinned != nil {
		t.Pinned = *upd.Pinned
	}
	if upd.Closed != nil {
		t.Closed = *upd.Closed
	}
	if upd.Votes != nil {
		t.Votes = *upd.Votes
	}
	if upd.AbuseFlaggers != nil {
		t.AbuseFlaggers = *upd.AbuseFlaggers
	}
	if upd.GroupId != nil {
		t.GroupId = upd.GroupId
	}
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[id]
	if !ok || t.Deleted {
		return notFound("Thread")
	}
	t.Deleted = true
	t.UpdatedAt = time.Now().UTC()
	for _, c := range s.comments {
		if c.CommentThreadId == id {
			c.Deleted = true
		}
	}
	return nil
}

func (s *Storage) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Thread, 0, len(s.threads))
	for _, t := range s.threads {
		if !t.Deleted {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (s *Storage) CreateComment(ctx context.Context, c *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.threads[c.CommentThreadId]
	if !ok || t.Deleted {
		return notFound("Thread")
	}
	cp := *c
	s.comments[c.Id] = &cp
	t.CommentCount++
	t.LastActivityAt = c.CreatedAt
	return nil
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return domain.Comment{}, notFound("Comment")
	}
	return *c, nil
}

func (s *Storage) UpdateComment(ctx context.Context, id domain.CommentId, upd domain.CommentUpdate) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || c.Deleted {
		return domain.Comment{}, notFound("Comment")
	}
	if upd.Body != nil {
		c.Body = *upd.Body
	}
	if upd.Endorsed != nil {
		c.Endorsed = *upd.Endorsed
	}
	if upd.AbuseFlaggers != nil {
		c.AbuseFlaggers = *upd.AbuseFlaggers
	}
	c.UpdatedAt = time.Now().UTC()
	return *c, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || c.Deleted {
		return notFound("Comment")
	}
	c.Deleted = true
	c.UpdatedAt = time.Now().UTC()
	if t, ok := s.threads[c.CommentThreadId]; ok && t.CommentCount > 0 {
		t.CommentCount--
	}
	return nil
}

func (s *Storage) ListThreadComments(ctx context.Context, threadId domain.ThreadId) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Comment
	for _, c := range s.comments {
		if c.CommentThreadId == threadId && !c.Deleted {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Id < out[j].Id
	})
	return out, nil
}

func (s *Storage) Ping(ctx context.Context) error { return nil }

func (s *Storage) MarkRead(ctx context.Context, userId domain.UserId, threadId domain.ThreadId, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.markers[userId]
	if !ok {
		m = make(map[domain.ThreadId]time.Time)
		s.markers[userId] = m
	}
	if existing, ok := m[threadId]; !ok || at.After(existing) {
		m[threadId] = at
	}
	return nil
}

func (s *Storage) LastReadAt(ctx context.Context, userId domain.UserId, threadId domain.ThreadId) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.markers[userId][threadId]
	return at, ok, nil
}
