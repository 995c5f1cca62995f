package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/openforum-dev/openforum/shared/domain"
)

// --- Mocks ---

// MockSearchService mocks the SearchService interface.
type MockSearchService struct {
	searchThreadsFunc func(ctx context.Context, filters domain.SearchFilters) (domain.PageResult, error)
}

func (m *MockSearchService) SearchThreads(ctx context.Context, filters domain.SearchFilters) (domain.PageResult, error) {
	if m.searchThreadsFunc != nil {
		return m.searchThreadsFunc(ctx, filters)
	}
	return domain.PageResult{Collection: []domain.Thread{}}, nil
}

// MockContentService mocks the ContentService interface.
type MockContentService struct {
	createThreadFunc  func(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	getThreadFunc     func(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	updateThreadFunc  func(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdate) (domain.Thread, error)
	deleteThreadFunc  func(ctx context.Context, id domain.ThreadId) error
	createCommentFunc func(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error)
	updateCommentFunc func(ctx context.Context, id domain.CommentId, upd domain.CommentUpdate) (domain.Comment, error)
	deleteCommentFunc func(ctx context.Context, id domain.CommentId) error
	voteThreadFunc    func(ctx context.Context, id domain.ThreadId, userId domain.UserId, up bool) (domain.Thread, error)
	markReadFunc      func(ctx context.Context, userId domain.UserId, threadId domain.ThreadId) error
}

func (m *MockContentService) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	if m.createThreadFunc != nil {
		return m.createThreadFunc(ctx, data)
	}
	return domain.Thread{Id: "t1"}, nil
}

func (m *MockContentService) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(ctx, id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockContentService) UpdateThread(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdate) (domain.Thread, error) {
	if m.updateThreadFunc != nil {
		return m.updateThreadFunc(ctx, id, upd)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockContentService) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	if m.deleteThreadFunc != nil {
		return m.deleteThreadFunc(ctx, id)
	}
	return nil
}

func (m *MockContentService) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	if m.createCommentFunc != nil {
		return m.createCommentFunc(ctx, data)
	}
	return domain.Comment{Id: "c1", CommentThreadId: data.CommentThreadId}, nil
}

func (m *MockContentService) UpdateComment(ctx context.Context, id domain.CommentId, upd domain.CommentUpdate) (domain.Comment, error) {
	if m.updateCommentFunc != nil {
		return m.updateCommentFunc(ctx, id, upd)
	}
	return domain.Comment{Id: id}, nil
}

func (m *MockContentService) DeleteComment(ctx context.Context, id domain.CommentId) error {
	if m.deleteCommentFunc != nil {
		return m.deleteCommentFunc(ctx, id)
	}
	return nil
}

func (m *MockContentService) VoteThread(ctx context.Context, id domain.ThreadId, userId domain.UserId, up bool) (domain.Thread, error) {
	if m.voteThreadFunc != nil {
		return m.voteThreadFunc(ctx, id, userId, up)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockContentService) UnvoteThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error) {
	return domain.Thread{Id: id}, nil
}

func (m *MockContentService) FlagThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error) {
	return domain.Thread{Id: id, AbuseFlaggers: []string{string(userId)}}, nil
}

func (m *MockContentService) UnflagThread(ctx context.Context, id domain.ThreadId, userId domain.UserId) (domain.Thread, error) {
	return domain.Thread{Id: id}, nil
}

func (m *MockContentService) FlagComment(ctx context.Context, id domain.CommentId, userId domain.UserId) (domain.Comment, error) {
	return domain.Comment{Id: id, AbuseFlaggers: []string{string(userId)}}, nil
}

func (m *MockContentService) UnflagComment(ctx context.Context, id domain.CommentId, userId domain.UserId) (domain.Comment, error) {
	return domain.Comment{Id: id}, nil
}

func (m *MockContentService) PinThread(ctx context.Context, id domain.ThreadId, pinned bool) (domain.Thread, error) {
	return domain.Thread{Id: id, Pinned: pinned}, nil
}

func (m *MockContentService) MarkRead(ctx context.Context, userId domain.UserId, threadId domain.ThreadId) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, userId, threadId)
	}
	return nil
}

// MockPinger mocks the Pinger interface.
type MockPinger struct {
	pingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

// --- Helpers ---

func testRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search/threads", h.SearchThreads)
		r.Route("/threads", func(r chi.Router) {
			r.Post("/", h.CreateThread)
			r.Route("/{thread_id}", func(r chi.Router) {
				r.Get("/", h.GetThread)
				r.Put("/", h.UpdateThread)
				r.Delete("/", h.DeleteThread)
				r.Post("/comments", h.CreateComment)
				r.Post("/votes", h.VoteThread)
				r.Delete("/votes", h.UnvoteThread)
				r.Post("/flags", h.FlagThread)
				r.Delete("/flags", h.UnflagThread)
				r.Post("/pin", h.PinThread)
				r.Delete("/pin", h.UnpinThread)
				r.Post("/read", h.MarkThreadRead)
			})
		})
		r.Route("/comments/{comment_id}", func(r chi.Router) {
			r.Put("/", h.UpdateComment)
			r.Delete("/", h.DeleteComment)
			r.Post("/flags", h.FlagComment)
			r.Delete("/flags", h.UnflagComment)
		})
	})
	return r
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rr, req)
	return rr
}
