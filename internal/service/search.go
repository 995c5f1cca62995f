package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/openforum-dev/openforum/internal/search"
	"github.com/openforum-dev/openforum/internal/storage"
	"github.com/openforum-dev/openforum/shared/domain"
)

// SearchService answers thread searches: query the index, collapse
// hits to their owning threads, load the authoritative thread records,
// then sort and paginate. When the original text matches nothing it
// retries once with a spelling-corrected text under the same filters.
type SearchService struct {
	storage        storage.Storage
	markers        storage.ReadMarkerStorage
	engine         search.Engine
	maxWindow      int
	defaultPerPage int
}

func NewSearchService(st storage.Storage, markers storage.ReadMarkerStorage, engine search.Engine, maxWindow, defaultPerPage int) *SearchService {
	return &SearchService{
		storage:        st,
		markers:        markers,
		engine:         engine,
		maxWindow:      maxWindow,
		defaultPerPage: defaultPerPage,
	}
}

func (s *SearchService) SearchThreads(ctx context.Context, filters domain.SearchFilters) (domain.PageResult, error) {
	if err := validateFilters(&filters, s.defaultPerPage); err != nil {
		return domain.PageResult{}, err
	}
	searchesTotal.Inc()

	threads, err := s.matchingThreads(ctx, filters)
	if err != nil {
		return domain.PageResult{}, err
	}

	var correctedText *string
	if len(threads) == 0 && strings.TrimSpace(filters.Text) != "" {
		// retry with a respelled text, same filters; report the
		// correction only when the rerun actually finds something
		if corrected, ok := correctText(s.engine, filters.Text); ok {
			retry := filters
			retry.Text = corrected
			retried, err := s.matchingThreads(ctx, retry)
			if err != nil {
				return domain.PageResult{}, err
			}
			if len(retried) > 0 {
				correctionsApplied.Inc()
				threads = retried
				correctedText = &corrected
			}
		}
	}

	sortThreads(threads, filters.SortKey)
	result := assemblePage(threads, filters.Page, filters.PerPage)
	result.CorrectedText = correctedText
	return result, nil
}

// matchingThreads runs one index pass and resolves the hits into
// non-deleted threads in hit order, one entry per thread.
func (s *SearchService) matchingThreads(ctx context.Context, filters domain.SearchFilters) ([]domain.Thread, error) {
	hits, err := s.engine.Search(ctx, BuildQuery(filters), s.maxWindow)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	seen := make(map[domain.ThreadId]struct{}, len(hits))
	ids := make([]domain.ThreadId, 0, len(hits))
	for _, h := range hits {
		id := domain.ThreadId(h.ThreadId)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	threads, err := s.storage.GetThreads(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load matched threads: %w", err)
	}

	live := threads[:0]
	for _, t := range threads {
		if !t.Deleted {
			live = append(live, t)
		}
	}

	if filters.Unread {
		return s.filterUnread(ctx, live, filters.UserId)
	}
	return live, nil
}

// filterUnread keeps threads the user has never read, or whose last
// activity postdates the user's read marker.
func (s *SearchService) filterUnread(ctx context.Context, threads []domain.Thread, userId domain.UserId) ([]domain.Thread, error) {
	unread := threads[:0]
	for _, t := range threads {
		readAt, ok, err := s.markers.LastReadAt(ctx, userId, t.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to load read marker: %w", err)
		}
		if !ok || readAt.Before(t.LastActivityAt) {
			unread = append(unread, t)
		}
	}
	return unread, nil
}
