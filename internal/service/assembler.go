package service

import (
	"sort"
	"time"

	"github.com/openforum-dev/openforum/shared/domain"
)

// sortThreads orders threads by the requested key, descending.
// Ties fall back to created_at desc, then id asc, so pages are stable
// across identical requests.
func sortThreads(threads []domain.Thread, sortKey string) {
	less := func(a, b *domain.Thread) bool {
		var cmp int
		switch sortKey {
		case domain.SortByActivity:
			cmp = compareTime(a.LastActivityAt, b.LastActivityAt)
		case domain.SortByVotes:
			cmp = a.Votes.Point() - b.Votes.Point()
		case domain.SortByComments:
			cmp = a.CommentCount - b.CommentCount
		}
		if cmp != 0 {
			return cmp > 0
		}
		if c := compareTime(a.CreatedAt, b.CreatedAt); c != 0 {
			return c > 0
		}
		return a.Id < b.Id
	}
	sort.SliceStable(threads, func(i, j int) bool { return less(&threads[i], &threads[j]) })
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// assemblePage slices the sorted result set into the requested
// 1-indexed page. A page past the end yields an empty collection
// while total_results and num_pages still describe the full set.
func assemblePage(threads []domain.Thread, page, perPage int) domain.PageResult {
	total := len(threads)
	numPages := 0
	if total > 0 {
		numPages = (total + perPage - 1) / perPage
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return domain.PageResult{
		Collection:   threads[start:end],
		TotalResults: total,
		NumPages:     numPages,
	}
}
