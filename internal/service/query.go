package service

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/openforum-dev/openforum/shared/domain"
	internal_errors "github.com/openforum-dev/openforum/shared/errors"
)

// BuildQuery translates a validated filter set into the index
// engine's native boolean query. All filters are ANDed; the unread
// filter is per-user and applied after the index pass.
func BuildQuery(f domain.SearchFilters) query.Query {
	var clauses []query.Query

	if text := strings.TrimSpace(f.Text); text != "" {
		mq := bleve.NewMatchQuery(text)
		mq.SetField("text")
		clauses = append(clauses, mq)
	} else {
		// empty text matches everything passing the other filters
		clauses = append(clauses, bleve.NewMatchAllQuery())
	}

	if f.CourseId != "" {
		clauses = append(clauses, termQuery("course_id", f.CourseId))
	}
	if f.Context != "" {
		clauses = append(clauses, termQuery("context", f.Context))
	}

	if len(f.CommentableIds) > 0 {
		sub := make([]query.Query, len(f.CommentableIds))
		for i, id := range f.CommentableIds {
			sub[i] = termQuery("commentable_id", id)
		}
		clauses = append(clauses, bleve.NewDisjunctionQuery(sub...))
	}

	if len(f.GroupIds) > 0 {
		// ungrouped content is visible to every group
		ungrouped := bleve.NewBoolFieldQuery(false)
		ungrouped.SetField("grouped")
		sub := []query.Query{ungrouped}
		for _, g := range f.GroupIds {
			sub = append(sub, numericEqQuery("group_id", float64(g)))
		}
		clauses = append(clauses, bleve.NewDisjunctionQuery(sub...))
	}

	if f.Flagged {
		flagged := bleve.NewBoolFieldQuery(true)
		flagged.SetField("flagged")
		clauses = append(clauses, flagged)
	}
	if f.Unanswered {
		unanswered := bleve.NewBoolFieldQuery(true)
		unanswered.SetField("unanswered")
		clauses = append(clauses, unanswered)
	}

	if len(clauses) == 1 {
		return clauses[0]
	}
	return bleve.NewConjunctionQuery(clauses...)
}

func termQuery(field, term string) query.Query {
	q := bleve.NewTermQuery(term)
	q.SetField(field)
	return q
}

func numericEqQuery(field string, v float64) query.Query {
	inclusive := true
	q := bleve.NewNumericRangeInclusiveQuery(&v, &v, &inclusive, &inclusive)
	q.SetField(field)
	return q
}

// validateFilters normalizes defaults and rejects contradictory or
// malformed input. Validation errors are terminal, never retried.
func validateFilters(f *domain.SearchFilters, defaultPerPage int) error {
	if f.SortKey == "" {
		f.SortKey = domain.SortByDate
	}
	if !domain.ValidSortKey(f.SortKey) {
		return &internal_errors.ValidationError{Message: fmt.Sprintf("unknown sort_key %q", f.SortKey)}
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Page < 1 {
		return &internal_errors.ValidationError{Message: "page must be >= 1"}
	}
	if f.PerPage == 0 {
		f.PerPage = defaultPerPage
	}
	if f.PerPage < 1 {
		return &internal_errors.ValidationError{Message: "per_page must be >= 1"}
	}
	if f.Context != "" && !domain.ValidContext(f.Context) {
		return &internal_errors.ValidationError{Message: fmt.Sprintf("unknown context %q", f.Context)}
	}
	if f.Unread {
		if f.UserId == "" {
			return &internal_errors.ValidationError{Message: "unread requires user_id"}
		}
		if f.CourseId == "" {
			return &internal_errors.ValidationError{Message: "unread requires course_id"}
		}
	}
	return nil
}
