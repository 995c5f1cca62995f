// Package search wraps the inverted-index engine behind a small
// interface: index/delete documents by id, run boolean queries,
// and suggest per-term spelling corrections.
package search

import (
	"context"

	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/openforum-dev/openforum/shared/domain"
)

// Hit is one index match. ThreadId points to the owning thread for
// comment documents and to the document itself for thread documents.
type Hit struct {
	Id          string
	ThreadId    string
	ContentType string
	Score       float64
}

type Engine interface {
	// Index writes or overwrites the document keyed by its id.
	Index(doc domain.SearchDocument) error
	// Delete removes the document; deleting an absent id is not an error.
	Delete(id string) error
	// Refresh synchronously flushes pending writes so subsequent
	// searches observe them. Used by mutation callers and tests.
	Refresh() error
	// Search executes q and returns up to limit hits.
	Search(ctx context.Context, q query.Query, limit int) ([]Hit, error)
	// Suggest returns the top spelling suggestion for a single term,
	// or "" when the term is known or nothing close enough exists.
	Suggest(term string) (string, error)
	Close() error
}
