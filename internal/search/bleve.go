package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	internal_errors "github.com/openforum-dev/openforum/shared/errors"

	"github.com/openforum-dev/openforum/shared/domain"
)

// BleveEngine implements Engine on a bleve index. Writes are visible
// as soon as the call returns, so Refresh is a no-op kept for contract
// parity with engines that defer segment visibility.
type BleveEngine struct {
	idx bleve.Index
}

// New opens the index at path, creating it if absent.
// An empty path yields an in-memory index.
func New(path string) (*BleveEngine, error) {
	im, err := indexMapping()
	if err != nil {
		return nil, fmt.Errorf("failed to build index mapping: %w", err)
	}

	if path == "" {
		idx, err := bleve.NewMemOnly(im)
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory index: %w", err)
		}
		return &BleveEngine{idx: idx}, nil
	}

	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, im)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open index %q: %w", path, err)
	}
	return &BleveEngine{idx: idx}, nil
}

// textAnalyzer tokenizes and lowercases without stopword removal, so
// every term users type stays in the suggestion dictionary.
const textAnalyzer = "forum_text"

func indexMapping() (mapping.IndexMapping, error) {
	docMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = textAnalyzer
	textField.Store = false
	docMapping.AddFieldMappingsAt("text", textField)

	for _, name := range []string{"course_id", "commentable_id", "context"} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = false
		docMapping.AddFieldMappingsAt(name, f)
	}

	// stored so hits can be collapsed to threads without a store read
	for _, name := range []string{"thread_id", "content_type"} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	for _, name := range []string{"group_id", "votes_point", "comment_count"} {
		f := bleve.NewNumericFieldMapping()
		f.Store = false
		docMapping.AddFieldMappingsAt(name, f)
	}

	for _, name := range []string{"flagged", "unanswered", "grouped"} {
		f := bleve.NewBooleanFieldMapping()
		f.Store = false
		docMapping.AddFieldMappingsAt(name, f)
	}

	for _, name := range []string{"created_at", "last_activity_at"} {
		f := bleve.NewDateTimeFieldMapping()
		f.Store = false
		docMapping.AddFieldMappingsAt(name, f)
	}

	indexMapping := bleve.NewIndexMapping()
	if err := indexMapping.AddCustomAnalyzer(textAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	}); err != nil {
		return nil, err
	}
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = textAnalyzer
	return indexMapping, nil
}

func (e *BleveEngine) Index(doc domain.SearchDocument) error {
	fields := map[string]interface{}{
		"text":             doc.Text,
		"course_id":        doc.CourseId,
		"commentable_id":   doc.CommentableId,
		"context":          doc.Context,
		"thread_id":        doc.ThreadId,
		"content_type":     doc.ContentType,
		"votes_point":      doc.VotesPoint,
		"comment_count":    doc.CommentCount,
		"flagged":          doc.Flagged,
		"unanswered":       doc.Unanswered,
		"grouped":          doc.GroupId != nil,
		"created_at":       doc.CreatedAt,
		"last_activity_at": doc.LastActivityAt,
	}
	if doc.GroupId != nil {
		fields["group_id"] = *doc.GroupId
	}

	if err := e.idx.Index(doc.Id, fields); err != nil {
		return fmt.Errorf("failed to index document %s: %w", doc.Id, err)
	}
	return nil
}

func (e *BleveEngine) Delete(id string) error {
	if err := e.idx.Delete(id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}

func (e *BleveEngine) Refresh() error {
	// bleve commits synchronously; nothing to flush
	return nil
}

func (e *BleveEngine) Search(ctx context.Context, q query.Query, limit int) ([]Hit, error) {
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"thread_id", "content_type"}

	res, err := e.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internal_errors.ErrIndexUnavailable, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{Id: h.ID, Score: h.Score}
		if v, ok := h.Fields["thread_id"].(string); ok {
			hit.ThreadId = v
		}
		if v, ok := h.Fields["content_type"].(string); ok {
			hit.ContentType = v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (e *BleveEngine) Close() error {
	return e.idx.Close()
}

// DocCount exposes the raw document count for diagnostics and tests.
func (e *BleveEngine) DocCount() (uint64, error) {
	return e.idx.DocCount()
}
