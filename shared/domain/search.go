package domain

import (
	"time"
)

// Sort keys accepted by the search API.
const (
	SortByDate     = "date" // created_at desc, the default
	SortByActivity = "activity"
	SortByVotes    = "votes"
	SortByComments = "comments"
)

func ValidSortKey(k string) bool {
	switch k {
	case SortByDate, SortByActivity, SortByVotes, SortByComments:
		return true
	}
	return false
}

// SearchDocument is the denormalized, query-optimized projection of a
// thread or comment. The index is disposable: it can always be rebuilt
// from the content store.
//
// Comment documents denormalize Context, GroupId, CommentableId and
// Unanswered from their parent thread so that filters apply without a
// join; Flagged stays the comment's own.
type SearchDocument struct {
	Id             string
	ContentType    string   // thread | comment
	ThreadId       ThreadId // self for threads, parent for comments
	CourseId       CourseId
	CommentableId  string
	Context        string
	GroupId        *int64
	Text           string
	VotesPoint     int
	CommentCount   int
	Flagged        bool
	Unanswered     bool
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// SearchFilters is the validated filter set of one search request.
// All filters are ANDed. Nil/zero fields add no clause.
type SearchFilters struct {
	Text           string
	CourseId       string
	Context        string
	CommentableIds []string
	GroupIds       []int64
	Flagged        bool
	Unanswered     bool
	Unread         bool
	UserId         string // required when Unread is set
	SortKey        string
	Page           int
	PerPage        int
}

// PageResult is the assembled, caller-facing result page.
type PageResult struct {
	Collection    []Thread
	TotalResults  int
	NumPages      int // ceil(TotalResults/PerPage); 0 when TotalResults is 0
	CorrectedText *string
}
