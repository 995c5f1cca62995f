package domain

import (
	"time"
)

// Votes holds the per-user vote sets. Point and Count are derived,
// never stored: point = |up| - |down|, count = |up| + |down|.
type Votes struct {
	Up   []string
	Down []string
}

func (v Votes) Point() int { return len(v.Up) - len(v.Down) }
func (v Votes) Count() int { return len(v.Up) + len(v.Down) }

type Thread struct {
	Id             ThreadId
	Title          string
	Body           string
	CourseId       CourseId
	CommentableId  string
	AuthorId       UserId
	ThreadType     string // discussion | question
	Context        string // course | standalone
	Pinned         bool
	Closed         bool
	Votes          Votes
	AbuseFlaggers  []string
	CommentCount   int
	GroupId        *int64 // nil means the thread is visible to every group
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastActivityAt time.Time
	Deleted        bool
}

func (t *Thread) Flagged() bool { return len(t.AbuseFlaggers) > 0 }

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title         string
	Body          string
	CourseId      string
	CommentableId string
	AuthorId      string
	ThreadType    string // defaults to discussion
	Context       string // defaults to course
	GroupId       *int64
}

// ThreadUpdate is a partial update: only non-nil fields are written.
// Unspecified fields are never overwritten.
type ThreadUpdate struct {
	Title         *string
	Body          *string
	CourseId      *string
	CommentableId *string
	ThreadType    *string
	Context       *string
	Pinned        *bool
	Closed        *bool
	Votes         *Votes
	AbuseFlaggers *[]string
	GroupId       *int64
}
