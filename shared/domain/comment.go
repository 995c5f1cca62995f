package domain

import (
	"time"
)

type Comment struct {
	Id              CommentId
	Body            string
	CourseId        CourseId
	CommentThreadId ThreadId // owning thread, back-reference only
	AuthorId        UserId
	Endorsed        bool // meaningful only under question-type threads
	AbuseFlaggers   []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Deleted         bool
}

func (c *Comment) Flagged() bool { return len(c.AbuseFlaggers) > 0 }

type CommentCreationData struct {
	Body            string
	CourseId        string
	CommentThreadId ThreadId
	AuthorId        string
}

// CommentUpdate is a partial update: only non-nil fields are written.
type CommentUpdate struct {
	Body          *string
	Endorsed      *bool
	AbuseFlaggers *[]string
}
