package domain

// to iterate thru layers: handler -> service -> storage
type (
	ThreadId  = string
	CommentId = string
	UserId    = string
	CourseId  = string
)

// ThreadType discriminates discussion threads from question threads.
// Only question threads participate in the "unanswered" derivation.
const (
	ThreadTypeDiscussion = "discussion"
	ThreadTypeQuestion   = "question"
)

const (
	ContextCourse     = "course"
	ContextStandalone = "standalone"
)

const (
	ContentTypeThread  = "thread"
	ContentTypeComment = "comment"
)

func ValidThreadType(t string) bool {
	return t == ThreadTypeDiscussion || t == ThreadTypeQuestion
}

func ValidContext(c string) bool {
	return c == ContextCourse || c == ContextStandalone
}
