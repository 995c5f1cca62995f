// Package api holds the request/response DTOs shared between the
// HTTP handlers and API clients.
package api

import (
	"time"
)

// VotesSummary mirrors the stored vote sets as counts only; the voter
// lists themselves never leave the backend.
type VotesSummary struct {
	UpCount   int `json:"up_count"`
	DownCount int `json:"down_count"`
	Count     int `json:"count"`
	Point     int `json:"point"`
}

type ThreadResult struct {
	Id             string       `json:"id"`
	Title          string       `json:"title"`
	Body           string       `json:"body"`
	CourseId       string       `json:"course_id"`
	CommentableId  string       `json:"commentable_id"`
	AuthorId       string       `json:"author_id"`
	ThreadType     string       `json:"thread_type"`
	Context        string       `json:"context"`
	Pinned         bool         `json:"pinned"`
	Closed         bool         `json:"closed"`
	GroupId        *int64       `json:"group_id,omitempty"`
	CommentCount   int          `json:"comment_count"`
	Votes          VotesSummary `json:"votes"`
	Flagged        bool         `json:"flagged"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	LastActivityAt time.Time    `json:"last_activity_at"`
}

type SearchThreadsResponse struct {
	Collection    []ThreadResult `json:"collection"`
	TotalResults  int            `json:"total_results"`
	NumPages      int            `json:"num_pages"`
	CorrectedText *string        `json:"corrected_text"`
}
