package api

import (
	"time"
)

type CreateThreadRequest struct {
	Title         string `json:"title" validate:"required"`
	Body          string `json:"body"`
	CourseId      string `json:"course_id" validate:"required"`
	CommentableId string `json:"commentable_id" validate:"required"`
	AuthorId      string `json:"author_id" validate:"required"`
	ThreadType    string `json:"thread_type"` // defaults to "discussion"
	Context       string `json:"context"`     // defaults to "course"
	GroupId       *int64 `json:"group_id"`
}

type UpdateThreadRequest struct {
	Title         *string `json:"title"`
	Body          *string `json:"body"`
	CourseId      *string `json:"course_id"`
	CommentableId *string `json:"commentable_id"`
	ThreadType    *string `json:"thread_type"`
	Context       *string `json:"context"`
	Closed        *bool   `json:"closed"`
	GroupId       *int64  `json:"group_id"`
}

type CreateCommentRequest struct {
	Body     string `json:"body" validate:"required"`
	CourseId string `json:"course_id" validate:"required"`
	AuthorId string `json:"author_id" validate:"required"`
}

type UpdateCommentRequest struct {
	Body     *string `json:"body"`
	Endorsed *bool   `json:"endorsed"`
}

type VoteRequest struct {
	UserId string `json:"user_id" validate:"required"`
	Value  string `json:"value" validate:"required,oneof=up down"`
}

type CommentResult struct {
	Id              string    `json:"id"`
	Body            string    `json:"body"`
	CourseId        string    `json:"course_id"`
	CommentThreadId string    `json:"thread_id"`
	AuthorId        string    `json:"author_id"`
	Endorsed        bool      `json:"endorsed"`
	Flagged         bool      `json:"flagged"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type IdResponse struct {
	Id string `json:"id"`
}
