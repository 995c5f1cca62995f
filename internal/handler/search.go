package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/openforum-dev/openforum/shared/api"
	"github.com/openforum-dev/openforum/shared/domain"
	internal_errors "github.com/openforum-dev/openforum/shared/errors"
	"github.com/openforum-dev/openforum/shared/utils"
)

// SearchThreads handles GET /api/v1/search/threads.
// text is required; every other parameter narrows the result set.
func (h *Handler) SearchThreads(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	result, err := h.search.SearchThreads(r.Context(), filters)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.SearchThreadsResponse{
		Collection:    make([]api.ThreadResult, 0, len(result.Collection)),
		TotalResults:  result.TotalResults,
		NumPages:      result.NumPages,
		CorrectedText: result.CorrectedText,
	}
	for i := range result.Collection {
		resp.Collection = append(resp.Collection, threadToResult(&result.Collection[i]))
	}
	utils.WriteJSON(w, resp)
}

func parseSearchFilters(r *http.Request) (domain.SearchFilters, error) {
	q := r.URL.Query()

	filters := domain.SearchFilters{
		Text:     strings.TrimSpace(q.Get("text")),
		CourseId: q.Get("course_id"),
		Context:  q.Get("context"),
		UserId:   q.Get("user_id"),
		SortKey:  q.Get("sort_key"),
	}
	if filters.Text == "" {
		return domain.SearchFilters{}, badRequest("text parameter is required")
	}

	if v := q.Get("commentable_id"); v != "" {
		filters.CommentableIds = []string{v}
	}
	if v := q.Get("commentable_ids"); v != "" {
		filters.CommentableIds = splitCSV(v)
	}

	if v := q.Get("group_id"); v != "" {
		g, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domain.SearchFilters{}, badRequest("group_id must be an integer")
		}
		filters.GroupIds = []int64{g}
	}
	if v := q.Get("group_ids"); v != "" {
		for _, part := range splitCSV(v) {
			g, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return domain.SearchFilters{}, badRequest("group_ids must be integers")
			}
			filters.GroupIds = append(filters.GroupIds, g)
		}
	}

	var err error
	if filters.Flagged, err = parseBoolParam(q.Get("flagged")); err != nil {
		return domain.SearchFilters{}, badRequest("flagged must be a boolean")
	}
	if filters.Unanswered, err = parseBoolParam(q.Get("unanswered")); err != nil {
		return domain.SearchFilters{}, badRequest("unanswered must be a boolean")
	}
	if filters.Unread, err = parseBoolParam(q.Get("unread")); err != nil {
		return domain.SearchFilters{}, badRequest("unread must be a boolean")
	}

	if filters.Page, err = parseIntParam(q.Get("page")); err != nil {
		return domain.SearchFilters{}, badRequest("page must be an integer")
	}
	if filters.PerPage, err = parseIntParam(q.Get("per_page")); err != nil {
		return domain.SearchFilters{}, badRequest("per_page must be an integer")
	}

	return filters, nil
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBoolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

func parseIntParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func badRequest(msg string) error {
	return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

func threadToResult(t *domain.Thread) api.ThreadResult {
	return api.ThreadResult{
		Id:            t.Id,
		Title:         t.Title,
		Body:          t.Body,
		CourseId:      t.CourseId,
		CommentableId: t.CommentableId,
		AuthorId:      t.AuthorId,
		ThreadType:    t.ThreadType,
		Context:       t.Context,
		Pinned:        t.Pinned,
		Closed:        t.Closed,
		GroupId:       t.GroupId,
		CommentCount:  t.CommentCount,
		Votes: api.VotesSummary{
			UpCount:   len(t.Votes.Up),
			DownCount: len(t.Votes.Down),
			Count:     t.Votes.Count(),
			Point:     t.Votes.Point(),
		},
		Flagged:        t.Flagged(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		LastActivityAt: t.LastActivityAt,
	}
}
