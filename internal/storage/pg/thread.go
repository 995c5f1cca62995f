package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"github.com/openforum-dev/openforum/shared/domain"
	internal_errors "github.com/openforum-dev/openforum/shared/errors"
)

const threadColumns = `
    id, title, body, course_id, commentable_id, author_id, thread_type,
    context, pinned, closed, votes_up, votes_down, abuse_flaggers,
    comment_count, group_id, created_at, updated_at, last_activity_at, deleted`

func scanThread(row interface{ Scan(...any) error }) (domain.Thread, error) {
	var t domain.Thread
	var groupId sql.NullInt64
	err := row.Scan(
		&t.Id, &t.Title, &t.Body, &t.CourseId, &t.CommentableId, &t.AuthorId,
		&t.ThreadType, &t.Context, &t.Pinned, &t.Closed,
		pq.Array(&t.Votes.Up), pq.Array(&t.Votes.Down), pq.Array(&t.AbuseFlaggers),
		&t.CommentCount, &groupId, &t.CreatedAt, &t.UpdatedAt, &t.LastActivityAt, &t.Deleted,
	)
	if err != nil {
		return domain.Thread{}, err
	}
	if groupId.Valid {
		t.GroupId = &groupId.Int64
	}
	return t, nil
}

func (s *Storage) CreateThread(ctx context.Context, t *domain.Thread) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO threads (`+threadColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
    `,
		t.Id, t.Title, t.Body, t.CourseId, t.CommentableId, t.AuthorId,
		t.ThreadType, t.Context, t.Pinned, t.Closed,
		pq.Array(t.Votes.Up), pq.Array(t.Votes.Down), pq.Array(t.AbuseFlaggers),
		t.CommentCount, t.GroupId, t.CreatedAt, t.UpdatedAt, t.LastActivityAt, t.Deleted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert thread: %w", err)
	}
	return nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+threadColumns+` FROM threads WHERE id = $1`, id)
	t, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return t, nil
}

func (s *Storage) GetThreads(ctx context.Context, ids []domain.ThreadId) ([]domain.Thread, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	byId := make(map[domain.ThreadId]domain.Thread, len(ids))
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		byId[t.Id] = t
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	// preserve caller order, skip missing ids
	out := make([]domain.Thread, 0, len(byId))
	for _, id := range ids {
		if t, ok := byId[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Storage) UpdateThread(ctx context.Context, id domain.ThreadId, upd domain.ThreadUpdate) (domain.Thread, error) {
	sets := []string{"updated_at = NOW() AT TIME ZONE 'utc'"}
	// only content edits count as activity; votes, flags, pins and
	// closes must not reorder the activity sort or mark threads unread
	if upd.Title != nil || upd.Body != nil {
		sets = append(sets, "last_activity_at = NOW() AT TIME ZONE 'utc'")
	}
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Body != nil {
		add("body", *upd.Body)
	}
	if upd.CourseId != nil {
		add("course_id", *upd.CourseId)
	}
	if upd.CommentableId != nil {
		add("commentable_id", *upd.CommentableId)
	}
	if upd.ThreadType != nil {
		add("thread_type", *upd.ThreadType)
	}
	if upd.Context != nil {
		add("context", *upd.Context)
	}
	if upd.Pinned != nil {
		add("pinned", *upd.Pinned)
	}
	if upd.Closed != nil {
		add("closed", *upd.Closed)
	}
	if upd.Votes != nil {
		add("votes_up", pq.Array(upd.Votes.Up))
		add("votes_down", pq.Array(upd.Votes.Down))
	}
	if upd.AbuseFlaggers != nil {
		add("abuse_flaggers", pq.Array(*upd.AbuseFlaggers))
	}
	if upd.GroupId != nil {
		add("group_id", *upd.GroupId)
	}

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
        UPDATE threads SET %s WHERE id = $1 AND NOT deleted
        RETURNING %s
    `, strings.Join(sets, ", "), threadColumns), args...)

	t, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Thread{}, fmt.Errorf("failed to update thread: %w", err)
	}
	return t, nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
        UPDATE threads
        SET deleted = TRUE, updated_at = NOW() AT TIME ZONE 'utc'
        WHERE id = $1 AND NOT deleted
    `, id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}

	if _, err = tx.ExecContext(ctx, `
        UPDATE comments
        SET deleted = TRUE, updated_at = NOW() AT TIME ZONE 'utc'
        WHERE comment_thread_id = $1 AND NOT deleted
    `, id); err != nil {
		return fmt.Errorf("failed to delete thread comments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) ListThreads(ctx context.Context) ([]domain.Thread, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+threadColumns+` FROM threads WHERE NOT deleted ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	var out []domain.Thread
	for rows.Next() {
		t, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		out = append(out, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}
