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

const commentColumns = `
    id, body, course_id, comment_thread_id, author_id, endorsed,
    abuse_flaggers, created_at, updated_at, deleted`

func scanComment(row interface{ Scan(...any) error }) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.Id, &c.Body, &c.CourseId, &c.CommentThreadId, &c.AuthorId,
		&c.Endorsed, pq.Array(&c.AbuseFlaggers), &c.CreatedAt, &c.UpdatedAt, &c.Deleted,
	)
	return c, err
}

func (s *Storage) CreateComment(ctx context.Context, c *domain.Comment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// bump the owning thread's activity within the same transaction
	result, err := tx.ExecContext(ctx, `
        UPDATE threads
        SET comment_count = comment_count + 1, last_activity_at = $2
        WHERE id = $1 AND NOT deleted
    `, c.CommentThreadId, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to update thread activity: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}

	if _, err = tx.ExecContext(ctx, `
        INSERT INTO comments (`+commentColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `,
		c.Id, c.Body, c.CourseId, c.CommentThreadId, c.AuthorId,
		c.Endorsed, pq.Array(c.AbuseFlaggers), c.CreatedAt, c.UpdatedAt, c.Deleted,
	); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Comment not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Comment{}, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return c, nil
}

func (s *Storage) UpdateComment(ctx context.Context, id domain.CommentId, upd domain.CommentUpdate) (domain.Comment, error) {
	sets := []string{"updated_at = NOW() AT TIME ZONE 'utc'"}
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Body != nil {
		add("body", *upd.Body)
	}
	if upd.Endorsed != nil {
		add("endorsed", *upd.Endorsed)
	}
	if upd.AbuseFlaggers != nil {
		add("abuse_flaggers", pq.Array(*upd.AbuseFlaggers))
	}

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
        UPDATE comments SET %s WHERE id = $1 AND NOT deleted
        RETURNING %s
    `, strings.Join(sets, ", "), commentColumns), args...)

	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Comment not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}
	return c, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var threadId domain.ThreadId
	err = tx.QueryRowContext(ctx, `
        UPDATE comments
        SET deleted = TRUE, updated_at = NOW() AT TIME ZONE 'utc'
        WHERE id = $1 AND NOT deleted
        RETURNING comment_thread_id
    `, id).Scan(&threadId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &internal_errors.ErrorWithStatusCode{
				Message:    "Comment not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
        UPDATE threads
        SET comment_count = GREATEST(comment_count - 1, 0)
        WHERE id = $1
    `, threadId); err != nil {
		return fmt.Errorf("failed to update thread comment count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) ListThreadComments(ctx context.Context, threadId domain.ThreadId) ([]domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+commentColumns+`
        FROM comments
        WHERE comment_thread_id = $1 AND NOT deleted
        ORDER BY created_at, id
    `, threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}
