package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/openforum-dev/openforum/shared/domain"
)

func (s *Storage) MarkRead(ctx context.Context, userId domain.UserId, threadId domain.ThreadId, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO read_markers (user_id, thread_id, last_read_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, thread_id)
        DO UPDATE SET last_read_at = GREATEST(read_markers.last_read_at, EXCLUDED.last_read_at)
    `, userId, threadId, at)
	if err != nil {
		return fmt.Errorf("failed to upsert read marker: %w", err)
	}
	return nil
}

func (s *Storage) LastReadAt(ctx context.Context, userId domain.UserId, threadId domain.ThreadId) (time.Time, bool, error) {
	var at time.Time
	err := s.db.QueryRowContext(ctx, `
        SELECT last_read_at FROM read_markers WHERE user_id = $1 AND thread_id = $2
    `, userId, threadId).Scan(&at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to fetch read marker: %w", err)
	}
	return at, true, nil
}
