package pg

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openforum-dev/openforum/shared/domain"
)

func testComment(threadId domain.ThreadId) *domain.Comment {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Comment{
		Id:              uuid.NewString(),
		Body:            "integration comment",
		CourseId:        "course-1",
		CommentThreadId: threadId,
		AuthorId:        "author-1",
		AbuseFlaggers:   []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestCreateCommentBumpsThread(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))

	c := testComment(th.Id)
	c.CreatedAt = th.CreatedAt.Add(time.Minute)
	require.NoError(t, storage.CreateComment(ctx, c))

	gotThread, err := storage.GetThread(ctx, th.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, gotThread.CommentCount)
	assert.True(t, gotThread.LastActivityAt.Equal(c.CreatedAt))

	gotComment, err := storage.GetComment(ctx, c.Id)
	require.NoError(t, err)
	assert.Equal(t, c.Body, gotComment.Body)
	assert.False(t, gotComment.Endorsed)
}

func TestCreateCommentMissingThread(t *testing.T) {
	ctx := context.Background()
	c := testComment(uuid.NewString())
	assertStatusCode(t, storage.CreateComment(ctx, c), 404)
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))
	c := testComment(th.Id)
	require.NoError(t, storage.CreateComment(ctx, c))

	endorsed := true
	updated, err := storage.UpdateComment(ctx, c.Id, domain.CommentUpdate{Endorsed: &endorsed})
	require.NoError(t, err)
	assert.True(t, updated.Endorsed)
	assert.Equal(t, c.Body, updated.Body)

	flaggers := []string{"reporter"}
	updated, err = storage.UpdateComment(ctx, c.Id, domain.CommentUpdate{AbuseFlaggers: &flaggers})
	require.NoError(t, err)
	assert.Equal(t, flaggers, updated.AbuseFlaggers)
	assert.True(t, updated.Endorsed) // untouched

	_, err = storage.UpdateComment(ctx, uuid.NewString(), domain.CommentUpdate{Endorsed: &endorsed})
	assertStatusCode(t, err, 404)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))
	c := testComment(th.Id)
	require.NoError(t, storage.CreateComment(ctx, c))

	require.NoError(t, storage.DeleteComment(ctx, c.Id))

	gotThread, err := storage.GetThread(ctx, th.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, gotThread.CommentCount)

	// the row survives as soft-deleted
	gotComment, err := storage.GetComment(ctx, c.Id)
	require.NoError(t, err)
	assert.True(t, gotComment.Deleted)

	assertStatusCode(t, storage.DeleteComment(ctx, c.Id), 404)
}

func TestListThreadComments(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))

	first := testComment(th.Id)
	second := testComment(th.Id)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	deleted := testComment(th.Id)
	require.NoError(t, storage.CreateComment(ctx, second))
	require.NoError(t, storage.CreateComment(ctx, first))
	require.NoError(t, storage.CreateComment(ctx, deleted))
	require.NoError(t, storage.DeleteComment(ctx, deleted.Id))

	comments, err := storage.ListThreadComments(ctx, th.Id)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.Id, comments[0].Id)
	assert.Equal(t, second.Id, comments[1].Id)
}
