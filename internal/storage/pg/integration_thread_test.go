package pg

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openforum-dev/openforum/shared/domain"
	internal_errors "github.com/openforum-dev/openforum/shared/errors"
)

func assertStatusCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, code, statusErr.StatusCode)
}

func testThread() *domain.Thread {
	now := time.Now().UTC().Truncate(time.Microsecond) // pg timestamptz resolution
	return &domain.Thread{
		Id:             uuid.NewString(),
		Title:          "integration thread",
		Body:           "body",
		CourseId:       "course-1",
		CommentableId:  "general",
		AuthorId:       "author-1",
		ThreadType:     domain.ThreadTypeDiscussion,
		Context:        domain.ContextCourse,
		Votes:          domain.Votes{Up: []string{"u1"}, Down: []string{"u2"}},
		AbuseFlaggers:  []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
		LastActivityAt: now,
	}
}

func TestCreateGetThread(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))

	got, err := storage.GetThread(ctx, th.Id)
	require.NoError(t, err)
	assert.Equal(t, th.Title, got.Title)
	assert.Equal(t, th.Votes.Up, got.Votes.Up)
	assert.Equal(t, th.Votes.Down, got.Votes.Down)
	assert.Nil(t, got.GroupId)
	assert.True(t, got.CreatedAt.Equal(th.CreatedAt))
	assert.False(t, got.Deleted)

	_, err = storage.GetThread(ctx, uuid.NewString())
	assertStatusCode(t, err, 404)
}

func TestThreadGroupIdRoundTrip(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	groupId := int64(7)
	th.GroupId = &groupId
	require.NoError(t, storage.CreateThread(ctx, th))

	got, err := storage.GetThread(ctx, th.Id)
	require.NoError(t, err)
	require.NotNil(t, got.GroupId)
	assert.Equal(t, int64(7), *got.GroupId)
}

func TestGetThreadsPreservesOrder(t *testing.T) {
	ctx := context.Background()
	t1, t2 := testThread(), testThread()
	require.NoError(t, storage.CreateThread(ctx, t1))
	require.NoError(t, storage.CreateThread(ctx, t2))

	got, err := storage.GetThreads(ctx, []domain.ThreadId{t2.Id, uuid.NewString(), t1.Id})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, t2.Id, got[0].Id)
	assert.Equal(t, t1.Id, got[1].Id)

	got, err = storage.GetThreads(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateThread(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))

	newTitle := "renamed"
	votes := domain.Votes{Up: []string{"u1", "u3"}, Down: []string{}}
	updated, err := storage.UpdateThread(ctx, th.Id, domain.ThreadUpdate{Title: &newTitle, Votes: &votes})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "body", updated.Body)
	assert.Equal(t, []string{"u1", "u3"}, updated.Votes.Up)
	assert.Empty(t, updated.Votes.Down)
	assert.True(t, updated.UpdatedAt.After(th.UpdatedAt))
	assert.True(t, updated.LastActivityAt.After(th.LastActivityAt))

	_, err = storage.UpdateThread(ctx, uuid.NewString(), domain.ThreadUpdate{Title: &newTitle})
	assertStatusCode(t, err, 404)
}

func TestUpdateThreadVotesKeepActivity(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))

	// votes, flags and pins are not activity
	votes := domain.Votes{Up: []string{"u1", "u3"}, Down: []string{}}
	updated, err := storage.UpdateThread(ctx, th.Id, domain.ThreadUpdate{Votes: &votes})
	require.NoError(t, err)
	assert.True(t, updated.LastActivityAt.Equal(th.LastActivityAt))
	assert.True(t, updated.UpdatedAt.After(th.UpdatedAt))

	pinned := true
	updated, err = storage.UpdateThread(ctx, th.Id, domain.ThreadUpdate{Pinned: &pinned})
	require.NoError(t, err)
	assert.True(t, updated.LastActivityAt.Equal(th.LastActivityAt))
}

func TestDeleteThreadCascades(t *testing.T) {
	ctx := context.Background()
	th := testThread()
	require.NoError(t, storage.CreateThread(ctx, th))
	c := testComment(th.Id)
	require.NoError(t, storage.CreateComment(ctx, c))

	require.NoError(t, storage.DeleteThread(ctx, th.Id))

	got, err := storage.GetThread(ctx, th.Id)
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	gotComment, err := storage.GetComment(ctx, c.Id)
	require.NoError(t, err)
	assert.True(t, gotComment.Deleted)

	// update after delete is a 404
	newTitle := "x"
	_, err = storage.UpdateThread(ctx, th.Id, domain.ThreadUpdate{Title: &newTitle})
	assertStatusCode(t, err, 404)

	assertStatusCode(t, storage.DeleteThread(ctx, th.Id), 404)
}

func TestListThreadsExcludesDeleted(t *testing.T) {
	ctx := context.Background()
	live, dead := testThread(), testThread()
	require.NoError(t, storage.CreateThread(ctx, live))
	require.NoError(t, storage.CreateThread(ctx, dead))
	require.NoError(t, storage.DeleteThread(ctx, dead.Id))

	threads, err := storage.ListThreads(ctx)
	require.NoError(t, err)

	listed := make(map[domain.ThreadId]bool, len(threads))
	for _, th := range threads {
		listed[th.Id] = true
	}
	assert.True(t, listed[live.Id])
	assert.False(t, listed[dead.Id])
}
