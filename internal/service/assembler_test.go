package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openforum-dev/openforum/shared/domain"
)

func threadAt(id string, createdAt time.Time) domain.Thread {
	return domain.Thread{Id: id, CreatedAt: createdAt, LastActivityAt: createdAt}
}

func ids(threads []domain.Thread) []string {
	out := make([]string, len(threads))
	for i := range threads {
		out[i] = threads[i].Id
	}
	return out
}

func TestSortThreadsByDate(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := []domain.Thread{
		threadAt("t1", base),
		threadAt("t2", base.Add(2*time.Hour)),
		threadAt("t3", base.Add(time.Hour)),
	}

	sortThreads(threads, domain.SortByDate)
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids(threads))
}

func TestSortThreadsByActivity(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := []domain.Thread{
		threadAt("t1", base.Add(2*time.Hour)),
		threadAt("t2", base),
		threadAt("t3", base.Add(time.Hour)),
	}
	threads[1].LastActivityAt = base.Add(5 * time.Hour) // old thread, fresh comment

	sortThreads(threads, domain.SortByActivity)
	assert.Equal(t, []string{"t2", "t1", "t3"}, ids(threads))
}

func TestSortThreadsByVotes(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := []domain.Thread{
		threadAt("t1", base),
		threadAt("t2", base.Add(time.Hour)),
		threadAt("t3", base.Add(2*time.Hour)),
	}
	threads[0].Votes = domain.Votes{Up: []string{"u1", "u2", "u3"}}
	threads[1].Votes = domain.Votes{Up: []string{"u1"}, Down: []string{"u2", "u3"}} // point -1
	threads[2].Votes = domain.Votes{Up: []string{"u1"}}

	sortThreads(threads, domain.SortByVotes)
	assert.Equal(t, []string{"t1", "t3", "t2"}, ids(threads))
}

func TestSortThreadsByComments(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := []domain.Thread{
		threadAt("t1", base),
		threadAt("t2", base.Add(time.Hour)),
		threadAt("t3", base.Add(2*time.Hour)),
	}
	threads[0].CommentCount = 1
	threads[1].CommentCount = 5
	threads[2].CommentCount = 1

	sortThreads(threads, domain.SortByComments)
	// tie between t1 and t3 falls back to created_at desc
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids(threads))
}

func TestSortThreadsFullTieBreaksOnId(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := []domain.Thread{threadAt("t2", at), threadAt("t1", at), threadAt("t3", at)}

	sortThreads(threads, domain.SortByVotes)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(threads))
}

func TestAssemblePage(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := make([]domain.Thread, 0, 5)
	for i := 0; i < 5; i++ {
		threads = append(threads, threadAt(string(rune('a'+i)), base))
	}

	page := assemblePage(threads, 1, 2)
	assert.Equal(t, 5, page.TotalResults)
	assert.Equal(t, 3, page.NumPages)
	assert.Equal(t, []string{"a", "b"}, ids(page.Collection))

	page = assemblePage(threads, 3, 2)
	assert.Equal(t, []string{"e"}, ids(page.Collection))
}

func TestAssemblePageExactFit(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := []domain.Thread{threadAt("a", base), threadAt("b", base)}

	page := assemblePage(threads, 1, 2)
	assert.Equal(t, 1, page.NumPages)
	assert.Len(t, page.Collection, 2)
}

func TestAssemblePagePastEnd(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	threads := []domain.Thread{threadAt("a", base)}

	page := assemblePage(threads, 7, 10)
	assert.Empty(t, page.Collection)
	assert.Equal(t, 1, page.TotalResults)
	assert.Equal(t, 1, page.NumPages)
}

func TestAssemblePageEmpty(t *testing.T) {
	page := assemblePage(nil, 1, 20)
	assert.Empty(t, page.Collection)
	assert.Equal(t, 0, page.TotalResults)
	assert.Equal(t, 0, page.NumPages)
}
