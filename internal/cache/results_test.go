package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/folio/internal/adapters/memory"
	"github.com/corey/folio/internal/domain/analyzer"
)

func TestResults_RoundTrip(t *testing.T) {
	store := memory.NewStore()
	results := NewResults(store, 0)

	res := analyzer.Result{
		Keywords:   []string{"Go", "PostgreSQL"},
		Categories: map[string][]string{"languages": {"Go"}, "databases": {"PostgreSQL"}},
		Priority:   4.5,
	}
	require.NoError(t, results.Put("my-repo", res))

	got := results.Get("my-repo")
	require.NotNil(t, got)
	assert.Equal(t, "my-repo", got.RepoName)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.Keywords)
	assert.Equal(t, 4.5, got.Priority)
	assert.NotZero(t, got.AnalyzedAt)
}

func TestResults_AbsentIsNil(t *testing.T) {
	results := NewResults(memory.NewStore(), 0)
	assert.Nil(t, results.Get("never-analyzed"))
}

func TestResults_ExpiredIsNil(t *testing.T) {
	store := memory.NewStore()
	results := NewResults(store, 0)
	base := time.Now()

	fixedClock(t, base)
	require.NoError(t, results.Put("my-repo", analyzer.Result{Keywords: []string{"Go"}}))

	fixedClock(t, base.Add(ResultsWindow-time.Hour))
	assert.NotNil(t, results.Get("my-repo"), "inside the window the record is live")

	fixedClock(t, base.Add(ResultsWindow+time.Hour))
	assert.Nil(t, results.Get("my-repo"), "past the window the record reads as absent")
}

func TestResults_CorruptIsNil(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Put(resultsPrefix+"bad", []byte("{broken")))

	results := NewResults(store, 0)
	assert.Nil(t, results.Get("bad"))
}

func TestResults_CustomWindow(t *testing.T) {
	store := memory.NewStore()
	results := NewResults(store, time.Minute)
	base := time.Now()

	fixedClock(t, base)
	require.NoError(t, results.Put("my-repo", analyzer.Result{}))

	fixedClock(t, base.Add(2*time.Minute))
	assert.Nil(t, results.Get("my-repo"))
}

func TestResults_EvictExpired(t *testing.T) {
	store := memory.NewStore()
	results := NewResults(store, 0)
	base := time.Now()

	fixedClock(t, base.Add(-ResultsWindow-time.Hour))
	require.NoError(t, results.Put("old", analyzer.Result{}))

	fixedClock(t, base)
	require.NoError(t, results.Put("fresh", analyzer.Result{}))
	require.NoError(t, store.Put(resultsPrefix+"corrupt", []byte("???")))
	require.NoError(t, store.Put("github_user_alice", []byte("{}")))

	deleted, err := results.EvictExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, deleted, "expired and corrupt records go, fresh stays")

	assert.NotNil(t, results.Get("fresh"))
	assert.Nil(t, results.Get("old"))

	raw, err := store.Get("github_user_alice")
	require.NoError(t, err)
	assert.NotNil(t, raw, "records outside the result namespace are untouched")
}

func TestRepoNameFromKey(t *testing.T) {
	assert.Equal(t, "my-repo", RepoNameFromKey(resultsPrefix+"my-repo"))
	assert.Equal(t, "", RepoNameFromKey("github_user_alice"))
}
