package core

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerwatch/internal/config"
	"careerwatch/internal/dataset"
	"careerwatch/internal/extract"
	"careerwatch/internal/fetch"
	"careerwatch/internal/observability"
)

type stubFetcher struct {
	calls       int
	failUntil   int
	markup      string
	permanentEr error
}

func (f *stubFetcher) Fetch(ctx context.Context, src config.Source) (string, error) {
	f.calls++
	if f.permanentEr != nil {
		return "", f.permanentEr
	}
	if f.calls <= f.failUntil {
		return "", &fetch.FetchError{Status: 503, Err: errors.New("unavailable")}
	}
	return f.markup, nil
}

type stubStrategy struct {
	total int
	err   error
}

func (s stubStrategy) Name() string { return "stub" }

func (s stubStrategy) Extract(markup string, at time.Time) (extract.Snapshot, error) {
	if s.err != nil {
		return extract.Snapshot{}, s.err
	}
	return extract.Snapshot{
		Time:      extract.Timestamp(at),
		TotalJobs: s.total,
		JobAreas:  map[string]int{"Engineering": s.total},
	}, nil
}

func testOrchestrator(t *testing.T) (*Orchestrator, *dataset.Store) {
	t.Helper()
	store, err := dataset.NewStore(t.TempDir())
	require.NoError(t, err)
	orch := NewOrchestrator(store)
	orch.backoffStep = time.Millisecond
	return orch, store
}

func TestRunCycleSucceedsFirstAttempt(t *testing.T) {
	orch, store := testOrchestrator(t)
	fetcher := &stubFetcher{markup: "<html></html>"}
	src := Source{
		Source:   config.Source{Name: "acme", URL: "https://acme.test/careers"},
		Fetcher:  fetcher,
		Strategy: stubStrategy{total: 5},
	}

	outcome := orch.RunCycle(context.Background(), src)
	require.True(t, outcome.OK())
	assert.Equal(t, 1, outcome.Attempts)
	assert.Equal(t, 5, outcome.Snapshot.TotalJobs)

	file, err := dataset.Read(store.Path("acme", time.Now()))
	require.NoError(t, err)
	require.Len(t, file.Data, 1)
}

func TestRunCycleRetriesThenSucceeds(t *testing.T) {
	orch, _ := testOrchestrator(t)
	fetcher := &stubFetcher{failUntil: 2, markup: "<html></html>"}
	src := Source{
		Source:   config.Source{Name: "acme", URL: "https://acme.test/careers"},
		Fetcher:  fetcher,
		Strategy: stubStrategy{total: 1},
	}

	outcome := orch.RunCycle(context.Background(), src)
	require.True(t, outcome.OK())
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, 3, fetcher.calls)
}

func TestRunCycleExhaustsRetries(t *testing.T) {
	orch, store := testOrchestrator(t)
	fetcher := &stubFetcher{permanentEr: &fetch.FetchError{Err: errors.New("connection refused")}}
	src := Source{
		Source:   config.Source{Name: "acme", URL: "https://acme.test/careers"},
		Fetcher:  fetcher,
		Strategy: stubStrategy{total: 1},
	}

	outcome := orch.RunCycle(context.Background(), src)
	require.False(t, outcome.OK())
	// Exactly 3 attempts, then the cycle moves on without raising.
	assert.Equal(t, 3, fetcher.calls)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, observability.PhaseFetch, outcome.Phase)

	_, err := dataset.Read(store.Path("acme", time.Now()))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRunCycleRetriesExtractionFailure(t *testing.T) {
	orch, _ := testOrchestrator(t)
	fetcher := &stubFetcher{markup: "<html></html>"}
	src := Source{
		Source:   config.Source{Name: "acme", URL: "https://acme.test/careers"},
		Fetcher:  fetcher,
		Strategy: stubStrategy{err: &extract.ExtractionError{Strategy: "stub", Anchor: "list"}},
	}

	outcome := orch.RunCycle(context.Background(), src)
	require.False(t, outcome.OK())
	assert.Equal(t, observability.PhaseExtract, outcome.Phase)
	assert.Equal(t, 3, fetcher.calls)
}
