package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerwatch/internal/config"
	"careerwatch/internal/dataset"
	"careerwatch/internal/fetch"
)

func TestNextHour(t *testing.T) {
	tests := []struct {
		name string
		at   string
		want string
	}{
		{name: "mid hour", at: "2024-03-05 14:37:12", want: "2024-03-05 15:00:00"},
		{name: "exactly on the hour", at: "2024-03-05 15:00:00", want: "2024-03-05 16:00:00"},
		{name: "day rollover", at: "2024-03-05 23:59:59", want: "2024-03-06 00:00:00"},
	}

	layout := "2006-01-02 15:04:05"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, err := time.ParseInLocation(layout, tt.at, time.Local)
			require.NoError(t, err)
			assert.Equal(t, tt.want, NextHour(at).Format(layout))
		})
	}
}

// A source that exhausts its retries must not prevent the remaining
// sources from being attempted in the same cycle.
func TestRunCycleIsolatesFailingSource(t *testing.T) {
	store, err := dataset.NewStore(t.TempDir())
	require.NoError(t, err)
	orch := NewOrchestrator(store)
	orch.backoffStep = time.Millisecond

	broken := &stubFetcher{permanentEr: &fetch.FetchError{Err: errors.New("connection refused")}}
	healthy := &stubFetcher{markup: "<html></html>"}
	sources := []Source{
		{
			Source:   config.Source{Name: "broken", URL: "https://broken.test"},
			Fetcher:  broken,
			Strategy: stubStrategy{total: 1},
		},
		{
			Source:   config.Source{Name: "healthy", URL: "https://healthy.test"},
			Fetcher:  healthy,
			Strategy: stubStrategy{total: 2},
		},
	}

	sched := NewScheduler(orch, sources)
	sched.runCycle(context.Background())

	assert.Equal(t, 3, broken.calls)
	assert.Equal(t, 1, healthy.calls)

	file, err := dataset.Read(store.Path("healthy", time.Now()))
	require.NoError(t, err)
	require.Len(t, file.Data, 1)
	assert.Equal(t, 2, file.Data[0].TotalJobs)
}

func TestRunCycleStopsOnCancel(t *testing.T) {
	store, err := dataset.NewStore(t.TempDir())
	require.NoError(t, err)
	orch := NewOrchestrator(store)

	fetcher := &stubFetcher{markup: "<html></html>"}
	sources := []Source{{
		Source:   config.Source{Name: "acme", URL: "https://acme.test"},
		Fetcher:  fetcher,
		Strategy: stubStrategy{total: 1},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sched := NewScheduler(orch, sources)
	sched.runCycle(ctx)

	assert.Equal(t, 0, fetcher.calls)
}
