package core

import (
	"context"
	"log/slog"
	"time"

	"careerwatch/internal/dataset"
	"careerwatch/internal/extract"
	"careerwatch/internal/observability"
)

// Outcome is the transient result of one source's scrape cycle, used for
// logging and counters only.
type Outcome struct {
	Source   string
	Snapshot extract.Snapshot
	Attempts int
	Phase    string
	Err      error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Orchestrator drives one fetch -> extract -> persist cycle per source.
type Orchestrator struct {
	store       *dataset.Store
	maxAttempts int
	backoffStep time.Duration
	now         func() time.Time
}

func NewOrchestrator(store *dataset.Store) *Orchestrator {
	return &Orchestrator{
		store:       store,
		maxAttempts: 3,
		backoffStep: 500 * time.Millisecond,
		now:         time.Now,
	}
}

// RunCycle attempts the full scrape sequence with bounded retries. Attempt
// k sleeps k×backoffStep before the next try. Exhausted retries are
// reported in the Outcome, never raised to the caller.
func (o *Orchestrator) RunCycle(ctx context.Context, src Source) Outcome {
	var lastErr error
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Outcome{Source: src.Name, Attempts: attempt - 1, Err: err}
		}

		start := o.now()
		snap, err := o.scrapeOnce(ctx, src)
		if err == nil {
			observability.IncSnapshotRecorded(src.Name)
			observability.ObserveScrapeDuration(src.Name, o.now().Sub(start).Seconds())
			return Outcome{Source: src.Name, Snapshot: snap, Attempts: attempt}
		}

		lastErr = err
		phase := observability.ClassifyPhase(err)
		observability.IncError(phase, src.Name)
		slog.Warn("scrape attempt failed",
			"source", src.Name, "phase", phase, "attempt", attempt, "err", err)

		if attempt < o.maxAttempts {
			if err := sleepWithContext(ctx, time.Duration(attempt)*o.backoffStep); err != nil {
				return Outcome{Source: src.Name, Attempts: attempt, Err: err}
			}
		}
	}

	return Outcome{
		Source:   src.Name,
		Attempts: o.maxAttempts,
		Phase:    observability.ClassifyPhase(lastErr),
		Err:      lastErr,
	}
}

func (o *Orchestrator) scrapeOnce(ctx context.Context, src Source) (extract.Snapshot, error) {
	markup, err := src.Fetcher.Fetch(ctx, src.Source)
	if err != nil {
		return extract.Snapshot{}, err
	}

	capturedAt := o.now()
	snap, err := src.Strategy.Extract(markup, capturedAt)
	if err != nil {
		return extract.Snapshot{}, err
	}

	if err := o.store.Append(src.Name, capturedAt, snap); err != nil {
		return extract.Snapshot{}, err
	}
	return snap, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
