package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"careerwatch/internal/observability"
)

// Scheduler runs the orchestration cycle for all sources sequentially,
// then sleeps until the next top-of-hour wall-clock boundary. It has no
// terminal state; the only exit is context cancellation.
type Scheduler struct {
	orch    *Orchestrator
	sources []Source
	now     func() time.Time
}

func NewScheduler(orch *Orchestrator, sources []Source) *Scheduler {
	return &Scheduler{
		orch:    orch,
		sources: sources,
		now:     time.Now,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	for {
		s.runCycle(ctx)
		if ctx.Err() != nil {
			return
		}

		wake := NextHour(s.now())
		slog.Info("waiting for next cycle", "wake", wake.Format("2006-01-02 15:04:05"))
		if err := sleepWithContext(ctx, wake.Sub(s.now())); err != nil {
			return
		}
	}
}

// runCycle attempts every configured source once, in order.
func (s *Scheduler) runCycle(ctx context.Context) {
	cycleID := uuid.NewString()[:8]
	log := slog.With("cycle", cycleID)
	start := s.now()
	log.Info("starting scrape cycle", "sources", len(s.sources))

	for _, src := range s.sources {
		if ctx.Err() != nil {
			return
		}
		outcome := s.orch.RunCycle(ctx, src)
		if !outcome.OK() {
			if ctx.Err() != nil {
				return
			}
			// One source's failure never stops the rest of the cycle.
			log.Error("source produced nothing this cycle",
				"source", outcome.Source,
				"phase", outcome.Phase,
				"attempts", outcome.Attempts,
				"err", outcome.Err)
			continue
		}
		log.Info("snapshot recorded",
			"source", outcome.Source,
			"total_jobs", outcome.Snapshot.TotalJobs,
			"areas", len(outcome.Snapshot.JobAreas),
			"attempts", outcome.Attempts)
	}

	observability.IncCycleCompleted()
	stats := observability.Snapshot()
	log.Info("cycle complete",
		"elapsed", s.now().Sub(start).Round(time.Millisecond).String(),
		"snapshots_total", stats.SnapshotsRecorded,
		"errors_total", stats.ErrorsTotal)
}

// NextHour returns the next exact hour boundary after t in t's location.
// Aligning on the wall clock instead of a fixed period keeps cycle starts
// on hour boundaries regardless of how long the previous cycle took.
func NextHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
}
