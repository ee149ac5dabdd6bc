package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	CyclesCompleted   uint64            `json:"cycles_completed"`
	SnapshotsRecorded uint64            `json:"snapshots_recorded"`
	ErrorsTotal       uint64            `json:"errors_total"`
	ScrapeSecondsAvg  float64           `json:"scrape_seconds_avg"`
	SnapshotsBySource map[string]uint64 `json:"snapshots_by_source,omitempty"`
	ErrorsByPhase     map[string]uint64 `json:"errors_by_phase,omitempty"`
	ErrorsBySource    map[string]uint64 `json:"errors_by_source,omitempty"`
}

var (
	cyclesCompleted   uint64
	snapshotsRecorded uint64
	errorsTotal       uint64

	scrapeCount uint64
	scrapeNanos uint64

	statsMu           sync.Mutex
	snapshotsBySource = map[string]uint64{}
	errorsByPhase     = map[string]uint64{}
	errorsBySource    = map[string]uint64{}
)

func IncCycleCompleted() {
	atomic.AddUint64(&cyclesCompleted, 1)
}

func IncSnapshotRecorded(source string) {
	if source == "" {
		source = "unknown"
	}
	atomic.AddUint64(&snapshotsRecorded, 1)
	statsMu.Lock()
	snapshotsBySource[source]++
	statsMu.Unlock()
}

func ObserveScrapeDuration(_ string, seconds float64) {
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&scrapeCount, 1)
	atomic.AddUint64(&scrapeNanos, uint64(seconds*1e9))
}

func IncError(phase, source string) {
	if phase == "" {
		phase = PhaseUnknown
	}
	if source == "" {
		source = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByPhase[phase]++
	errorsBySource[source]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	snapshotsCopy := copyMap(snapshotsBySource)
	phaseCopy := copyMap(errorsByPhase)
	sourceCopy := copyMap(errorsBySource)
	statsMu.Unlock()

	count := atomic.LoadUint64(&scrapeCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&scrapeNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		CyclesCompleted:   atomic.LoadUint64(&cyclesCompleted),
		SnapshotsRecorded: atomic.LoadUint64(&snapshotsRecorded),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		ScrapeSecondsAvg:  avg,
		SnapshotsBySource: snapshotsCopy,
		ErrorsByPhase:     phaseCopy,
		ErrorsBySource:    sourceCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
