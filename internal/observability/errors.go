package observability

import (
	"context"
	"errors"

	"careerwatch/internal/dataset"
	"careerwatch/internal/extract"
	"careerwatch/internal/fetch"
)

const (
	PhaseFetch   = "fetch"
	PhaseExtract = "extract"
	PhaseStore   = "store"
	PhaseUnknown = "unknown"
)

// ClassifyPhase maps a scrape-cycle error to the pipeline phase that
// produced it, for logging and counters.
func ClassifyPhase(err error) string {
	if err == nil {
		return PhaseUnknown
	}
	var fe *fetch.FetchError
	if errors.As(err, &fe) {
		return PhaseFetch
	}
	var ee *extract.ExtractionError
	if errors.As(err, &ee) {
		return PhaseExtract
	}
	var se *dataset.StoreError
	if errors.As(err, &se) {
		return PhaseStore
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return PhaseFetch
	}
	return PhaseUnknown
}
