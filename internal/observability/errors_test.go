package observability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"careerwatch/internal/dataset"
	"careerwatch/internal/extract"
	"careerwatch/internal/fetch"
)

func TestClassifyPhase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "fetch error", err: &fetch.FetchError{Status: 503}, want: PhaseFetch},
		{name: "wrapped fetch error", err: fmt.Errorf("cycle: %w", &fetch.FetchError{}), want: PhaseFetch},
		{name: "extraction error", err: &extract.ExtractionError{Strategy: "acme", Anchor: "list"}, want: PhaseExtract},
		{name: "store error", err: &dataset.StoreError{Path: "x.json", Err: errors.New("disk full")}, want: PhaseStore},
		{name: "deadline", err: context.DeadlineExceeded, want: PhaseFetch},
		{name: "unknown", err: errors.New("mystery"), want: PhaseUnknown},
		{name: "nil", err: nil, want: PhaseUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPhase(tt.err))
		})
	}
}
