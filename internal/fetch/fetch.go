// Package fetch retrieves raw careers-page markup, either over plain HTTP
// or through a long-lived headless browser session for pages that need
// client-side rendering.
package fetch

import (
	"context"
	"fmt"

	"careerwatch/internal/config"
)

// Fetcher returns page markup for a source, representing the page state
// after any required client-side rendering has settled.
type Fetcher interface {
	Fetch(ctx context.Context, src config.Source) (string, error)
}

type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	if e.Status == 0 {
		return fmt.Sprintf("fetch error: %v", e.Err)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
