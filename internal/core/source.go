package core

import (
	"fmt"

	"careerwatch/internal/config"
	"careerwatch/internal/extract"
	"careerwatch/internal/fetch"
)

// Source pairs a configured source with its fetcher and extraction
// strategy, both resolved once at startup.
type Source struct {
	config.Source
	Fetcher  fetch.Fetcher
	Strategy extract.Strategy
}

// BuildSources resolves every configured source against the strategy
// registry and the available fetchers. browser may be nil when no source
// uses browser mode.
func BuildSources(cfg *config.Config, httpFetcher fetch.Fetcher, browser fetch.Fetcher) ([]Source, error) {
	sources := make([]Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		strategy, err := extract.ForName(sc.Strategy)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", sc.Name, err)
		}

		var fetcher fetch.Fetcher
		switch sc.Mode {
		case config.ModeBrowser:
			if browser == nil {
				return nil, fmt.Errorf("source %q needs a browser session", sc.Name)
			}
			fetcher = browser
		default:
			fetcher = httpFetcher
		}

		sources = append(sources, Source{
			Source:   sc,
			Fetcher:  fetcher,
			Strategy: strategy,
		})
	}
	return sources, nil
}
