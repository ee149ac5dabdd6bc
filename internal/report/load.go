// Package report is the consumer of the persisted dataset files: it loads
// every per-source-per-day file from the data directory and renders the
// series as line charts.
package report

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"careerwatch/internal/dataset"
	"careerwatch/internal/extract"
)

// Series is one source's full snapshot history, concatenated across days
// and sorted by capture time.
type Series struct {
	Source    string
	Snapshots []extract.Snapshot
}

// Load reads all dataset files in dir. The source identifier is the
// filename prefix before the first underscore. Files that fail to parse are
// skipped with a warning, never aborting the whole run.
func Load(dir string) ([]Series, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	bySource := map[string][]extract.Snapshot{}
	for _, path := range paths {
		file, err := dataset.Read(path)
		if err != nil {
			slog.Warn("skipping unreadable dataset file", "path", path, "err", err)
			continue
		}
		source := sourceFromFilename(path)
		bySource[source] = append(bySource[source], file.Data...)
	}

	series := make([]Series, 0, len(bySource))
	for source, snaps := range bySource {
		sort.SliceStable(snaps, func(i, j int) bool {
			return snaps[i].Time.Time().Before(snaps[j].Time.Time())
		})
		series = append(series, Series{Source: source, Snapshots: snaps})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Source < series[j].Source
	})
	return series, nil
}

func sourceFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	if i := strings.Index(name, "_"); i > 0 {
		return name[:i]
	}
	return name
}
