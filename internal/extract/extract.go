package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// TimeLayout is the capture-timestamp format used in dataset files.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp marshals as a local wall-clock string with second precision.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(TimeLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// Snapshot is one point-in-time job-count observation for a source.
// TotalJobs and JobAreas are independent: depending on the strategy the
// total comes from a dedicated on-page counter or from summing the areas,
// so the two need not agree.
type Snapshot struct {
	Time      Timestamp      `json:"time"`
	TotalJobs int            `json:"total_jobs"`
	JobAreas  map[string]int `json:"job_areas"`
}

// Strategy maps raw page markup to a Snapshot. Implementations are pure:
// same markup and capture time yield the same snapshot.
type Strategy interface {
	Name() string
	Extract(markup string, at time.Time) (Snapshot, error)
}

// ExtractionError reports a page whose required structural anchors are
// absent, as opposed to a single skippable entry.
type ExtractionError struct {
	Strategy string
	Anchor   string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Strategy, e.Anchor, e.Err)
	}
	return fmt.Sprintf("extract %s: missing %s", e.Strategy, e.Anchor)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

var registry = map[string]Strategy{}

func register(s Strategy) {
	registry[s.Name()] = s
}

// ForName resolves a strategy by its configured name.
func ForName(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("extract: unknown strategy %q (known: %v)", name, Names())
	}
	return s, nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
