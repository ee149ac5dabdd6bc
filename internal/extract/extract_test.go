package extract

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForName(t *testing.T) {
	for _, name := range []string{"anthropic", "openai", "xai"} {
		s, err := ForName(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := ForName("altavista")
	assert.Error(t, err)
}

func TestSnapshotJSONFormat(t *testing.T) {
	snap := Snapshot{
		Time:      Timestamp(time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)),
		TotalJobs: 5,
		JobAreas:  map[string]int{"Engineering": 3, "Sales": 2},
	}

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"time": "2024-01-01 09:00:00",
		"total_jobs": 5,
		"job_areas": {"Engineering": 3, "Sales": 2}
	}`, string(raw))

	var back Snapshot
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, snap.Time.Time(), back.Time.Time())
	assert.Equal(t, snap.JobAreas, back.JobAreas)
}
