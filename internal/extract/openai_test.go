package extract

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openaiPage = `<html><body>
<span class="text-caption">281 jobs</span>
<div class="mb-xl">
  <div class="w-full"><a href="/j/1">Engineer</a><span class="text-copy-secondary">Engineering</span></div>
  <div class="w-full"><a href="/j/2">Researcher</a><span class="text-copy-secondary">Research</span></div>
  <div class="w-full"><a href="/j/3">Engineer 2</a><span class="text-copy-secondary">Engineering</span></div>
  <div class="w-full"><a href="/j/4">Mystery role</a></div>
</div>
</body></html>`

func TestOpenAIExtract(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	snap, err := openaiStrategy{}.Extract(openaiPage, at)
	require.NoError(t, err)

	// The total comes from the page counter, not from the listed rows.
	assert.Equal(t, 281, snap.TotalJobs)
	assert.Equal(t, map[string]int{"Engineering": 2, "Research": 1}, snap.JobAreas)
}

func TestOpenAIExtractNoListings(t *testing.T) {
	page := `<html><body><span class="text-caption">0 jobs</span></body></html>`
	snap, err := openaiStrategy{}.Extract(page, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.TotalJobs)
	assert.Empty(t, snap.JobAreas)
	assert.NotNil(t, snap.JobAreas)
}

func TestOpenAIExtractMissingCounter(t *testing.T) {
	_, err := openaiStrategy{}.Extract(`<html><body><div class="mb-xl"></div></body></html>`, time.Now())
	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "openai", extractionErr.Strategy)
}
