package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	register(anthropicStrategy{})
}

// anthropicStrategy reads the per-area role counters on the Anthropic jobs
// page. The page exposes no independent total, so the total is the sum of
// the area counts.
type anthropicStrategy struct{}

func (anthropicStrategy) Name() string {
	return "anthropic"
}

func (anthropicStrategy) Extract(markup string, at time.Time) (Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Snapshot{}, &ExtractionError{Strategy: "anthropic", Anchor: "document", Err: err}
	}

	categories := doc.Find(`div[class*="JobCategory_container"]`)
	if categories.Length() == 0 {
		return Snapshot{}, &ExtractionError{Strategy: "anthropic", Anchor: `div[class*="JobCategory_container"]`}
	}

	areas := map[string]int{}
	total := 0
	categories.Each(func(_ int, cat *goquery.Selection) {
		title := strings.TrimSpace(cat.Find(`h3[class*="JobCategory_title"]`).First().Text())
		countSel := cat.Find(`span[class*="JobCategory_count"]`)
		// An entry missing either sub-element is skipped, not fatal.
		if title == "" || countSel.Length() == 0 {
			return
		}
		n, ok := parseCount(countSel.First().Text())
		if !ok {
			return
		}
		areas[title] = n
		total += n
	})

	return Snapshot{
		Time:      Timestamp(at),
		TotalJobs: total,
		JobAreas:  areas,
	}, nil
}
