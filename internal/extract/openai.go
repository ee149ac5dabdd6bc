package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	register(openaiStrategy{})
}

// openaiStrategy reads the OpenAI careers search page. The total comes from
// a dedicated result counter; areas are counted by grouping the listing rows
// by their area label, so the sum of areas can differ from the total.
type openaiStrategy struct{}

func (openaiStrategy) Name() string {
	return "openai"
}

func (openaiStrategy) Extract(markup string, at time.Time) (Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Snapshot{}, &ExtractionError{Strategy: "openai", Anchor: "document", Err: err}
	}

	counter := doc.Find("span.text-caption").First()
	if counter.Length() == 0 {
		return Snapshot{}, &ExtractionError{Strategy: "openai", Anchor: "span.text-caption"}
	}
	total, ok := parseCount(counter.Text())
	if !ok {
		return Snapshot{}, &ExtractionError{Strategy: "openai", Anchor: "span.text-caption count"}
	}

	// A missing listings container means zero areas, not a failure.
	areas := map[string]int{}
	doc.Find("div.mb-xl").First().Find("div.w-full").Each(func(_ int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find("span.text-copy-secondary").First().Text())
		if label == "" {
			return
		}
		areas[label]++
	})

	return Snapshot{
		Time:      Timestamp(at),
		TotalJobs: total,
		JobAreas:  areas,
	}, nil
}
