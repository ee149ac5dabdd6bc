package extract

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

func init() {
	register(xaiStrategy{})
}

// xaiStrategy walks the numbered career sections on the xAI page by
// position. Section N being absent means there are fewer than N sections,
// so traversal stops cleanly there. Each area's count is the number of
// listing items under its section; the total is the sum.
type xaiStrategy struct{}

func (xaiStrategy) Name() string {
	return "xai"
}

const xaiSectionPath = "/html/body/div[4]/div/main/div[8]/div[%d]"

func (xaiStrategy) Extract(markup string, at time.Time) (Snapshot, error) {
	root, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return Snapshot{}, &ExtractionError{Strategy: "xai", Anchor: "document", Err: err}
	}

	areas := map[string]int{}
	total := 0
	for i := 2; ; i++ {
		section := fmt.Sprintf(xaiSectionPath, i)
		title := htmlquery.FindOne(root, section+"/div[1]/div/h2")
		if title == nil {
			break
		}
		list := htmlquery.FindOne(root, section+"/div[2]/ul")
		if list == nil {
			// Section without a listing, skip the entry only.
			continue
		}
		area := strings.TrimSpace(nodeText(title))
		if area == "" {
			continue
		}
		count := len(htmlquery.Find(list, "./li"))
		areas[area] = count
		total += count
	}

	return Snapshot{
		Time:      Timestamp(at),
		TotalJobs: total,
		JobAreas:  areas,
	}, nil
}

func nodeText(node *html.Node) string {
	var buffer bytes.Buffer
	collectText(node, &buffer)
	return buffer.String()
}

func collectText(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buffer)
	}
}
