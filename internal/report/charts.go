package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"careerwatch/internal/extract"
)

// gap is the echarts marker for a missing point on a category axis.
const gap = "-"

// TotalJobsChart builds the combined total-job-count chart across all
// sources, one line per source over the union of capture times.
func TotalJobsChart(series []Series) *charts.Line {
	labels := unionLabels(series)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Total Jobs Over Time for All Companies"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Jobs"}),
	)
	line.SetXAxis(labels)

	for _, s := range series {
		totals := make(map[string]int, len(s.Snapshots))
		for _, snap := range s.Snapshots {
			totals[snap.Time.Time().Format(extract.TimeLayout)] = snap.TotalJobs
		}
		data := make([]opts.LineData, len(labels))
		for i, label := range labels {
			if v, ok := totals[label]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: gap}
			}
		}
		line.AddSeries(s.Source, data)
	}
	return line
}

// SourcePage pairs a source's total-jobs chart with one sub-series per area
// label.
func SourcePage(s Series) *components.Page {
	labels := make([]string, len(s.Snapshots))
	for i, snap := range s.Snapshots {
		labels[i] = snap.Time.Time().Format(extract.TimeLayout)
	}

	total := charts.NewLine()
	total.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Total %s Jobs Over Time", s.Source)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total Jobs"}),
	)
	total.SetXAxis(labels)
	totalData := make([]opts.LineData, len(s.Snapshots))
	for i, snap := range s.Snapshots {
		totalData[i] = opts.LineData{Value: snap.TotalJobs}
	}
	total.AddSeries("Total Jobs", totalData)

	areas := charts.NewLine()
	areas.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s Jobs per Area Over Time", s.Source)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Number of Jobs"}),
	)
	areas.SetXAxis(labels)
	for _, label := range areaLabels(s) {
		data := make([]opts.LineData, len(s.Snapshots))
		for i, snap := range s.Snapshots {
			if v, ok := snap.JobAreas[label]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: gap}
			}
		}
		areas.AddSeries(label, data)
	}

	page := components.NewPage()
	page.AddCharts(total, areas)
	return page
}

// WriteHTML renders the combined chart and one page per source into dir.
func WriteHTML(dir string, series []Series) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := renderTo(filepath.Join(dir, "total_jobs.html"), TotalJobsChart(series)); err != nil {
		return err
	}
	for _, s := range series {
		if err := renderTo(filepath.Join(dir, s.Source+".html"), SourcePage(s)); err != nil {
			return err
		}
	}
	return nil
}

type renderer interface {
	Render(w io.Writer) error
}

func renderTo(path string, chart renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return chart.Render(f)
}

func unionLabels(series []Series) []string {
	seen := map[string]bool{}
	for _, s := range series {
		for _, snap := range s.Snapshots {
			seen[snap.Time.Time().Format(extract.TimeLayout)] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func areaLabels(s Series) []string {
	seen := map[string]bool{}
	for _, snap := range s.Snapshots {
		for label := range snap.JobAreas {
			seen[label] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
