// Package report renders classification results as a standalone HTML
// page with layer-distribution charts.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/codelayers/strata/pkg/render"
)

const (
	topFilesLimit    = 25
	xAxisRotate      = 45
	pieRadius        = "60%"
	chartWidth       = "100%"
	chartHeight      = "500px"
	emptyChartHeight = "400px"
	pageTitle        = "Syntax Layer Report"
)

// layerColors matches the terminal palette: blue types, green markup,
// magenta library conventions, grey base.
var layerColors = map[string]string{
	"base":    "#9aa0a6",
	"type":    "#5470c6",
	"markup":  "#91cc75",
	"library": "#c45ab3",
}

// layerOrder fixes series ordering across charts.
var layerOrder = []string{"base", "type", "markup", "library"}

// Write renders the report page for the given documents.
func Write(w io.Writer, docs []render.Document) error {
	page := components.NewPage()
	page.PageTitle = pageTitle

	page.AddCharts(
		distributionPie(docs),
		perFileBar(docs),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("report: render page: %w", err)
	}

	return nil
}

// aggregate sums per-layer byte counts across all documents.
func aggregate(docs []render.Document) map[string]int {
	totals := make(map[string]int)

	for _, doc := range docs {
		for _, stat := range doc.Summary {
			totals[stat.Layer] += stat.Bytes
		}
	}

	return totals
}

func distributionPie(docs []render.Document) *charts.Pie {
	totals := aggregate(docs)

	pie := charts.NewPie()

	if len(totals) == 0 {
		pie.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: emptyChartHeight}),
			charts.WithTitleOpts(opts.Title{Title: "Layer Distribution", Subtitle: "No data"}),
		)

		return pie
	}

	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Layer Distribution",
			Subtitle: "Bytes attributed to each syntax origin across all files.",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	pieData := make([]opts.PieData, 0, len(totals))

	for _, name := range layerOrder {
		bytes, ok := totals[name]
		if !ok {
			continue
		}

		pieData = append(pieData, opts.PieData{
			Name:      name,
			Value:     bytes,
			ItemStyle: &opts.ItemStyle{Color: layerColors[name]},
		})
	}

	pie.AddSeries("Layers", pieData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c} ({d}%)",
			}),
			charts.WithPieChartOpts(opts.PieChart{Radius: pieRadius}),
		)

	return pie
}

func perFileBar(docs []render.Document) *charts.Bar {
	bar := charts.NewBar()

	if len(docs) == 0 {
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: emptyChartHeight}),
			charts.WithTitleOpts(opts.Title{Title: "Per-File Composition", Subtitle: "No data"}),
		)

		return bar
	}

	sorted := make([]render.Document, len(docs))
	copy(sorted, docs)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})

	if len(sorted) > topFilesLimit {
		sorted = sorted[:topFilesLimit]
	}

	labels := make([]string, len(sorted))
	for i, doc := range sorted {
		labels[i] = doc.Path
	}

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Per-File Composition",
			Subtitle: "Largest files, stacked bytes per layer.",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
	)

	bar.SetXAxis(labels)

	for _, name := range layerOrder {
		series := make([]opts.BarData, len(sorted))

		for i, doc := range sorted {
			bytes := 0

			for _, stat := range doc.Summary {
				if stat.Layer == name {
					bytes = stat.Bytes

					break
				}
			}

			series[i] = opts.BarData{Value: bytes}
		}

		bar.AddSeries(name, series,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: layerColors[name]}),
			charts.WithBarChartOpts(opts.BarChart{Stack: "layers"}),
		)
	}

	return bar
}
