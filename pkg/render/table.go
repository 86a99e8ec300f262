package render

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const percentageValue = 100

// Table renders a document's regions and per-layer summary as two
// go-pretty tables.
func Table(doc Document) string {
	regions := table.NewWriter()
	regions.SetStyle(table.StyleLight)
	regions.Style().Options.SeparateRows = false
	regions.Style().Options.SeparateColumns = false
	regions.Style().Format.Footer = text.FormatDefault

	regions.AppendHeader(table.Row{"START", "END", "LAYER"})

	for _, r := range doc.Regions {
		regions.AppendRow(table.Row{r.Start, r.End, r.Layer})
	}

	regions.AppendFooter(table.Row{"", "", fmt.Sprintf("%d regions", len(doc.Regions))})

	summary := table.NewWriter()
	summary.SetStyle(table.StyleLight)
	summary.Style().Options.SeparateRows = false
	summary.Style().Options.SeparateColumns = false

	summary.AppendHeader(table.Row{"LAYER", "REGIONS", "BYTES", "SHARE"})

	for _, stat := range doc.Summary {
		summary.AppendRow(table.Row{
			stat.Layer,
			stat.Regions,
			humanize.Bytes(uint64(stat.Bytes)),
			fmt.Sprintf("%.1f%%", stat.Share*percentageValue),
		})
	}

	header := ""
	if doc.Path != "" {
		header = doc.Path + "\n"
	}

	return header + regions.Render() + "\n\n" + summary.Render() + "\n"
}
