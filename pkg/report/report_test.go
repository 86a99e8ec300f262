package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/codelayers/strata/pkg/layer"
	"github.com/codelayers/strata/pkg/render"
)

func sampleDocs() []render.Document {
	return []render.Document{
		render.NewDocument("app.tsx", 26, []layer.Region{
			{Start: 0, End: 7, Layer: layer.Base},
			{Start: 7, End: 15, Layer: layer.Type},
			{Start: 15, End: 26, Layer: layer.Base},
		}),
		render.NewDocument("list.tsx", 21, []layer.Region{
			{Start: 0, End: 3, Layer: layer.Markup},
			{Start: 4, End: 7, Layer: layer.Library},
			{Start: 7, End: 21, Layer: layer.Markup},
		}),
	}
}

func TestWriteProducesHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, sampleDocs()); err != nil {
		t.Fatalf("write report: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"<html", "echarts", "app.tsx", "list.tsx", "Layer Distribution"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("write empty report: %v", err)
	}

	if !strings.Contains(buf.String(), "No data") {
		t.Error("empty report missing placeholder")
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	totals := aggregate(sampleDocs())

	if totals["base"] != 18 {
		t.Errorf("base bytes = %d, want 18", totals["base"])
	}

	if totals["markup"] != 17 {
		t.Errorf("markup bytes = %d, want 17", totals["markup"])
	}

	if totals["library"] != 3 {
		t.Errorf("library bytes = %d, want 3", totals["library"])
	}
}
