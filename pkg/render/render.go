// Package render turns classified region sequences into human- and
// machine-readable output: ANSI-painted source, region tables, JSON and
// YAML documents.
package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/codelayers/strata/pkg/layer"
)

// ErrUnknownFormat indicates an unsupported output format name.
var ErrUnknownFormat = errors.New("render: unknown format")

// ErrUnknownPalette indicates an unsupported palette name.
var ErrUnknownPalette = errors.New("render: unknown palette")

// Region is the serialized form of one classified region. The layer is a
// string so JSON and YAML read the same.
type Region struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end"   yaml:"end"`
	Layer string `json:"layer" yaml:"layer"`
}

// LayerStat aggregates one layer's share of a document.
type LayerStat struct {
	Layer   string  `json:"layer"   yaml:"layer"`
	Regions int     `json:"regions" yaml:"regions"`
	Bytes   int     `json:"bytes"   yaml:"bytes"`
	Share   float64 `json:"share"   yaml:"share"`
}

// Document is the full serialized classification of one source file.
type Document struct {
	Path    string      `json:"path,omitempty" yaml:"path,omitempty"`
	Length  int         `json:"length"         yaml:"length"`
	Regions []Region    `json:"regions"        yaml:"regions"`
	Summary []LayerStat `json:"summary"        yaml:"summary"`
}

// NewDocument converts an engine result into its serialized form.
func NewDocument(path string, docLen int, regions []layer.Region) Document {
	doc := Document{
		Path:    path,
		Length:  docLen,
		Regions: make([]Region, 0, len(regions)),
		Summary: Summarize(docLen, regions),
	}

	for _, r := range regions {
		doc.Regions = append(doc.Regions, Region{
			Start: r.Start,
			End:   r.End,
			Layer: r.Layer.String(),
		})
	}

	return doc
}

// Summarize aggregates per-layer region and byte counts. Layers absent
// from the document are omitted; entries are ordered by descending byte
// count, ties by layer name.
func Summarize(docLen int, regions []layer.Region) []LayerStat {
	byLayer := make(map[string]*LayerStat)

	for _, r := range regions {
		name := r.Layer.String()

		stat, ok := byLayer[name]
		if !ok {
			stat = &LayerStat{Layer: name}
			byLayer[name] = stat
		}

		stat.Regions++
		stat.Bytes += r.End - r.Start
	}

	stats := make([]LayerStat, 0, len(byLayer))

	for _, stat := range byLayer {
		if docLen > 0 {
			stat.Share = float64(stat.Bytes) / float64(docLen)
		}

		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Bytes != stats[j].Bytes {
			return stats[i].Bytes > stats[j].Bytes
		}

		return stats[i].Layer < stats[j].Layer
	})

	return stats
}

// Format renders a document in the named format. Text output needs the
// original source and is handled by Painter, not here.
func Format(doc Document, format string) ([]byte, error) {
	switch format {
	case "json":
		return encodeJSON(doc)
	case "yaml":
		return encodeYAML(doc)
	case "table":
		return []byte(Table(doc)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
