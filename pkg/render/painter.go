package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/codelayers/strata/pkg/layer"
)

// Painter writes source text with each classified region wrapped in the
// ANSI attributes of its layer. Gaps are written unstyled.
type Painter struct {
	colors map[layer.Layer]*color.Color
}

// NewPainter creates a Painter for the named palette.
func NewPainter(palette string) (*Painter, error) {
	colors, ok := palettes[palette]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, palette)
	}

	return &Painter{colors: colors}, nil
}

var palettes = map[string]map[layer.Layer]*color.Color{
	"default": {
		layer.Base:    color.New(color.Reset),
		layer.Type:    color.New(color.FgBlue),
		layer.Markup:  color.New(color.FgGreen),
		layer.Library: color.New(color.FgMagenta),
	},
	"bright": {
		layer.Base:    color.New(color.FgHiWhite),
		layer.Type:    color.New(color.FgHiBlue),
		layer.Markup:  color.New(color.FgHiGreen),
		layer.Library: color.New(color.FgHiMagenta, color.Bold),
	},
	// mono marks layers without color for pipes and logs.
	"mono": {
		layer.Base:    color.New(color.Reset),
		layer.Type:    color.New(color.Underline),
		layer.Markup:  color.New(color.Italic),
		layer.Library: color.New(color.Bold),
	},
}

// Paint writes src to w with region styling applied. Regions are assumed
// ordered and non-overlapping, which the resolver guarantees.
func (p *Painter) Paint(w io.Writer, src []byte, regions []layer.Region) error {
	cursor := 0

	for _, r := range regions {
		if r.Start > cursor {
			if _, err := w.Write(src[cursor:r.Start]); err != nil {
				return fmt.Errorf("render: paint: %w", err)
			}
		}

		styled := p.colors[r.Layer]
		if styled == nil {
			styled = color.New(color.Reset)
		}

		if _, err := styled.Fprint(w, string(src[r.Start:r.End])); err != nil {
			return fmt.Errorf("render: paint: %w", err)
		}

		cursor = r.End
	}

	if cursor < len(src) {
		if _, err := w.Write(src[cursor:]); err != nil {
			return fmt.Errorf("render: paint: %w", err)
		}
	}

	return nil
}
