// Package layer defines the four syntax-origin layers, the candidate and
// final region types, and the overlap resolver that collapses overlapping
// candidates into a non-overlapping partition of the document.
package layer

// Layer identifies the syntax origin of a source range.
type Layer uint8

// The four syntax-origin layers. None marks positions no rule claimed.
const (
	None Layer = iota
	Base
	Markup
	Type
	Library
)

// Static resolver priorities: Library > Type > Markup > Base.
const (
	priorityBase    = 1
	priorityMarkup  = 2
	priorityType    = 3
	priorityLibrary = 4
)

// Priority returns the fixed resolver priority for the layer. None has
// priority zero and never claims a position.
func (l Layer) Priority() int {
	switch l {
	case Base:
		return priorityBase
	case Markup:
		return priorityMarkup
	case Type:
		return priorityType
	case Library:
		return priorityLibrary
	default:
		return 0
	}
}

// String returns the lowercase layer name.
func (l Layer) String() string {
	switch l {
	case Base:
		return "base"
	case Markup:
		return "markup"
	case Type:
		return "type"
	case Library:
		return "library"
	default:
		return "none"
	}
}

// ParseLayer maps a layer name back to its Layer. Unknown names map to None.
func ParseLayer(name string) Layer {
	switch name {
	case "base":
		return Base
	case "markup":
		return Markup
	case "type":
		return Type
	case "library":
		return Library
	default:
		return None
	}
}

// Candidate is a provisional, possibly-overlapping layer assignment emitted
// during traversal. Offsets are half-open byte offsets into the document.
type Candidate struct {
	Start    int
	End      int
	Layer    Layer
	Priority int
}

// Region is a final, non-overlapping layer assignment in the output
// partition. Offsets are half-open byte offsets into the document.
type Region struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Layer Layer `json:"layer"`
}

// MarshalText encodes the layer name, so Region JSON carries "base",
// "type", "markup" or "library" instead of a bare integer.
func (l Layer) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a layer name produced by MarshalText.
func (l *Layer) UnmarshalText(text []byte) error {
	*l = ParseLayer(string(text))

	return nil
}
