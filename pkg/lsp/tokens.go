package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/codelayers/strata/pkg/layer"
)

// TokenTypes is the semantic token legend: the index of each name is the
// token-type value encoded in the data stream.
var TokenTypes = []string{"base", "markup", "type", "library"}

// tokenType maps a layer to its legend index. The layer enum starts at 1
// (None is 0) and follows legend order.
func tokenType(l layer.Layer) protocol.UInteger {
	return protocol.UInteger(l - 1)
}

// EncodeTokens converts a region partition into the LSP semantic-token
// data stream: 5-tuples of delta line, delta start, length, token type
// and modifier bitset. Regions spanning multiple lines are split, since
// tokens cannot cross line boundaries.
func EncodeTokens(src []byte, regions []layer.Region) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(regions)*5)

	var prevLine, prevCol int

	line, col := 0, 0
	offset := 0

	advanceTo := func(target int) {
		for offset < target {
			if src[offset] == '\n' {
				line++

				col = 0
			} else {
				col++
			}

			offset++
		}
	}

	emit := func(startLine, startCol, length int, l layer.Layer) {
		if length == 0 {
			return
		}

		deltaLine := startLine - prevLine
		deltaStart := startCol

		if deltaLine == 0 {
			deltaStart = startCol - prevCol
		}

		data = append(data,
			protocol.UInteger(deltaLine),
			protocol.UInteger(deltaStart),
			protocol.UInteger(length),
			tokenType(l),
			0,
		)

		prevLine, prevCol = startLine, startCol
	}

	for _, r := range regions {
		advanceTo(r.Start)

		segLine, segCol, segStart := line, col, r.Start

		for pos := r.Start; pos < r.End && pos < len(src); pos++ {
			if src[pos] == '\n' {
				emit(segLine, segCol, pos-segStart, r.Layer)

				segLine, segCol, segStart = segLine+1, 0, pos+1
			}
		}

		end := min(r.End, len(src))
		emit(segLine, segCol, end-segStart, r.Layer)

		advanceTo(end)
	}

	return data
}
