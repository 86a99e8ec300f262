package syntax

// NotFound is the sentinel returned by the bracket scanners when no
// bracket can be located. Callers skip the corresponding type-layer
// candidate; it is never an error.
const NotFound = -1

// OpeningAngleBefore scans backward from offset (exclusive) to the
// nearest '<' and returns its offset, or NotFound when the start of the
// text is reached first.
func OpeningAngleBefore(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}

	for pos := offset - 1; pos >= 0; pos-- {
		if src[pos] == '<' {
			return pos
		}
	}

	return NotFound
}

// ClosingAngleAfter scans forward from a known opening '<' at open,
// maintaining a nesting depth incremented on '<' and decremented on '>',
// and returns the offset of the depth-0 closing '>'. Returns NotFound
// when the end of the text is reached first, or when open does not point
// at a '<'.
func ClosingAngleAfter(src []byte, open int) int {
	if open < 0 || open >= len(src) || src[open] != '<' {
		return NotFound
	}

	depth := 0

	for pos := open; pos < len(src); pos++ {
		switch src[pos] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return pos
			}
		}
	}

	return NotFound
}
