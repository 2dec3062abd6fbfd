// Package scan contains low-level cursor utilities over raw comment text:
// whitespace skipping, brace matching, and line boundary lookups.
//
// Purpose: shared position math for the comment parser and formatter.
// Does not do: tokenization, segment classification, or any allocation
// beyond return values. Dependencies: none.
package scan

// IsSpace reports whether b is horizontal or vertical whitespace.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// SkipWhitespace returns the position of the first non-whitespace byte at or
// after pos. Returns ok=false when pos is out of range or only whitespace
// remains.
func SkipWhitespace(text string, pos int) (int, bool) {
	if pos < 0 || pos >= len(text) {
		return 0, false
	}
	for i := pos; i < len(text); i++ {
		if !IsSpace(text[i]) {
			return i, true
		}
	}
	return 0, false
}

// FindMatchingClose returns the position of the close byte that balances the
// open byte at openPos, counting nested pairs. Returns ok=false when openPos
// is out of range, does not hold open, or the input ends before the depth
// returns to zero.
func FindMatchingClose(text string, openPos int, open, close byte) (int, bool) {
	if openPos < 0 || openPos >= len(text) || text[openPos] != open {
		return 0, false
	}
	depth := 0
	for i := openPos; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// LineStart returns the position of the first byte of the line containing
// pos. pos == len(text) is allowed and refers to the final line. Returns
// ok=false for positions outside [0, len(text)].
func LineStart(text string, pos int) (int, bool) {
	if pos < 0 || pos > len(text) {
		return 0, false
	}
	for i := pos - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1, true
		}
	}
	return 0, true
}

// CountNewlinesBefore counts the newlines in the whitespace run immediately
// preceding pos. Out-of-range positions count as zero.
func CountNewlinesBefore(text string, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	count := 0
	for i := pos - 1; i >= 0; i-- {
		b := text[i]
		if !IsSpace(b) {
			break
		}
		if b == '\n' {
			count++
		}
	}
	return count
}
