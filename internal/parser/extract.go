package parser

import (
	"strings"

	"docfmt/internal/scan"
)

// Marker is the token that introduces an embedded code sample.
const Marker = "{@code"

// Extracted is a successfully lifted code sample. End points just past the
// closing brace in the comment body.
type Extracted struct {
	Code string
	End  int
}

// IndexMarker returns the position of the next code marker at or after pos,
// or -1. A marker immediately followed by an identifier byte is some other
// inline tag (e.g. {@codesnippet}) and is skipped.
func IndexMarker(body string, pos int) int {
	if pos < 0 {
		pos = 0
	}
	for pos < len(body) {
		idx := strings.Index(body[pos:], Marker)
		if idx < 0 {
			return -1
		}
		abs := pos + idx
		after := abs + len(Marker)
		if after < len(body) && isIdentByte(body[after]) {
			pos = after
			continue
		}
		return abs
	}
	return -1
}

// ExtractCode lifts the code sample introduced by the marker at markerPos.
// The marker's own opening brace counts as depth one; scanning stops when
// the depth returns to zero. Returns ok=false when the marker has no
// content or the braces never balance — the caller must then leave the span
// untouched. The returned code has per-line comment prefixes stripped and
// surrounding whitespace trimmed.
func ExtractCode(body string, markerPos int) (Extracted, bool) {
	if markerPos < 0 || markerPos >= len(body) || !strings.HasPrefix(body[markerPos:], Marker) {
		return Extracted{}, false
	}

	contentStart, ok := scan.SkipWhitespace(body, markerPos+len(Marker))
	if !ok {
		return Extracted{}, false
	}

	closePos, ok := scan.FindMatchingClose(body, markerPos, '{', '}')
	if !ok {
		return Extracted{}, false
	}
	if contentStart >= closePos {
		// "{@code}" and "{@code }" carry no sample.
		return Extracted{}, false
	}

	code := body[contentStart:closePos]
	code = StripCommentPrefixes(code)
	code = strings.TrimSpace(code)
	return Extracted{Code: code, End: closePos + 1}, true
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// isIdentStart reports whether b can open an identifier (no digits).
func isIdentStart(b byte) bool {
	return isIdentByte(b) && !(b >= '0' && b <= '9')
}
