package parser

import "strings"

// Line is one physical line of the comment body together with its byte span.
// Text is the content with the per-line comment prefix stripped and trimmed;
// it is always a contiguous substring of the body, so offsets inside Text
// translate back to body offsets via TextOff.
type Line struct {
	Raw     string
	Text    string
	Start   int // offset of Raw in the body
	End     int // offset just past Raw, excluding the newline
	TextOff int // offset of Text in the body
}

// SplitLines splits a body region [start, end) into lines with body-relative
// offsets. The trailing newline is not part of any line's Raw.
func SplitLines(body string, start, end int) []Line {
	if start < 0 {
		start = 0
	}
	if end > len(body) {
		end = len(body)
	}
	var lines []Line
	lineStart := start
	for pos := start; pos <= end; pos++ {
		if pos == end || body[pos] == '\n' {
			raw := body[lineStart:pos]
			textStart, textEnd := stripPrefixBounds(raw)
			lines = append(lines, Line{
				Raw:     raw,
				Text:    raw[textStart:textEnd],
				Start:   lineStart,
				End:     pos,
				TextOff: lineStart + textStart,
			})
			lineStart = pos + 1
		}
	}
	// A region ending in a newline produced one trailing empty line; keep it
	// only when the region itself is empty, so spans stay tight.
	if len(lines) > 1 && lines[len(lines)-1].Raw == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// stripPrefixBounds locates the content of a comment line inside raw:
// leading whitespace and one '*' marker with its following whitespace run
// are skipped, trailing whitespace is dropped.
func stripPrefixBounds(raw string) (start, end int) {
	start = 0
	for start < len(raw) && (raw[start] == ' ' || raw[start] == '\t') {
		start++
	}
	if start < len(raw) && raw[start] == '*' {
		// "*/" never reaches the parser; a lone '*' is the line marker.
		start++
		for start < len(raw) && (raw[start] == ' ' || raw[start] == '\t') {
			start++
		}
	}
	end = len(raw)
	for end > start && (raw[end-1] == ' ' || raw[end-1] == '\t' || raw[end-1] == '\r') {
		end--
	}
	return start, end
}

// StripCommentPrefixes removes per-line comment prefixes from a multi-line
// string, as needed when code is lifted out of a comment.
func StripCommentPrefixes(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		s, e := stripPrefixBounds(line)
		lines[i] = line[s:e]
	}
	return strings.Join(lines, "\n")
}
