// Package testkit holds invariant checkers shared by tests across the
// repository.
package testkit

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"docfmt/internal/comment"
)

// CheckSegmentPartition verifies that segment spans partition the comment
// body exactly: the first span starts at zero, each span begins where the
// previous one ended, and the last span ends at the body's end.
func CheckSegmentPartition(segs []comment.Segment, body string) error {
	if len(segs) == 0 {
		return fmt.Errorf("no segments for body %q", body)
	}
	prev := 0
	for i, seg := range segs {
		start, end := seg.Span()
		if start != prev {
			return fmt.Errorf("segment %d starts at %d, want %d (gap or overlap)", i, start, prev)
		}
		if end < start {
			return fmt.Errorf("segment %d has inverted span %d-%d", i, start, end)
		}
		prev = end
	}
	if prev != len(body) {
		return fmt.Errorf("segments end at %d, body ends at %d", prev, len(body))
	}
	return nil
}

// CheckNoDuplication verifies that no line of a tag entry's merged content
// also appears in a sibling prose segment.
func CheckNoDuplication(segs []comment.Segment) error {
	tagText := make(map[string]struct{})
	for _, seg := range segs {
		if tag, ok := seg.(*comment.TagEntry); ok {
			tagText[strings.TrimSpace(tag.Content)] = struct{}{}
		}
	}
	for _, seg := range segs {
		var lines []string
		switch v := seg.(type) {
		case *comment.Text:
			lines = v.Lines
		case *comment.Paragraph:
			lines = v.Lines
		default:
			continue
		}
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			for content := range tagText {
				if content != "" && strings.Contains(content, trimmed) {
					return fmt.Errorf("line %q appears in both a tag entry and a prose segment", trimmed)
				}
			}
		}
	}
	return nil
}

// CheckWrapWidths verifies the wrap width bound: every line's printable
// width stays within its allotted width, except a line holding a single
// word wider than the width.
func CheckWrapWidths(lines []string, firstWidth, contWidth int) error {
	for i, line := range lines {
		limit := contWidth
		if i == 0 {
			limit = firstWidth
		}
		if runewidth.StringWidth(line) <= limit {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, " ") {
			// A single oversized word is allowed; words are never split.
			continue
		}
		if strings.HasPrefix(trimmed, "{@") && strings.HasSuffix(trimmed, "}") {
			// An inline construct wraps as one word, spaces included.
			continue
		}
		return fmt.Errorf("line %d exceeds width %d: %q", i, limit, line)
	}
	return nil
}
