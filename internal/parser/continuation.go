package parser

import (
	"strings"

	"docfmt/internal/scan"
)

// ConsumedSet records the trimmed text of every line merged into a tag
// entry. Prose assembly later drops lines that are already in the set so
// the same text is never emitted twice. The set is threaded explicitly
// through the segmenter; there is no package-level state.
type ConsumedSet struct {
	seen map[string]struct{}
}

func NewConsumedSet() *ConsumedSet {
	return &ConsumedSet{seen: make(map[string]struct{})}
}

func (c *ConsumedSet) Add(line string) {
	if line == "" {
		return
	}
	c.seen[line] = struct{}{}
}

func (c *ConsumedSet) Contains(line string) bool {
	_, ok := c.seen[line]
	return ok
}

// Collected is the result of pulling a tag's continuation lines.
type Collected struct {
	Content   string
	NextLine  int // index of the first line the segmenter should resume at
	EndOffset int // body offset just past the last consumed line, -1 if none
}

// CollectContinuation merges trailing lines into a tag's content, starting
// at lines[from]. A line continues the tag while it is non-blank, does not
// open a new tag, and does not start with a code marker. Every consumed
// line's trimmed text is recorded in consumed.
func CollectContinuation(initial string, lines []Line, from int, consumed *ConsumedSet) Collected {
	content := initial
	i := from
	end := -1
	for i < len(lines) {
		text := lines[i].Text
		if text == "" || isTagStart(text) || strings.HasPrefix(text, Marker) {
			break
		}
		if content == "" {
			content = text
		} else {
			content += " " + text
		}
		consumed.Add(text)
		end = lines[i].End
		i++
	}
	return Collected{Content: content, NextLine: i, EndOffset: end}
}

// isTagStart reports whether text begins with a tag pattern: '@' followed
// by an identifier that does not start with a digit.
func isTagStart(text string) bool {
	return len(text) >= 2 && text[0] == '@' && isIdentStart(text[1])
}

// tagIndex finds the first tag pattern in text, or -1. A tag marker counts
// only at the start of the text or after whitespace, and never inside an
// inline construct like "{@link}" or "{@code @Override}": a balanced
// "{@...}" span is skipped wholesale before the marker check. This keeps
// addresses such as "user@example.com" and inline-tag content out of the
// block-tag scanner.
func tagIndex(text string) int {
	for i := 0; i+1 < len(text); i++ {
		if text[i] == '{' && text[i+1] == '@' {
			if closePos, ok := scan.FindMatchingClose(text, i, '{', '}'); ok {
				i = closePos
				continue
			}
		}
		if text[i] != '@' || !isIdentStart(text[i+1]) {
			continue
		}
		if i > 0 {
			prev := text[i-1]
			if prev != ' ' && prev != '\t' {
				continue
			}
		}
		return i
	}
	return -1
}

// tagName splits "@name rest" at the end of the identifier. text must start
// with a tag pattern.
func tagName(text string) (name, rest string) {
	i := 1
	for i < len(text) && isIdentByte(text[i]) {
		i++
	}
	return text[1:i], text[i:]
}
