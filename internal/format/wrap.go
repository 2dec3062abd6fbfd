package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap greedily packs the words of text into lines, honoring a possibly
// shorter width for the first line (tag label overhead). Words are measured
// in printable columns and never split: a single word wider than its line's
// width occupies the line alone. A balanced inline "{@...}" construct is a
// single word even when it contains spaces; splitting it across lines would
// turn it into a display block on the next pass. When the first line cannot
// take even one word, it is emitted empty and the word opens the
// continuation flow. All-whitespace input is returned unchanged as a single
// line.
func Wrap(text string, firstWidth, contWidth int) []string {
	words := splitWords(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	cur := ""
	curWidth := 0
	first := true
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		for {
			limit := contWidth
			if first {
				limit = firstWidth
			}
			if cur == "" {
				if wordWidth <= limit || !first {
					cur, curWidth = word, wordWidth
					break
				}
				lines = append(lines, "")
				first = false
				continue
			}
			if curWidth+1+wordWidth <= limit {
				cur += " " + word
				curWidth += 1 + wordWidth
				break
			}
			lines = append(lines, cur)
			cur, curWidth = "", 0
			first = false
		}
	}
	return append(lines, cur)
}

// splitWords splits text on whitespace runs, rejoining the fields of an
// inline "{@...}" construct into one token until its braces balance. An
// unbalanced construct swallows the rest of the text; the caller's layout
// for it is preserved verbatim anyway.
func splitWords(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		word := fields[i]
		if idx := strings.Index(word, "{@"); idx >= 0 {
			depth := braceDelta(word[idx:])
			for depth > 0 && i+1 < len(fields) {
				i++
				word += " " + fields[i]
				depth += braceDelta(fields[i])
			}
		}
		words = append(words, word)
	}
	return words
}

func braceDelta(s string) int {
	delta := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}
