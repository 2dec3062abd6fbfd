// Package printer is the code-printer collaborator consumed by the comment
// formatter's snippet bridge. The bridge treats it as a black box: given a
// source fragment it either returns laid-out text or an error.
//
// Purpose: snippet layout behind a narrow interface.
// Does not do: comment handling; the bridge owns wrapping and unwrapping.
package printer

import (
	"errors"
	"strings"
)

// Options controls how a printer lays out code.
type Options struct {
	IndentWidth int
	UseTabs     bool
}

// Printer renders a source fragment into laid-out text. Implementations
// must return an error rather than partial output when the fragment cannot
// be handled.
type Printer interface {
	Format(src string, opt Options) (string, error)
}

// ErrUnbalanced is returned when a fragment's braces never balance.
var ErrUnbalanced = errors.New("printer: unbalanced braces")

// BracePrinter reflows indentation from brace structure alone. It is
// deliberately conservative: lines are trimmed and re-indented by their
// brace depth, string and character literals and line comments are skipped
// during brace counting, and nothing else is touched.
type BracePrinter struct{}

func (BracePrinter) Format(src string, opt Options) (string, error) {
	if opt.IndentWidth <= 0 {
		opt.IndentWidth = 4
	}
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	depth := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		opens, closes, lead := countBraces(trimmed)
		indent := depth - lead
		if indent < 0 {
			return "", ErrUnbalanced
		}
		out = append(out, indentString(indent, opt)+trimmed)
		depth += opens - closes
		if depth < 0 {
			return "", ErrUnbalanced
		}
	}
	if depth != 0 {
		return "", ErrUnbalanced
	}
	return strings.Join(out, "\n"), nil
}

// countBraces counts braces outside literals and line comments. lead is the
// number of closing braces before any other content on the line.
func countBraces(line string) (opens, closes, lead int) {
	inLead := true
	for i := 0; i < len(line); i++ {
		switch b := line[i]; b {
		case '{':
			opens++
			inLead = false
		case '}':
			closes++
			if inLead {
				lead++
			}
		case '"', '\'':
			i = skipLiteral(line, i)
			inLead = false
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return opens, closes, lead
			}
			inLead = false
		default:
			if b != ' ' && b != '\t' {
				inLead = false
			}
		}
	}
	return opens, closes, lead
}

// skipLiteral returns the index of the closing quote, honoring backslash
// escapes, or the last index when the literal is unterminated.
func skipLiteral(line string, start int) int {
	quote := line[start]
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(line) - 1
}

func indentString(level int, opt Options) string {
	if opt.UseTabs {
		return strings.Repeat("\t", level)
	}
	return strings.Repeat(" ", level*opt.IndentWidth)
}
