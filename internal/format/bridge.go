package format

import (
	"strings"

	"docfmt/internal/printer"
	"docfmt/internal/scan"
)

// SnippetShape classifies an embedded code sample once, up front: a bare
// annotation (starts with the tag-marker character) needs a different
// syntactic container than an executable statement body.
type SnippetShape uint8

const (
	ShapeStatement SnippetShape = iota
	ShapeAnnotation
)

// ShapeOf decides the wrapping shape for a raw snippet.
func ShapeOf(raw string) SnippetShape {
	if strings.HasPrefix(strings.TrimSpace(raw), "@") {
		return ShapeAnnotation
	}
	return ShapeStatement
}

// Snippet is the outcome of formatting one code sample. Failed
// distinguishes "unchanged because formatting failed" from "unchanged
// because already correct"; callers must not alter block layout when the
// printer gave up.
type Snippet struct {
	Code   string
	Failed bool
}

const (
	statementHeader  = "class Snippet {\nvoid sample() {\n"
	statementFooter  = "\n}\n}"
	annotationFooter = "\nclass Snippet {\n}"
	containerName    = "class Snippet"
)

// FormatSnippet delegates a code sample to the printer collaborator.
// Snippets are not complete compilable units, so the sample is wrapped in a
// minimal declaration skeleton first and unwrapped afterwards. Any printer
// failure falls back to the raw snippet, tagged as failed.
func FormatSnippet(p printer.Printer, raw string, opt Options) Snippet {
	if p == nil {
		return Snippet{Code: raw, Failed: true}
	}
	opt = opt.withDefaults()

	shape := ShapeOf(raw)
	var wrapped string
	switch shape {
	case ShapeAnnotation:
		wrapped = raw + annotationFooter
	default:
		wrapped = statementHeader + raw + statementFooter
	}

	formatted, err := p.Format(wrapped, printer.Options{
		IndentWidth: opt.TabWidth,
		UseTabs:     opt.UseTabs,
	})
	if err != nil {
		return Snippet{Code: raw, Failed: true}
	}

	inner, ok := unwrap(formatted, shape)
	if !ok {
		return Snippet{Code: raw, Failed: true}
	}
	return Snippet{Code: inner}
}

// unwrap removes the container from the printed text, leaving only the
// snippet with its relative indentation. The statement shape locates the
// sample body with the same brace counting the extractor uses, so a
// snippet that itself contains braces is cut at the matching close, not at
// the first one.
func unwrap(formatted string, shape SnippetShape) (string, bool) {
	switch shape {
	case ShapeAnnotation:
		idx := strings.LastIndex(formatted, containerName)
		if idx < 0 {
			return "", false
		}
		return reindent(formatted[:idx]), true
	default:
		classOpen := strings.IndexByte(formatted, '{')
		if classOpen < 0 {
			return "", false
		}
		rel := strings.IndexByte(formatted[classOpen+1:], '{')
		if rel < 0 {
			return "", false
		}
		methodOpen := classOpen + 1 + rel
		closePos, ok := scan.FindMatchingClose(formatted, methodOpen, '{', '}')
		if !ok {
			return "", false
		}
		return reindent(formatted[methodOpen+1 : closePos]), true
	}
}

// reindent recomputes each line's indentation relative to the container:
// the common leading whitespace is stripped so the snippet starts at column
// zero while deeper nesting keeps its offset.
func reindent(body string) string {
	lines := strings.Split(body, "\n")

	// Drop blank boundary lines introduced by the container.
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := 0
		for lead < len(line) && (line[lead] == ' ' || line[lead] == '\t') {
			lead++
		}
		if common < 0 || lead < common {
			common = lead
		}
	}
	if common <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
