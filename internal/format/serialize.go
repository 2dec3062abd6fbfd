package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"docfmt/internal/comment"
	"docfmt/internal/parser"
	"docfmt/internal/tags"
)

// prefixOverhead is the printable width of the per-line " * " prefix.
const prefixOverhead = 3

// Serialize renders the segment sequence back to comment text: opening
// marker, one physical line per logical line with indentation and per-line
// prefixes applied, closing marker aligned under the opening one.
func Serialize(c comment.Comment, opt Options) (string, error) {
	opt = opt.withDefaults()
	if err := opt.Validate(); err != nil {
		return "", err
	}
	return render(c, opt), nil
}

// Format serializes the comment and then performs a final idempotence
// pass: the rendered text is segmented and rendered once more, so that
// formatting an already-canonical comment is byte-identical and one call
// reaches the fixed point even when content migrates between segments.
func Format(c comment.Comment, opt Options) (string, error) {
	opt = opt.withDefaults()
	if err := opt.Validate(); err != nil {
		return "", err
	}
	first := render(c, opt)
	reparsed := comment.Comment{
		Segments: parser.Segment(innerBody(first)),
		Layout:   c.Layout,
	}
	return render(reparsed, opt), nil
}

// CheckStable reports whether formatted output is a fixed point of the
// formatter. Used by tests and fmt --check diagnostics.
func CheckStable(c comment.Comment, opt Options) (bool, error) {
	first, err := Format(c, opt)
	if err != nil {
		return false, err
	}
	again := comment.Comment{
		Segments: parser.Segment(innerBody(first)),
		Layout:   c.Layout,
	}
	second, err := Format(again, opt)
	if err != nil {
		return false, err
	}
	return first == second, nil
}

func render(c comment.Comment, opt Options) string {
	contWidth := opt.PrintWidth - c.Layout.Indent - prefixOverhead

	var body []string
	var prev comment.Segment
	for _, seg := range c.Segments {
		lines := trimTrailingBlank(renderSegment(seg, contWidth, opt))
		if len(lines) == 0 {
			continue
		}
		if prev != nil && blankBetween(prev, seg, lines) {
			body = append(body, "")
		}
		body = append(body, lines...)
		prev = seg
	}

	indent := makeIndent(c.Layout.Indent, opt)
	w := NewWriter(indent, c.Layout.LinePrefix, 64+32*len(body))
	w.Open()
	for _, line := range body {
		w.BodyLine(line)
	}
	w.Close()
	return w.String()
}

func renderSegment(seg comment.Segment, contWidth int, opt Options) []string {
	switch v := seg.(type) {
	case *comment.Text:
		return renderProse(v.Content, contWidth)
	case *comment.Paragraph:
		return renderProse(v.Content, contWidth)
	case *comment.TagEntry:
		return renderTag(v, contWidth)
	case *comment.CodeBlock:
		return renderCode(v, opt)
	}
	return nil
}

func renderProse(content string, width int) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	content = canonicalizeInlineTags(content)
	if width <= 0 {
		// No printable budget left; leave the prose unwrapped.
		return []string{content}
	}
	return Wrap(content, width, width)
}

// renderTag emits the tag label and its wrapped content. The first line's
// width is shortened by the label; when even that leaves no budget, the
// wrapper is not invoked and the content stays on the label line.
func renderTag(seg *comment.TagEntry, contWidth int) []string {
	var lines []string
	if seg.PrecedingText != "" {
		lines = append(lines, renderProse(seg.PrecedingText, contWidth)...)
	}

	// Normalization is keyed on the raw spelling: a name outside the
	// canonical table keeps the case the author wrote.
	name := seg.Raw
	if name == "" {
		name = seg.Name
	}
	label := "@" + tags.Normalize(tags.CategoryBlock, name)
	if seg.Content == "" {
		return append(lines, label)
	}

	content := canonicalizeInlineTags(seg.Content)
	firstWidth := contWidth - runewidth.StringWidth(label) - 1
	if firstWidth <= 0 {
		return append(lines, label+" "+content)
	}

	wrapped := Wrap(content, firstWidth, contWidth)
	if wrapped[0] == "" {
		lines = append(lines, label)
	} else {
		lines = append(lines, label+" "+wrapped[0])
	}
	return append(lines, wrapped[1:]...)
}

// renderCode emits a code block. The snippet is delegated to the printer
// bridge; when formatting fails the raw code is kept and its layout is not
// altered.
func renderCode(seg *comment.CodeBlock, opt Options) []string {
	code := seg.RawCode
	if opt.Printer != nil {
		if sn := FormatSnippet(opt.Printer, seg.RawCode, opt); !sn.Failed {
			code = sn.Code
		}
	}
	lines := make([]string, 0, 4)
	lines = append(lines, parser.Marker)
	lines = append(lines, strings.Split(code, "\n")...)
	return append(lines, "}")
}

// blankBetween decides whether a blank marker-only line separates two
// segments. Paragraphs are blank-delimited by definition; a tag section is
// separated from preceding prose; after a code block's closing brace a
// blank survives only before a tag or a declaration-shaped line.
func blankBetween(prev, cur comment.Segment, curLines []string) bool {
	if _, ok := prev.(*comment.CodeBlock); ok {
		if tag, ok := cur.(*comment.TagEntry); ok {
			return tag.BlankBefore
		}
		return tags.StartsDeclaration(curLines[0])
	}

	switch cur.(type) {
	case *comment.Paragraph:
		return true
	case *comment.TagEntry:
		switch prev.(type) {
		case *comment.Text, *comment.Paragraph:
			return true
		}
		return false
	case *comment.Text:
		// Prose directly after a tag would be re-collected as the tag's
		// continuation; the blank keeps it a separate segment.
		_, afterTag := prev.(*comment.TagEntry)
		return afterTag
	}
	return false
}

// canonicalizeInlineTags rewrites the name of every "{@name" construct in
// prose to its canonical spelling. Unknown names pass through unchanged;
// the construct's content is never touched.
func canonicalizeInlineTags(text string) string {
	if !strings.Contains(text, "{@") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(text) {
		if text[i] == '{' && i+1 < len(text) && text[i+1] == '@' {
			j := i + 2
			for j < len(text) && isTagNameByte(text[j]) {
				j++
			}
			if j > i+2 {
				b.WriteString("{@")
				b.WriteString(tags.Normalize(tags.CategoryInline, text[i+2:j]))
				i = j
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func isTagNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func makeIndent(columns int, opt Options) string {
	if columns <= 0 {
		return ""
	}
	if opt.UseTabs && opt.TabWidth > 0 {
		return strings.Repeat("\t", columns/opt.TabWidth) +
			strings.Repeat(" ", columns%opt.TabWidth)
	}
	return strings.Repeat(" ", columns)
}

// innerBody returns the text between a rendered comment's markers, as the
// segmenter expects it.
func innerBody(text string) string {
	start := strings.Index(text, "/**")
	if start < 0 {
		return text
	}
	start += 3
	if start < len(text) && text[start] == '\n' {
		start++
	}
	end := strings.LastIndex(text, "*/")
	if end < start {
		end = len(text)
	}
	return text[start:end]
}
