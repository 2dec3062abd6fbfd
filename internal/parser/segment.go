package parser

import (
	"strings"

	"docfmt/internal/comment"
	"docfmt/internal/scan"
)

// Segment tokenizes a comment body into an ordered list of segments. The
// body is the text between the comment markers, with per-line prefixes
// still in place. Segment spans partition the body exactly; dropped filler
// lines are absorbed by the neighboring segment.
func Segment(body string) []comment.Segment {
	s := &segmenter{
		body:     body,
		consumed: NewConsumedSet(),
	}
	s.run()
	return s.segs
}

type segmenter struct {
	body        string
	consumed    *ConsumedSet
	segs        []comment.Segment
	proseBlocks int
}

func (s *segmenter) run() {
	pos := 0
	proseStart := 0
	for pos < len(s.body) {
		markerPos := IndexMarker(s.body, pos)
		if markerPos < 0 {
			break
		}
		ext, ok := ExtractCode(s.body, markerPos)
		if !ok {
			// Unbalanced or empty marker: the span stays prose, verbatim.
			pos = markerPos + len(Marker)
			continue
		}
		if !strings.Contains(s.body[markerPos:ext.End], "\n") {
			// Inline {@code ...} on a single line stays in the prose flow.
			pos = ext.End
			continue
		}
		s.prose(proseStart, markerPos)
		s.segs = append(s.segs, &comment.CodeBlock{
			RawCode: ext.Code,
			Start:   markerPos,
			End:     ext.End,
		})
		pos = ext.End
		proseStart = ext.End
	}
	s.prose(proseStart, len(s.body))

	if len(s.segs) == 0 {
		// A comment of nothing but filler lines degenerates to one empty
		// text segment so the serializer always has an element to emit.
		s.segs = []comment.Segment{&comment.Text{Start: 0, End: len(s.body)}}
		return
	}
	s.sealSpans()
}

// prose segments the region [start, end) into text, paragraph, and tag
// segments.
func (s *segmenter) prose(start, end int) {
	if start >= end {
		return
	}
	lines := SplitLines(s.body, start, end)
	var block []Line
	lastBlank := false
	i := 0
	for i < len(lines) {
		ln := lines[i]
		switch {
		case ln.Text == "":
			// The tail of the line a code block ended on is not a blank
			// line, it is just an empty remainder.
			partial := i == 0 && start > 0 && s.body[start-1] != '\n'
			s.flushBlock(block)
			block = nil
			if !partial {
				lastBlank = true
			}
			i++
		case tagIndex(ln.Text) >= 0:
			s.flushBlock(block)
			block = nil
			i = s.tagLine(lines, i, lastBlank)
			lastBlank = false
		default:
			block = append(block, ln)
			lastBlank = false
			i++
		}
	}
	s.flushBlock(block)
}

// flushBlock emits the accumulated prose lines as one segment. Lines whose
// trimmed text was already merged into a tag entry are dropped; a block
// that ends up empty produces no segment at all. The first prose block of
// a comment is a Text segment, every later one a Paragraph.
func (s *segmenter) flushBlock(block []Line) {
	if len(block) == 0 {
		return
	}
	var kept []string
	for _, ln := range block {
		if s.consumed.Contains(ln.Text) {
			continue
		}
		kept = append(kept, ln.Text)
	}
	if len(kept) == 0 {
		return
	}
	content := strings.Join(kept, " ")
	start := block[0].Start
	end := block[len(block)-1].End
	if s.proseBlocks == 0 {
		s.segs = append(s.segs, &comment.Text{Content: content, Lines: kept, Start: start, End: end})
	} else {
		s.segs = append(s.segs, &comment.Paragraph{Content: content, Lines: kept, Start: start, End: end})
	}
	s.proseBlocks++
}

// tagLine consumes one line holding one or more tags, plus any continuation
// lines belonging to the line's last tag. Returns the index of the next
// unprocessed line.
func (s *segmenter) tagLine(lines []Line, i int, blankBefore bool) int {
	ln := lines[i]
	at := tagIndex(ln.Text)

	preceding := strings.TrimSpace(ln.Text[:at])
	if preceding != "" && containsTagPattern(preceding) {
		// A tag fragment inside the preceding text means we are looking at
		// another tag's trailing content; drop it rather than misattribute
		// it to this entry.
		preceding = ""
	}

	segStart := ln.Start
	rest := ln.Text[at:]
	for {
		raw, after := tagName(rest)
		key := strings.ToLower(raw)
		next := tagIndex(after)
		if next >= 0 {
			// Another tag on the same line: this entry ends right before it.
			entryEnd := ln.TextOff + len(ln.Text) - len(after) + next
			s.segs = append(s.segs, &comment.TagEntry{
				Name:          key,
				Raw:           raw,
				Content:       strings.TrimSpace(after[:next]),
				PrecedingText: preceding,
				BlankBefore:   blankBefore,
				Start:         segStart,
				End:           entryEnd,
			})
			preceding = ""
			blankBefore = false
			segStart = entryEnd
			rest = after[next:]
			continue
		}

		col := CollectContinuation(strings.TrimSpace(after), lines, i+1, s.consumed)
		entryEnd := ln.End
		if col.EndOffset >= 0 {
			entryEnd = col.EndOffset
		}
		s.segs = append(s.segs, &comment.TagEntry{
			Name:          key,
			Raw:           raw,
			Content:       col.Content,
			PrecedingText: preceding,
			BlankBefore:   blankBefore,
			Start:         segStart,
			End:           entryEnd,
		})
		return col.NextLine
	}
}

// sealSpans stretches segment spans over dropped filler lines so the spans
// partition the body with no gaps and no overlaps.
func (s *segmenter) sealSpans() {
	prev := 0
	for idx, seg := range s.segs {
		start, end := seg.Span()
		start = prev
		if end < start {
			end = start
		}
		if idx == len(s.segs)-1 {
			end = len(s.body)
		}
		setSpan(seg, start, end)
		prev = end
	}
}

func setSpan(seg comment.Segment, start, end int) {
	switch v := seg.(type) {
	case *comment.Text:
		v.Start, v.End = start, end
	case *comment.Paragraph:
		v.Start, v.End = start, end
	case *comment.TagEntry:
		v.Start, v.End = start, end
	case *comment.CodeBlock:
		v.Start, v.End = start, end
	}
}

// containsTagPattern reports whether text holds a block-tag pattern
// anywhere, including mid-word positions the line scanner would skip.
// Balanced inline "{@...}" constructs do not count, content included.
func containsTagPattern(text string) bool {
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
		if i > 0 && text[i-1] == '{' {
			continue
		}
		return true
	}
	return false
}
