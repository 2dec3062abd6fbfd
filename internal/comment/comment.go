// Package comment defines the segment model for structured doc comments:
// an ordered sequence of prose, tag, and embedded-code segments plus the
// layout metadata needed to print them back.
//
// Purpose: shared data types between the parser and the formatter.
// Does not do: parsing, wrapping, or serialization.
package comment

// Segment is one semantically distinct unit of a parsed comment. Before any
// transformation the segment spans partition the comment body: every byte
// belongs to exactly one segment.
type Segment interface {
	// Span returns the half-open byte range of the segment in the
	// original comment body.
	Span() (start, end int)
}

// Text is plain prose. The lines slice holds the prefix-stripped content
// lines for inspection; Content is the same text joined for wrapping.
type Text struct {
	Content string
	Lines   []string
	Start   int
	End     int
}

// Paragraph is a blank-line-delimited prose block. It differs from Text
// only in how surrounding blank lines are preserved on output.
type Paragraph struct {
	Content string
	Lines   []string
	Start   int
	End     int
}

// TagEntry is one canonical tag with its merged continuation content.
// Name is the lowercase identity key; Raw keeps the spelling as written so
// names outside the canonical table are never case-mangled on output.
// PrecedingText holds free text that appeared before the tag marker on the
// same source line; keeping it separate prevents duplication on output.
// BlankBefore records whether a blank filler line preceded the tag in the
// source, which the serializer's blank-line heuristics consult.
type TagEntry struct {
	Name          string // lowercase canonical key
	Raw           string // spelling as it appeared in the source
	Content       string
	PrecedingText string
	BlankBefore   bool
	Start         int
	End           int
}

// CodeBlock is an extracted embedded snippet. Start and End give its exact
// span in the comment body so it can be replaced in place.
type CodeBlock struct {
	RawCode string
	Start   int
	End     int
}

func (s *Text) Span() (int, int)      { return s.Start, s.End }
func (s *Paragraph) Span() (int, int) { return s.Start, s.End }
func (s *TagEntry) Span() (int, int)  { return s.Start, s.End }
func (s *CodeBlock) Span() (int, int) { return s.Start, s.End }

// Layout carries the placement metadata of a comment: how far the comment
// is indented and what its per-line marker looks like. Tab handling comes
// from the formatter options, not from the comment itself.
type Layout struct {
	Indent     int    // columns before the leading "/**"
	LinePrefix string // per-line marker, normally "* "
}

// Comment is an ordered sequence of segments plus layout metadata. A
// Comment is built fresh per source comment on each formatting pass.
type Comment struct {
	Segments []Segment
	Layout   Layout
}
