package driver

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"docfmt/internal/comment"
	"docfmt/internal/parser"
	"docfmt/internal/source"
)

// SegmentInfo is one segment of a parsed comment, flattened for display.
type SegmentInfo struct {
	Kind    string `json:"kind"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// CommentReport describes one doc comment of a file and its segments.
// Source holds the comment's opening line as written, for display.
type CommentReport struct {
	Line     uint32        `json:"line"`
	Col      uint32        `json:"col"`
	Source   string        `json:"source,omitempty"`
	Segments []SegmentInfo `json:"segments"`
}

// Segments parses every doc comment in a file and reports its segment
// structure. This is a debugging surface; nothing is reformatted.
func Segments(path string) ([]CommentReport, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	file, ok := fileSet.GetByPath(path)
	if !ok {
		return nil, fmt.Errorf("segments: %s not in file set", path)
	}
	content := file.Content

	var reports []CommentReport
	for _, span := range FindDocComments(content) {
		start, err := safecast.Conv[uint32](span.Start)
		if err != nil {
			return nil, fmt.Errorf("segments: comment offset overflow: %w", err)
		}
		end, err := safecast.Conv[uint32](span.End)
		if err != nil {
			return nil, fmt.Errorf("segments: comment offset overflow: %w", err)
		}
		pos, _ := fileSet.Resolve(source.Span{File: id, Start: start, End: end})

		body := norm.NFC.String(string(content[span.Start+3 : span.End-2]))
		report := CommentReport{
			Line:   pos.Line,
			Col:    pos.Col,
			Source: strings.TrimSpace(file.GetLine(pos.Line)),
		}
		for _, seg := range parser.Segment(body) {
			report.Segments = append(report.Segments, describeSegment(seg))
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func describeSegment(seg comment.Segment) SegmentInfo {
	start, end := seg.Span()
	info := SegmentInfo{Start: start, End: end}
	switch v := seg.(type) {
	case *comment.Text:
		info.Kind = "text"
		info.Content = v.Content
	case *comment.Paragraph:
		info.Kind = "paragraph"
		info.Content = v.Content
	case *comment.TagEntry:
		info.Kind = "tag"
		info.Name = v.Name
		info.Content = v.Content
	case *comment.CodeBlock:
		info.Kind = "code"
		info.Content = v.RawCode
	}
	return info
}
