package parser

import (
	"testing"

	"docfmt/internal/comment"
	"docfmt/internal/testkit"
)

func checkInvariants(t *testing.T, body string, segs []comment.Segment) {
	t.Helper()
	if err := testkit.CheckSegmentPartition(segs, body); err != nil {
		t.Errorf("partition: %v", err)
	}
	if err := testkit.CheckNoDuplication(segs); err != nil {
		t.Errorf("duplication: %v", err)
	}
}

func TestSegmentTagContinuation(t *testing.T) {
	body := "\n * Does the thing.\n *\n * @param input the input value,\n *        spanning two lines\n * @return the result\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}

	text, ok := segs[0].(*comment.Text)
	if !ok || text.Content != "Does the thing." {
		t.Fatalf("segment 0 = %#v, want text %q", segs[0], "Does the thing.")
	}

	param, ok := segs[1].(*comment.TagEntry)
	if !ok {
		t.Fatalf("segment 1 = %#v, want tag entry", segs[1])
	}
	if param.Name != "param" {
		t.Errorf("tag name = %q, want param", param.Name)
	}
	wantContent := "input the input value, spanning two lines"
	if param.Content != wantContent {
		t.Errorf("tag content = %q, want %q", param.Content, wantContent)
	}
	if !param.BlankBefore {
		t.Error("param entry should record the preceding blank line")
	}

	ret, ok := segs[2].(*comment.TagEntry)
	if !ok || ret.Name != "return" || ret.Content != "the result" {
		t.Fatalf("segment 2 = %#v, want @return entry", segs[2])
	}
	if ret.BlankBefore {
		t.Error("return entry should not record a blank line")
	}
}

func TestSegmentUnbalancedCodeStaysProse(t *testing.T) {
	body := "\n * See {@code broken { sample\n * and more text.\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	text, ok := segs[0].(*comment.Text)
	if !ok {
		t.Fatalf("segment = %#v, want text", segs[0])
	}
	want := "See {@code broken { sample and more text."
	if text.Content != want {
		t.Errorf("content = %q, want %q", text.Content, want)
	}
}

func TestSegmentFillerOnly(t *testing.T) {
	body := "\n *\n *\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	text, ok := segs[0].(*comment.Text)
	if !ok || text.Content != "" {
		t.Fatalf("segment = %#v, want single empty text", segs[0])
	}
}

func TestSegmentMultiLineCodeBlock(t *testing.T) {
	body := "\n * Example:\n * {@code\n * int x = 1;\n * }\n * After text.\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if text, ok := segs[0].(*comment.Text); !ok || text.Content != "Example:" {
		t.Fatalf("segment 0 = %#v, want text %q", segs[0], "Example:")
	}
	code, ok := segs[1].(*comment.CodeBlock)
	if !ok {
		t.Fatalf("segment 1 = %#v, want code block", segs[1])
	}
	if code.RawCode != "int x = 1;" {
		t.Errorf("raw code = %q, want %q", code.RawCode, "int x = 1;")
	}
	if para, ok := segs[2].(*comment.Paragraph); !ok || para.Content != "After text." {
		t.Fatalf("segment 2 = %#v, want paragraph %q", segs[2], "After text.")
	}
}

func TestSegmentInlineCodeStaysProse(t *testing.T) {
	body := "\n * Returns {@code foo} when empty.\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	text, ok := segs[0].(*comment.Text)
	if !ok || text.Content != "Returns {@code foo} when empty." {
		t.Fatalf("segment = %#v, want inline code kept in prose", segs[0])
	}
}

func TestSegmentMultipleTagsOneLine(t *testing.T) {
	body := "\n * @see Foo @see Bar\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	first, ok := segs[0].(*comment.TagEntry)
	if !ok || first.Name != "see" || first.Content != "Foo" {
		t.Fatalf("segment 0 = %#v, want @see Foo", segs[0])
	}
	second, ok := segs[1].(*comment.TagEntry)
	if !ok || second.Name != "see" || second.Content != "Bar" {
		t.Fatalf("segment 1 = %#v, want @see Bar", segs[1])
	}
}

func TestSegmentPrecedingText(t *testing.T) {
	body := "\n * Mutable state here. @deprecated use the builder\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	tag, ok := segs[0].(*comment.TagEntry)
	if !ok || tag.Name != "deprecated" {
		t.Fatalf("segment = %#v, want @deprecated entry", segs[0])
	}
	if tag.PrecedingText != "Mutable state here." {
		t.Errorf("preceding text = %q, want %q", tag.PrecedingText, "Mutable state here.")
	}
	if tag.Content != "use the builder" {
		t.Errorf("content = %q, want %q", tag.Content, "use the builder")
	}
}

func TestSegmentPrecedingTextWithTagFragmentDropped(t *testing.T) {
	body := "\n * sent to admin@example.org first @return confirmation id\n "
	segs := Segment(body)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	tag, ok := segs[0].(*comment.TagEntry)
	if !ok || tag.Name != "return" {
		t.Fatalf("segment = %#v, want @return entry", segs[0])
	}
	if tag.PrecedingText != "" {
		t.Errorf("preceding text = %q, want it dropped", tag.PrecedingText)
	}
}

func TestSegmentTagNameLowercased(t *testing.T) {
	body := "\n * @Param value the value\n "
	segs := Segment(body)
	tag, ok := segs[0].(*comment.TagEntry)
	if !ok || tag.Name != "param" {
		t.Fatalf("segment = %#v, want lowercased param entry", segs[0])
	}
	if tag.Raw != "Param" {
		t.Errorf("raw spelling = %q, want %q", tag.Raw, "Param")
	}
}

func TestSegmentKeepsRawTagSpelling(t *testing.T) {
	body := "\n * @apiNote callers must close the stream\n "
	segs := Segment(body)
	tag, ok := segs[0].(*comment.TagEntry)
	if !ok {
		t.Fatalf("segment = %#v, want tag entry", segs[0])
	}
	if tag.Name != "apinote" {
		t.Errorf("identity key = %q, want %q", tag.Name, "apinote")
	}
	if tag.Raw != "apiNote" {
		t.Errorf("raw spelling = %q, want %q", tag.Raw, "apiNote")
	}
}

func TestSegmentInlineCodeWithAnnotationStaysProse(t *testing.T) {
	body := "\n * Use {@code @Override} on subclasses.\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	text, ok := segs[0].(*comment.Text)
	if !ok {
		t.Fatalf("segment = %#v, want text", segs[0])
	}
	if text.Content != "Use {@code @Override} on subclasses." {
		t.Errorf("content = %q, want the line intact", text.Content)
	}
}

func TestSegmentContinuationStopsAtCodeMarker(t *testing.T) {
	body := "\n * @param x the value\n * {@code\n * use(x);\n * }\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	tag, ok := segs[0].(*comment.TagEntry)
	if !ok || tag.Content != "x the value" {
		t.Fatalf("segment 0 = %#v, want param entry with no code merged", segs[0])
	}
	if _, ok := segs[1].(*comment.CodeBlock); !ok {
		t.Fatalf("segment 1 = %#v, want code block", segs[1])
	}
}

func TestSegmentParagraphAfterBlank(t *testing.T) {
	body := "\n * First block of prose.\n *\n * Second block of prose.\n "
	segs := Segment(body)
	checkInvariants(t, body, segs)

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if _, ok := segs[0].(*comment.Text); !ok {
		t.Fatalf("segment 0 = %#v, want text", segs[0])
	}
	if _, ok := segs[1].(*comment.Paragraph); !ok {
		t.Fatalf("segment 1 = %#v, want paragraph", segs[1])
	}
}

func TestTagIndex(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"@param x", 0},
		{"see @return y", 4},
		{"user@example.com only", -1},
		{"inline {@link Foo} only", -1},
		{"use {@code @Override} here", -1},
		{"{@code @Override} then @return x", 23},
		{"@1digit", -1},
		{"", -1},
	}
	for _, tc := range cases {
		if got := tagIndex(tc.text); got != tc.want {
			t.Errorf("tagIndex(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestCollectContinuation(t *testing.T) {
	body := "first extra\nsecond extra\n\nnot merged"
	lines := SplitLines(body, 0, len(body))
	consumed := NewConsumedSet()
	col := CollectContinuation("start", lines, 0, consumed)

	if col.Content != "start first extra second extra" {
		t.Errorf("content = %q", col.Content)
	}
	if col.NextLine != 2 {
		t.Errorf("next line = %d, want 2", col.NextLine)
	}
	if !consumed.Contains("first extra") || !consumed.Contains("second extra") {
		t.Error("consumed lines were not recorded")
	}
	if consumed.Contains("not merged") {
		t.Error("line past the blank was recorded")
	}
}
