package scan

import "testing"

func TestSkipWhitespace(t *testing.T) {
	cases := []struct {
		text   string
		pos    int
		want   int
		wantOK bool
	}{
		{"  x", 0, 2, true},
		{"x", 0, 0, true},
		{"\t\n\r y", 0, 4, true},
		{"   ", 0, 0, false},
		{"x", 5, 0, false},
		{"x", -1, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := SkipWhitespace(tc.text, tc.pos)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("SkipWhitespace(%q, %d) = (%d, %v), want (%d, %v)",
				tc.text, tc.pos, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestFindMatchingClose(t *testing.T) {
	cases := []struct {
		text   string
		pos    int
		want   int
		wantOK bool
	}{
		{"{}", 0, 1, true},
		{"{a{b}c}", 0, 6, true},
		{"{a{b}c}", 2, 4, true},
		{"{unterminated", 0, 0, false},
		{"{{}", 0, 0, false},
		{"x{}", 0, 0, false}, // openPos does not hold '{'
		{"{}", 9, 0, false},
		{"{}", -1, 0, false},
	}
	for _, tc := range cases {
		got, ok := FindMatchingClose(tc.text, tc.pos, '{', '}')
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("FindMatchingClose(%q, %d) = (%d, %v), want (%d, %v)",
				tc.text, tc.pos, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestLineStart(t *testing.T) {
	text := "ab\ncd\n"
	cases := []struct {
		pos    int
		want   int
		wantOK bool
	}{
		{0, 0, true},
		{1, 0, true},
		{3, 3, true},
		{4, 3, true},
		{6, 6, true}, // position at end of text refers to the final line
		{7, 0, false},
		{-1, 0, false},
	}
	for _, tc := range cases {
		got, ok := LineStart(text, tc.pos)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("LineStart(%d) = (%d, %v), want (%d, %v)", tc.pos, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestCountNewlinesBefore(t *testing.T) {
	cases := []struct {
		text string
		pos  int
		want int
	}{
		{"a\n\nb", 3, 2},
		{"a\nb", 2, 1},
		{"ab", 1, 0},
		{"a \n \n b", 6, 2},
		{"x", -1, 0},
		{"a\n\n", 99, 2}, // out-of-range pos clamps to end
	}
	for _, tc := range cases {
		if got := CountNewlinesBefore(tc.text, tc.pos); got != tc.want {
			t.Fatalf("CountNewlinesBefore(%q, %d) = %d, want %d", tc.text, tc.pos, got, tc.want)
		}
	}
}
