package driver

import (
	"reflect"
	"testing"
)

func TestFindDocComments(t *testing.T) {
	src := []byte("/** doc one */\nclass A {\n    /** doc two */\n    int x;\n}\n")
	got := FindDocComments(src)
	want := []CommentSpan{{Start: 0, End: 14}, {Start: 29, End: 43}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindDocComments = %v, want %v", got, want)
	}
	for _, span := range got {
		text := string(src[span.Start:span.End])
		if text[:3] != "/**" || text[len(text)-2:] != "*/" {
			t.Errorf("span %v does not cover a full comment: %q", span, text)
		}
	}
}

func TestFindDocCommentsSkipsNonDoc(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"plain block comment", "/* not a doc */ int x;", 0},
		{"empty block comment", "/**/ int x;", 0},
		{"line comment", "// /** not here */\nint x;", 0},
		{"string literal", "String s = \"/** nope */\";", 0},
		{"char literal", "char c = '\"'; /** yes */", 1},
		{"escaped quote", "String s = \"\\\" /** nope */\";", 0},
		{"after line comment", "// intro\n/** yes */", 1},
	}
	for _, tc := range cases {
		if got := len(FindDocComments([]byte(tc.src))); got != tc.want {
			t.Errorf("%s: found %d comments, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFindDocCommentsUnterminated(t *testing.T) {
	src := []byte("/** first */ /** never closed")
	got := FindDocComments(src)
	if len(got) != 1 {
		t.Fatalf("found %d comments, want only the terminated one", len(got))
	}
	if got[0].Start != 0 || got[0].End != 12 {
		t.Fatalf("span = %v, want 0-12", got[0])
	}
}

func TestFindDocCommentsUnterminatedLiteral(t *testing.T) {
	// A quote with no closing partner ends at its line; the comment on the
	// next line must still be found.
	src := []byte("String s = \"broken\n/** yes */")
	if got := len(FindDocComments(src)); got != 1 {
		t.Fatalf("found %d comments, want 1", got)
	}
}
