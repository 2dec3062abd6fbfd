package format

import "testing"

func TestWriterAssembly(t *testing.T) {
	w := NewWriter("  ", "* ", 0)
	w.Open()
	w.BodyLine("First line.")
	w.BodyLine("")
	w.BodyLine("@return value")
	w.Close()

	want := "  /**\n   * First line.\n   *\n   * @return value\n  */"
	if got := w.String(); got != want {
		t.Fatalf("writer output = %q, want %q", got, want)
	}
}

func TestWriterMarkerPassthrough(t *testing.T) {
	w := NewWriter("", "", 0)
	w.Open()
	w.BodyLine("* already prefixed")
	w.BodyLine("*bold* emphasis")
	w.Close()

	want := "/**\n * already prefixed\n * *bold* emphasis\n */"
	if got := w.String(); got != want {
		t.Fatalf("writer output = %q, want %q", got, want)
	}
}
