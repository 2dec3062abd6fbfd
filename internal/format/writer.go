package format

import "strings"

// Writer accumulates serialized comment output: the opening marker, one
// physical line per logical body line with the per-line prefix applied, and
// the closing marker aligned under the opening one.
type Writer struct {
	buf    []byte
	indent string
	prefix string
}

// NewWriter creates a writer emitting at the given indentation string with
// the given per-line marker. An empty prefix selects the standard "* ".
func NewWriter(indent, prefix string, sizeHint int) *Writer {
	if prefix == "" {
		prefix = "* "
	}
	return &Writer{
		buf:    make([]byte, 0, sizeHint),
		indent: indent,
		prefix: prefix,
	}
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return string(w.buf)
}

// Open emits the opening comment marker on its own line.
func (w *Writer) Open() {
	w.buf = append(w.buf, w.indent...)
	w.buf = append(w.buf, "/**\n"...)
}

// BodyLine emits one body line with the per-line marker. Blank lines become
// marker-only lines. A line that already carries its own marker is passed
// through without being prefixed again.
func (w *Writer) BodyLine(line string) {
	w.buf = append(w.buf, w.indent...)
	switch {
	case line == "":
		w.buf = append(w.buf, ' ')
		w.buf = append(w.buf, strings.TrimRight(w.prefix, " \t")...)
	case carriesMarker(line):
		w.buf = append(w.buf, ' ')
		w.buf = append(w.buf, line...)
	default:
		w.buf = append(w.buf, ' ')
		w.buf = append(w.buf, w.prefix...)
		w.buf = append(w.buf, line...)
	}
	w.buf = append(w.buf, '\n')
}

// Close emits the closing marker, prefixed with the base indentation only.
func (w *Writer) Close() {
	w.buf = append(w.buf, w.indent...)
	w.buf = append(w.buf, " */"...)
}

// carriesMarker reports whether a line unambiguously starts with the
// per-line marker already. Content that merely begins with an asterisk
// ("*bold*") does not count.
func carriesMarker(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return trimmed == "*" || strings.HasPrefix(trimmed, "* ")
}
