package format

import (
	"errors"

	"docfmt/internal/printer"
)

// ErrMissingWidth is returned when no print width is configured. Guessing a
// width would silently produce wrong layouts, so this is a hard error.
var ErrMissingWidth = errors.New("format: print width is not configured")

// Options configures comment formatting.
type Options struct {
	// PrintWidth bounds the total line width, comment prefix included.
	// Required.
	PrintWidth int
	// TabWidth converts tab characters to columns for indentation math.
	TabWidth int
	// UseTabs selects tab characters for generated indentation; the
	// default is TabWidth-wide space runs.
	UseTabs bool
	// Printer formats embedded code samples. When nil, code blocks are
	// emitted as they were written.
	Printer printer.Printer
}

func (o Options) withDefaults() Options {
	if o.TabWidth == 0 {
		o.TabWidth = 4
	}
	return o
}

// Validate reports configuration errors. Width problems are never papered
// over with defaults.
func (o Options) Validate() error {
	if o.PrintWidth <= 0 {
		return ErrMissingWidth
	}
	return nil
}
