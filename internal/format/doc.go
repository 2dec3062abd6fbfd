// Package format renders parsed comment segments back into canonical
// comment text: width-aware wrapping of prose and tag content, snippet
// formatting through the printer bridge, and serialization with stable
// indentation and blank-line placement.
//
// Purpose: the re-serialization half of the comment pipeline.
// Does not do: file IO (internal/driver) or comment discovery.
// Dependencies: internal/comment, internal/parser (for the idempotence
// pass), internal/tags, internal/printer.
package format
