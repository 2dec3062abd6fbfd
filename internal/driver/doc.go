// Package driver orchestrates formatting at the file level: collecting
// source files, locating doc comments in them, running the comment pipeline
// per comment, and splicing the results back in reverse source order so
// earlier offsets stay valid.
//
// Purpose: everything between the CLI and the pure comment pipeline.
// Does not do: segmentation or serialization rules; those live in
// internal/parser and internal/format.
package driver
