// Package parser turns a normalized doc-comment body into an ordered list
// of segments: prose, paragraphs, tag entries, and embedded code blocks.
//
// Purpose: the comment-segmentation half of the formatting pipeline.
// Does not do: wrapping, serialization, or snippet printing.
// Dependencies: internal/scan, internal/comment.
package parser
