package driver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"docfmt/internal/comment"
	"docfmt/internal/format"
	"docfmt/internal/observ"
	"docfmt/internal/parser"
	"docfmt/internal/printer"
	"docfmt/internal/source"
)

// FormatOptions configures doc-comment formatting over files.
type FormatOptions struct {
	Check      bool
	Stdout     bool
	Jobs       int
	Extensions []string // file extensions to collect, default ".java"
	Options    format.Options
	Cache      *SnippetCache
	Timer      *observ.Timer
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Comments  int
	Err       error
	Formatted []byte
}

// FormatPaths formats doc comments in the provided files or directories
// (recursively collecting files by extension). When opts.Check is true,
// files are not modified; Changed indicates whether formatting would update
// the file. When opts.Stdout is true, formatted content is returned in the
// results without touching files on disk. Files are processed in parallel;
// a complete file is always written in one piece or not at all.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Options.Validate(); err != nil {
		return nil, err
	}

	collect := opts.Timer.Begin("collect")
	files, err := collectSourceFiles(ctx, paths, opts.extensions())
	opts.Timer.End(collect, "")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	run := opts.Timer.Begin("format")
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatSingleFile(path, opts)
			return nil
		})
	}
	err = g.Wait()
	opts.Timer.End(run, "")
	if err != nil {
		return results, err
	}

	if opts.Check || opts.Stdout {
		return results, nil
	}

	write := opts.Timer.Begin("write")
	defer opts.Timer.End(write, "")
	for i := range results {
		res := &results[i]
		if res.Err != nil || !res.Changed {
			continue
		}
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(res.Path); statErr == nil {
			mode = info.Mode()
		}
		if writeErr := os.WriteFile(res.Path, res.Formatted, mode.Perm()); writeErr != nil {
			res.Err = writeErr
		}
	}
	return results, nil
}

func (o FormatOptions) extensions() []string {
	if len(o.Extensions) == 0 {
		return []string{".java"}
	}
	return o.Extensions
}

func (o FormatOptions) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.NumCPU()
}

// printerFor wires the snippet cache in front of the configured printer.
func (o FormatOptions) printerFor() printer.Printer {
	p := o.Options.Printer
	if p == nil || o.Cache == nil {
		return p
	}
	return CachingPrinter{Printer: p, Cache: o.Cache}
}

// FormatVirtual formats in-memory content under a display name, as used
// for stdin input. Nothing touches disk; the result's Formatted field
// always carries the rendered output.
func FormatVirtual(name string, content []byte, opts FormatOptions) FormatResult {
	res := FormatResult{Path: name}
	if err := opts.Options.Validate(); err != nil {
		res.Err = err
		return res
	}

	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	data := fileSet.Get(id).Content

	formatted, comments, err := FormatContent(data, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Comments = comments
	res.Formatted = formatted
	res.Changed = !bytes.Equal(data, formatted)
	return res
}

func formatSingleFile(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	content := fileSet.Get(id).Content

	formatted, comments, err := FormatContent(content, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Comments = comments
	res.Formatted = formatted
	res.Changed = !bytes.Equal(content, formatted)
	return res
}

// edit is one pending replacement of a comment span.
type edit struct {
	span CommentSpan
	text []byte
}

// FormatContent reformats every doc comment in content. Replacements are
// collected first and applied sorted by descending start offset, so the
// offsets of not-yet-applied earlier edits stay valid.
func FormatContent(content []byte, opts FormatOptions) ([]byte, int, error) {
	fopt := opts.Options
	fopt.Printer = opts.printerFor()

	spans := FindDocComments(content)
	edits := make([]edit, 0, len(spans))
	for _, span := range spans {
		text, err := formatComment(content, span, fopt)
		if err != nil {
			return nil, 0, err
		}
		edits = append(edits, edit{span: span, text: text})
	}

	out := append([]byte(nil), content...)
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].span.Start > edits[j].span.Start
	})
	for _, e := range edits {
		if e.span.Start < 0 || e.span.End > len(out) || e.span.Start >= e.span.End {
			continue
		}
		out = append(out[:e.span.Start], append(e.text, out[e.span.End:]...)...)
	}
	return out, len(spans), nil
}

// formatComment runs the comment pipeline on one "/** ... */" span and
// returns its replacement text, starting at the "/**" marker.
func formatComment(content []byte, span CommentSpan, opt format.Options) ([]byte, error) {
	body := string(content[span.Start+3 : span.End-2])
	// NFC keeps the width math stable regardless of how the input encoded
	// its combining characters.
	body = norm.NFC.String(body)

	c := comment.Comment{
		Segments: parser.Segment(body),
		Layout: comment.Layout{
			Indent:     indentColumns(content, span.Start, opt.TabWidth),
			LinePrefix: "* ",
		},
	}
	text, err := format.Format(c, opt)
	if err != nil {
		return nil, err
	}
	// The span starts at "/**"; the rendered leading indent stays in the
	// file as the original bytes before the marker.
	if idx := strings.Index(text, "/**"); idx > 0 {
		text = text[idx:]
	}
	return []byte(text), nil
}

// indentColumns measures the column of the comment opener, expanding tabs.
func indentColumns(content []byte, start int, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	lineStart := start
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	col := 0
	for i := lineStart; i < start; i++ {
		if content[i] == '\t' {
			col = (col/tabWidth + 1) * tabWidth
		} else {
			col++
		}
	}
	return col
}

// collectSourceFiles expands paths into a sorted, deduplicated list of
// source files with matching extensions.
func collectSourceFiles(ctx context.Context, paths []string, exts []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if d.IsDir() {
				return nil
			}
			for _, ext := range exts {
				if strings.HasSuffix(p, ext) {
					add(p)
					break
				}
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	sort.Strings(files)
	return files, nil
}
