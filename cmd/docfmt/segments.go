package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docfmt/internal/driver"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments [flags] file",
	Short: "Show the segment structure of doc comments in a file",
	Long:  `Segments parses every doc comment in a file and prints how it splits into text, paragraphs, tags, and code blocks. Nothing is reformatted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSegments,
}

func init() {
	segmentsCmd.Flags().String("format", "text", "output format (text|json)")
}

func runSegments(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	reports, err := driver.Segments(args[0])
	if err != nil {
		return fmt.Errorf("segments: %w", err)
	}

	switch outputFormat {
	case "text":
		renderSegmentsText(args[0], reports)
		return nil
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reports)
	default:
		return fmt.Errorf("segments: unsupported output format %q", outputFormat)
	}
}

func renderSegmentsText(path string, reports []driver.CommentReport) {
	for _, report := range reports {
		if report.Source != "" {
			fmt.Fprintf(os.Stdout, "%s:%d:%d  %s\n", path, report.Line, report.Col, report.Source)
		} else {
			fmt.Fprintf(os.Stdout, "%s:%d:%d\n", path, report.Line, report.Col)
		}
		for _, seg := range report.Segments {
			switch seg.Kind {
			case "tag":
				fmt.Fprintf(os.Stdout, "  [%d:%d] tag @%s %s\n", seg.Start, seg.End, seg.Name, compactContent(seg.Content))
			default:
				fmt.Fprintf(os.Stdout, "  [%d:%d] %s %s\n", seg.Start, seg.End, seg.Kind, compactContent(seg.Content))
			}
		}
	}
}

// compactContent keeps the per-segment listing one line per segment.
func compactContent(content string) string {
	const limit = 60
	out := make([]rune, 0, limit)
	for _, r := range content {
		if r == '\n' {
			r = ' '
		}
		if len(out) == limit {
			return string(out) + "..."
		}
		out = append(out, r)
	}
	return string(out)
}
