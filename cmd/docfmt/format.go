package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docfmt/internal/driver"
	"docfmt/internal/format"
	"docfmt/internal/observ"
	"docfmt/internal/printer"
	"docfmt/internal/project"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format doc comments in source files",
	Long:  `Fmt rewrites doc comments in the given files and directories. A single "-" formats standard input to standard output.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted content to stdout instead of rewriting files")
	fmtCmd.Flags().Int("print-width", 80, "target line width, comment prefix included")
	fmtCmd.Flags().Int("tab-width", 4, "columns per tab character")
	fmtCmd.Flags().Bool("use-tabs", false, "indent with tabs instead of spaces")
	fmtCmd.Flags().Bool("no-snippets", false, "leave embedded code samples untouched")
	fmtCmd.Flags().Bool("no-cache", false, "disable the snippet cache")
	fmtCmd.Flags().Int("jobs", 0, "number of files formatted in parallel (0 = number of CPUs)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	opts, err := resolveFormatOptions(cmd)
	if err != nil {
		return err
	}
	opts.Check = check
	opts.Stdout = writeToStdout

	if len(args) == 1 && args[0] == "-" {
		return runFmtStdin(opts, check)
	}

	var timer *observ.Timer
	if timings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	formatResults, err := driver.FormatPaths(cmd.Context(), args, opts)
	if err != nil {
		return err
	}
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(formatResults, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(formatResults, check, quiet, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(formatResults, check); err != nil {
			return err
		}
		for _, res := range formatResults {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// resolveFormatOptions layers flag values over the nearest docfmt.toml.
// An explicitly set flag wins; otherwise the manifest value applies when
// present, and the flag default covers the rest.
func resolveFormatOptions(cmd *cobra.Command) (driver.FormatOptions, error) {
	var opts driver.FormatOptions

	printWidth, err := cmd.Flags().GetInt("print-width")
	if err != nil {
		return opts, err
	}
	tabWidth, err := cmd.Flags().GetInt("tab-width")
	if err != nil {
		return opts, err
	}
	useTabs, err := cmd.Flags().GetBool("use-tabs")
	if err != nil {
		return opts, err
	}
	noSnippets, err := cmd.Flags().GetBool("no-snippets")
	if err != nil {
		return opts, err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return opts, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return opts, err
	}

	if manifest, ok, err := project.Discover("."); err != nil {
		return opts, err
	} else if ok {
		fc := manifest.Config.Format
		if fc.PrintWidth > 0 && !cmd.Flags().Changed("print-width") {
			printWidth = fc.PrintWidth
		}
		if fc.TabWidth > 0 && !cmd.Flags().Changed("tab-width") {
			tabWidth = fc.TabWidth
		}
		if fc.UseTabs != nil && !cmd.Flags().Changed("use-tabs") {
			useTabs = *fc.UseTabs
		}
		opts.Extensions = manifest.Config.Files.Extensions
	}

	opts.Jobs = jobs
	opts.Options = format.Options{
		PrintWidth: printWidth,
		TabWidth:   tabWidth,
		UseTabs:    useTabs,
	}
	if !noSnippets {
		opts.Options.Printer = printer.BracePrinter{}
		if !noCache {
			if cacheDir, err := os.UserCacheDir(); err == nil {
				// Cache failures only cost speed, never correctness.
				if cache, err := driver.OpenSnippetCache(filepath.Join(cacheDir, "docfmt", "snippets")); err == nil {
					opts.Cache = cache
				}
			}
		}
	}
	return opts, nil
}

// runFmtStdin formats standard input and writes the result to standard
// output; with --check nothing is printed and an unformatted input fails.
func runFmtStdin(opts driver.FormatOptions, check bool) error {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("fmt: reading stdin: %w", err)
	}
	res := driver.FormatVirtual("<stdin>", content, opts)
	if res.Err != nil {
		return fmt.Errorf("fmt: %w", res.Err)
	}
	if check {
		if res.Changed {
			return fmt.Errorf("fmt: formatting changes required")
		}
		return nil
	}
	_, err = os.Stdout.Write(res.Formatted)
	return err
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	changed := color.New(color.FgYellow)
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					changed.Fprintln(os.Stdout, res.Path)
				}
			}
			continue
		}

		if res.Changed && !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %s (%d comments)\n", res.Path, res.Comments)
		}
	}
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Comments int    `json:"comments"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Comments: res.Comments, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
