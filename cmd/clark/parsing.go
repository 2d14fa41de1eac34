package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"clark/internal/diagfmt"
	"clark/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.star|directory|->",
	Short: "Parse a clark source file or directory and output the operand tree",
	Long:  `Parse analyzes a clark source file, stdin, or all *.star and *.bzl files in a directory and outputs their node lists`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	parseCmd.Flags().Bool("dump-tokens", false, "print token, node and error sections (pretty format)")
}

// parseOutput: результат одного файла в JSON выводе.
type parseOutput struct {
	File        string                    `json:"file"`
	Tokens      []diagfmt.TokenOutput     `json:"tokens,omitempty"`
	Nodes       []diagfmt.NodeOutput      `json:"nodes"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Error       string                    `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	dumpTokens, err := cmd.Flags().GetBool("dump-tokens")
	if err != nil {
		return fmt.Errorf("failed to get dump-tokens flag: %w", err)
	}

	isDir := false
	if filePath != "-" {
		st, statErr := os.Stat(filePath)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		isDir = st.IsDir()
	}

	var results []*driver.Result
	if isDir {
		results, err = parseDirectory(cmd, filePath)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else {
		res, parseErr := driver.Parse(cmd.Context(), filePath, driverOptions())
		if parseErr != nil {
			return fmt.Errorf("parsing failed: %w", parseErr)
		}
		results = []*driver.Result{res}
	}
	defer func() {
		for _, r := range results {
			r.Close()
		}
	}()

	done := state.timer.Begin("render")
	defer done("")

	if format == "json" {
		out := make([]parseOutput, 0, len(results))
		for _, r := range results {
			out = append(out, buildParseOutput(r, dumpTokens))
		}
		if !isDir {
			if err := diagfmt.EncodeJSON(os.Stdout, out[0]); err != nil {
				return err
			}
		} else if err := diagfmt.EncodeJSON(os.Stdout, out); err != nil {
			return err
		}
		return failedErr(results)
	}

	prettyOpts := diagfmt.PrettyOpts{Color: useColor(os.Stderr), ShowPreview: true}
	for idx, r := range results {
		if isDir && !state.quiet {
			if _, err := fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path); err != nil {
				return err
			}
		}
		if err := printParseResult(os.Stdout, r, dumpTokens, prettyOpts); err != nil {
			return err
		}
		if isDir && !state.quiet && idx < len(results)-1 {
			if _, err := fmt.Fprintln(os.Stdout); err != nil {
				return err
			}
		}
	}
	return failedErr(results)
}

// printParseResult prints the node list to out and diagnostics to stderr.
// With dumpTokens everything goes to out in three sections.
func printParseResult(out io.Writer, r *driver.Result, dumpTokens bool, opts diagfmt.PrettyOpts) error {
	if r.Session == nil {
		// файл не прочитался
		_, err := fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
		return err
	}

	if dumpTokens {
		sections := []struct {
			title string
			write func() error
		}{
			{"===TOKENS===", func() error { return diagfmt.WriteTokens(out, r.Stream) }},
			{"====AST=====", func() error { return writeTree(out, r) }},
			{"===ERRORS===", func() error { return diagfmt.WriteDiagnostics(out, r.Session) }},
		}
		for _, s := range sections {
			if _, err := fmt.Fprintln(out, s.title); err != nil {
				return err
			}
			if err := s.write(); err != nil {
				return err
			}
		}
	} else {
		if err := writeTree(out, r); err != nil {
			return err
		}
		if r.Session.Diags.Len() > 0 {
			if err := diagfmt.Pretty(os.Stderr, r.Session, opts); err != nil {
				return err
			}
		}
	}

	if r.Err != nil {
		_, err := fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
		return err
	}
	return nil
}

func writeTree(out io.Writer, r *driver.Result) error {
	if r.Tree == nil {
		return nil
	}
	return diagfmt.WriteAST(out, r.Tree)
}

func buildParseOutput(r *driver.Result, withTokens bool) parseOutput {
	out := parseOutput{File: r.Path, Nodes: []diagfmt.NodeOutput{}}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	if r.Session == nil {
		return out
	}
	out.Diagnostics = diagfmt.BuildDiagnosticsJSON(r.Session, diagfmt.JSONOpts{IncludePositions: true})
	if withTokens && r.Stream != nil {
		out.Tokens = diagfmt.BuildTokensJSON(r.Stream)
	}
	if r.Tree != nil {
		out.Nodes = diagfmt.BuildASTJSON(r.Tree)
	}
	return out
}

// parseDirectory runs driver.ParseDir, optionally behind the progress UI.
func parseDirectory(cmd *cobra.Command, dir string) ([]*driver.Result, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseProgressMode(uiFlag)
	if err != nil {
		return nil, err
	}

	opts := driverOptions()
	opts.Jobs = jobs
	if !mode.wantsProgressHere(state.quiet) {
		return driver.ParseDir(cmd.Context(), dir, opts)
	}
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	return runParseWithUI(cmd.Context(), "clark parse "+dir, files, dir, opts)
}

func failedErr(results []*driver.Result) error {
	for _, r := range results {
		if r.Failed() {
			return errFailed
		}
	}
	return nil
}
