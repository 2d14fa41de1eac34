package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clark/internal/diagfmt"
	"clark/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.star|directory>",
	Short: "Run diagnostics on a clark source file or directory",
	Long:  `Run lexical and operand-level diagnostics on a clark source file or all *.star and *.bzl files within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

// runDiagnose parses every input and prints only diagnostics, to stdout.
// It returns errFailed when anything was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	opts := driverOptions()
	opts.Jobs = jobs

	var results []*driver.Result
	st, err := os.Stat(filePath)
	switch {
	case filePath != "-" && err != nil:
		return fmt.Errorf("failed to stat path: %w", err)
	case filePath != "-" && st.IsDir():
		results, err = driver.ParseDir(cmd.Context(), filePath, opts)
	default:
		var res *driver.Result
		res, err = driver.Parse(cmd.Context(), filePath, opts)
		results = []*driver.Result{res}
	}
	if err != nil {
		return fmt.Errorf("diagnostics failed: %w", err)
	}
	defer func() {
		for _, r := range results {
			r.Close()
		}
	}()

	done := state.timer.Begin("render")
	defer done(format)

	if format == "json" {
		return writeDiagnosticsJSON(results)
	}

	prettyOpts := diagfmt.PrettyOpts{Color: useColor(os.Stdout), ShowPreview: true}
	for _, r := range results {
		if r.Session != nil {
			if format == "short" {
				err = diagfmt.WriteDiagnostics(os.Stdout, r.Session)
			} else {
				err = diagfmt.Pretty(os.Stdout, r.Session, prettyOpts)
			}
			if err != nil {
				return err
			}
		}
		if r.Err != nil {
			if _, err := fmt.Fprintf(os.Stdout, "%s: %v\n", r.Path, r.Err); err != nil {
				return err
			}
		}
	}
	return failedErr(results)
}

// fileDiagnostics: диагностики одного файла в JSON выводе.
type fileDiagnostics struct {
	File string `json:"file"`
	diagfmt.DiagnosticsOutput
	Error string `json:"error,omitempty"`
}

func writeDiagnosticsJSON(results []*driver.Result) error {
	out := make([]fileDiagnostics, 0, len(results))
	for _, r := range results {
		entry := fileDiagnostics{File: r.Path}
		if r.Session != nil {
			entry.DiagnosticsOutput = diagfmt.BuildDiagnosticsJSON(r.Session, diagfmt.JSONOpts{IncludePositions: true})
		}
		if entry.Diagnostics == nil {
			entry.Diagnostics = []diagfmt.DiagnosticJSON{}
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		out = append(out, entry)
	}
	if err := diagfmt.EncodeJSON(os.Stdout, out); err != nil {
		return err
	}
	return failedErr(results)
}
