package main

import (
	"errors"
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clark/internal/trace"
	"clark/internal/version"
)

// errFailed сигнализирует, что диагностики уже выведены и нужен exit 1.
var errFailed = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:           "clark",
	Short:         "Clark configuration language front-end",
	Long:          `Clark tokenizes and parses Starlark-like configuration files and reports diagnostics`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupRun(cmd)
	},
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd)
}

// registerGlobalFlags adds the persistent flags shared by every subcommand.
func registerGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to record (1..65534, 0=config)")
	pf.String("config", "", "path to clark.toml (default: nearest clark.toml, if any)")
	pf.String("bigint", "", "big integer engine (limbs|big)")
	pf.String("trace", "", "trace output file (- for stderr, .ndjson for NDJSON)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main runs the root command and exits with status 1 on any error or
// reported diagnostic.
func main() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		fmt.Fprintf(os.Stderr, "clark: %v\n", err)
		if state.tracer != nil {
			_ = trace.DumpOnFault(state.tracer, os.Stderr)
		}
	}
	finishRun()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil {
		return false
	}
	return term.IsTerminal(fd)
}
