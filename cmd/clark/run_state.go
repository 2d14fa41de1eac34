package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clark/internal/config"
	"clark/internal/driver"
	"clark/internal/observ"
	"clark/internal/trace"
)

// runState: то, что PersistentPreRunE собирает для подкоманды.
type runState struct {
	cfg     config.Config
	timer   *observ.Timer
	tracer  trace.Tracer
	quiet   bool
	cleanup []func()
}

var state runState

// setupRun loads configuration, applies flag overrides, and attaches the
// tracer to the command context.
func setupRun(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	state.cfg = cfg

	pf := cmd.Root().PersistentFlags()
	if state.quiet, err = pf.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		state.timer = observ.NewTimer()
	}

	switch cfg.CLI.Color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	state.cleanup = append(state.cleanup, stopProf)

	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	state.cleanup = append(state.cleanup, stopTrace)
	return nil
}

// finishRun prints timings, closes the tracer and stops profilers.
func finishRun() {
	if state.timer != nil && !state.quiet {
		printTimings(os.Stderr, state.timer)
	}
	for i := len(state.cleanup) - 1; i >= 0; i-- {
		state.cleanup[i]()
	}
	state.cleanup = nil
}

// loadConfig reads --config or the nearest clark.toml, then applies the
// flags the user actually set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	pf := cmd.Root().PersistentFlags()
	path, err := pf.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, findErr := config.Find(".")
		if findErr != nil {
			return config.Config{}, findErr
		}
		if ok {
			path = found
		}
	}

	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if pf.Changed("max-diagnostics") {
		if cfg.Frontend.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if pf.Changed("bigint") {
		if cfg.Frontend.BigInt, err = pf.GetString("bigint"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get bigint flag: %w", err)
		}
	}
	if pf.Changed("color") {
		if cfg.CLI.Color, err = pf.GetString("color"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// driverOptions builds driver options for the current run.
func driverOptions() driver.Options {
	return driver.Options{Config: state.cfg, Timer: state.timer}
}

// useColor решает, раскрашивать ли вывод в f.
func useColor(f *os.File) bool {
	switch state.cfg.CLI.Color {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}
