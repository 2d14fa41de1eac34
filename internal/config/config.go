// Package config loads clark.toml.
//
//	[frontend]
//	max_diagnostics = 100
//	bigint = "limbs"
//
//	[cli]
//	color = "auto"
//	jobs = 4
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"clark/internal/bigint"
	"clark/internal/diag"
	"clark/internal/session"
)

// FileName is the name looked up by Find.
const FileName = "clark.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config mirrors clark.toml.
type Config struct {
	Frontend Frontend `toml:"frontend"`
	CLI      CLI      `toml:"cli"`

	Path string `toml:"-"` // откуда загружен, "" для Default
}

// Frontend holds the keys forwarded to session.Configurer.
type Frontend struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	BigInt         string `toml:"bigint"`
}

// CLI holds driver-only knobs.
type CLI struct {
	Color string `toml:"color"` // auto|on|off
	Jobs  int    `toml:"jobs"`  // 0: GOMAXPROCS
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Frontend: Frontend{
			MaxDiagnostics: diag.MaxDiagnostics,
			BigInt:         bigint.Default.Name(),
		},
		CLI: CLI{Color: "auto"},
	}
}

// Find walks up from startDir looking for clark.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Frontend.MaxDiagnostics < 1 || c.Frontend.MaxDiagnostics > diag.MaxDiagnostics {
		return fmt.Errorf("%w: [frontend].max_diagnostics=%d (want 1..%d)", ErrInvalid, c.Frontend.MaxDiagnostics, diag.MaxDiagnostics)
	}
	if _, ok := bigint.Lookup(c.Frontend.BigInt); !ok {
		return fmt.Errorf("%w: [frontend].bigint=%q (want one of %v)", ErrInvalid, c.Frontend.BigInt, bigint.Names())
	}
	switch c.CLI.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("%w: [cli].color=%q (want auto|on|off)", ErrInvalid, c.CLI.Color)
	}
	if c.CLI.Jobs < 0 {
		return fmt.Errorf("%w: [cli].jobs=%d", ErrInvalid, c.CLI.Jobs)
	}
	return nil
}

// Apply pushes the frontend keys through the configuration capability.
func Apply(c Config, target session.Configurer) error {
	if err := target.Set(session.KeyMaxDiagnostics, strconv.Itoa(c.Frontend.MaxDiagnostics)); err != nil {
		return err
	}
	return target.Set(session.KeyBigInt, c.Frontend.BigInt)
}
