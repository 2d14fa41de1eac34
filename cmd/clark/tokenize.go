package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clark/internal/diagfmt"
	"clark/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.star|->",
	Short: "Tokenize a clark source file",
	Long:  `Tokenize breaks down a clark source file (or stdin with -) into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse lexed token streams from the user cache directory")
	tokenizeCmd.Flags().Bool("clear-cache", false, "drop cached token streams before tokenizing (implies --cache)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	opts := driverOptions()
	if useCache || clearCache {
		if opts.Cache, err = openTokenCache(clearCache); err != nil {
			return err
		}
	}

	result, err := driver.Tokenize(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	defer result.Close()

	// Диагностика в stderr, токены в stdout
	if result.Session.Diags.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(os.Stderr), ShowPreview: true}
		if err := diagfmt.Pretty(os.Stderr, result.Session, opts); err != nil {
			return err
		}
	}

	done := state.timer.Begin("render")
	switch format {
	case "json":
		err = diagfmt.WriteTokensJSON(os.Stdout, result.Stream)
	default:
		err = diagfmt.WriteTokens(os.Stdout, result.Stream)
	}
	note := ""
	if result.Cached {
		note = "cached"
	}
	done(note)
	if err != nil {
		return err
	}

	if result.Failed() {
		return errFailed
	}
	return nil
}

// openTokenCache opens the user token cache, emptying it first when clear is set.
func openTokenCache(clear bool) (*driver.DiskCache, error) {
	cache, err := driver.OpenDiskCache("clark")
	if err != nil {
		return nil, fmt.Errorf("failed to open token cache: %w", err)
	}
	if clear {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear token cache: %w", err)
		}
	}
	return cache, nil
}
