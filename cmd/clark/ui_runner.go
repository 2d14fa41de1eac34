package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"clark/internal/driver"
	"clark/internal/ui"
)

type parseOutcome struct {
	results []*driver.Result
	err     error
}

// runParseWithUI runs driver.ParseDir while a bubbletea program renders its
// progress events on stderr.
func runParseWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	go func() {
		opts.Progress = driver.ChanSink(events)
		res, err := driver.ParseDir(ctx, dir, opts)
		outcomeCh <- parseOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// программа могла выйти раньше (ctrl+c): не блокируем ParseDir
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		for _, r := range outcome.results {
			r.Close()
		}
		return nil, uiErr
	}
	return outcome.results, outcome.err
}
