package main

import (
	"fmt"
	"os"
	"strings"
)

// progressMode is the --ui setting of `clark parse <dir>`.
type progressMode uint8

const (
	progressAuto   progressMode = iota // только если stdout и stderr на терминале
	progressAlways                     // on
	progressNever                      // off
)

var progressModes = map[string]progressMode{
	"":     progressAuto,
	"auto": progressAuto,
	"on":   progressAlways,
	"off":  progressNever,
}

func parseProgressMode(value string) (progressMode, error) {
	m, ok := progressModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return progressNever, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// wantsProgress decides whether a directory run draws the progress view.
// --quiet beats --ui=on. The view goes to stderr while the trees go to
// stdout, so auto wants both on a terminal.
func (m progressMode) wantsProgress(quiet, stdoutTTY, stderrTTY bool) bool {
	if quiet {
		return false
	}
	switch m {
	case progressAlways:
		return true
	case progressNever:
		return false
	}
	return stdoutTTY && stderrTTY
}

func (m progressMode) wantsProgressHere(quiet bool) bool {
	return m.wantsProgress(quiet, isTerminal(os.Stdout), isTerminal(os.Stderr))
}
