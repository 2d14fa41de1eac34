package ui

import (
	"strings"
	"testing"
	"time"

	"clark/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("parse testdata", []string{"a.star", "b.star"}, events).(*progressModel)

	m.Update(eventMsg(driver.Event{File: "a.star", Stage: driver.StageParse, Status: driver.StatusWorking}))
	if m.items[0].status != "parsing" || m.stageLabel != "parsing" {
		t.Fatalf("item = %+v label=%q", m.items[0], m.stageLabel)
	}
	if p := m.percent(); p != 0.35 {
		t.Errorf("percent = %v, want 0.35", p)
	}

	m.Update(eventMsg(driver.Event{File: "a.star", Stage: driver.StageParse, Status: driver.StatusDone, Elapsed: 1500 * time.Microsecond}))
	m.Update(eventMsg(driver.Event{File: "b.star", Stage: driver.StageRead, Status: driver.StatusError}))
	m.Update(eventMsg(driver.Event{File: "unknown.star", Status: driver.StatusDone}))
	if finished, failed := m.counts(); finished != 2 || failed != 1 {
		t.Fatalf("counts = %d, %d", finished, failed)
	}
	if m.percent() != 1 {
		t.Errorf("percent = %v", m.percent())
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: parse testdata", "2/2", "1 with errors", "a.star", "b.star", "1.5ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.star", 20, "short.star"},
		{"a/very/long/path/file.star", 10, "a/very/..."},
		{"日本語.star", 5, "日..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
