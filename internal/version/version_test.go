package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"2.0", "2.0"},
	}
	orig := Version
	defer func() { Version = orig }()
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q", tt.version, got)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	if got := Colored(); got == Version {
		t.Errorf("expected escape codes, got %q", got)
	}
}

func TestCurrent(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	info := Current()
	if info.Version != Version || info.GitCommit != "abc123" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("Current() = %+v", info)
	}
}
