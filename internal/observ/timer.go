// Package observ measures the phases of a run (read, lex, parse, render)
// for the --timings flag.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured interval.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Count int // сколько раз фаза закрывалась (для каталогов)
}

// Timer accumulates phases by name. Safe for concurrent use: parallel
// workers add into the same phase.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	index  map[string]int
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), index: make(map[string]int, 8)}
}

// Begin opens (or reopens) the named phase and returns a function that
// closes it with an optional note.
func (t *Timer) Begin(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	start := time.Now()
	t.mu.Lock()
	if _, ok := t.index[name]; !ok {
		t.index[name] = len(t.phases)
		t.phases = append(t.phases, Phase{Name: name, Start: start})
	}
	t.mu.Unlock()
	return func(note string) { t.add(name, time.Since(start), note) }
}

func (t *Timer) add(name string, d time.Duration, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &t.phases[t.index[name]]
	p.Dur += d
	p.Count++
	if note != "" {
		p.Note = note
	}
}

// Summary renders the phases in first-seen order.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.3f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  x%d", p.Count)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.3f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport: фаза в сериализуемом виде.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
	Note       string  `json:"note,omitempty"`
}

// Report: агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the timer. Total is the sum of phase durations, so
// parallel phases count once per worker.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		report.Phases[i] = PhaseReport{
			Name:       p.Name,
			DurationMS: millis(p.Dur),
			Count:      p.Count,
			Note:       p.Note,
		}
	}
	report.TotalMS = millis(total)
	return report
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
