package driver

import "time"

// Stage describes what is being done to a file.
type Stage string

const (
	StageRead  Stage = "read"
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Must be goroutine-safe.
type ProgressSink interface {
	OnEvent(Event)
}

// ChanSink forwards events to a channel; the UI reads from it.
type ChanSink chan<- Event

func (c ChanSink) OnEvent(ev Event) { c <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
