package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Format     Format    // FormatAuto: по расширению OutputPath
	Output     io.Writer // если nil, используется OutputPath
	OutputPath string    // "-" или "": stderr
	RingSize   int       // для LevelError, по умолчанию 4096
}

// New builds the tracer for cfg:
//
//	off    -> Nop
//	error  -> RingTracer, dumped by DumpOnFault
//	others -> StreamTracer
func New(cfg Config) (Tracer, error) {
	switch cfg.Level {
	case LevelOff:
		return Nop, nil
	case LevelError:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// nopCloser не даёт Close закрыть stderr.
type nopCloser struct{ io.Writer }

// DumpOnFault writes the ring contents of t to w; other tracers are ignored.
func DumpOnFault(t Tracer, w io.Writer) error {
	ring, ok := t.(*RingTracer)
	if !ok {
		return nil
	}
	return ring.Dump(w, FormatText)
}
