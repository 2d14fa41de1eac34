package session

import (
	"errors"
	"testing"

	"clark/internal/bigint"
	"clark/internal/diag"
	"clark/internal/source"
)

func TestBind(t *testing.T) {
	ctx := New(Options{})
	defer ctx.Close()

	src := []byte("x")
	f, err := ctx.Bind("main.star", src)
	if err != nil {
		t.Fatal(err)
	}
	if ctx.DisplayName() != "main.star" || f.Path != "main.star" {
		t.Fatalf("name = %q", ctx.DisplayName())
	}
	if again, err := ctx.Bind("main.star", src); err != nil || again != f {
		t.Fatalf("rebinding same source: %v", err)
	}
	if _, err := ctx.Bind("other.star", []byte("y")); !errors.Is(err, ErrAlreadyBound) {
		t.Fatalf("expected ErrAlreadyBound, got %v", err)
	}
}

func TestReportAndFault(t *testing.T) {
	ctx := New(Options{MaxDiagnostics: 2})
	ctx.Report(diag.InvalidUTF8, 0, "'\\xff'")
	ctx.Report(diag.StringEOF, 4, "")
	ctx.Report(diag.StringEOF, 5, "")
	if ctx.Diags.Len() != 2 {
		t.Fatalf("cap not honoured: %d", ctx.Diags.Len())
	}
	if ctx.Fault() != nil {
		t.Fatalf("silent drop must not fault: %v", ctx.Fault())
	}

	ctx.Fail(source.ErrPoolExhausted)
	ctx.Fail(errors.New("second"))
	if !errors.Is(ctx.Fault(), source.ErrPoolExhausted) {
		t.Fatalf("first fault must stick, got %v", ctx.Fault())
	}
	if _, err := ctx.Bind("x", nil); !errors.Is(err, source.ErrPoolExhausted) {
		t.Fatalf("Bind after fault = %v", err)
	}
}

func TestSet(t *testing.T) {
	ctx := New(Options{})
	if err := ctx.Set(KeyMaxDiagnostics, "10"); err != nil {
		t.Fatal(err)
	}
	if ctx.Diags.Limit() != 10 {
		t.Fatalf("limit = %d", ctx.Diags.Limit())
	}
	if err := ctx.Set(KeyBigInt, "big"); err != nil {
		t.Fatal(err)
	}
	if ctx.Engine() != bigint.Big {
		t.Fatal("engine not switched")
	}

	tests := []struct {
		key, value string
		want       error
	}{
		{"colour", "on", ErrUnknownKey},
		{KeyMaxDiagnostics, "0", ErrBadValue},
		{KeyMaxDiagnostics, "65535", ErrBadValue},
		{KeyMaxDiagnostics, "many", ErrBadValue},
		{KeyBigInt, "gmp", ErrBadValue},
	}
	for _, tt := range tests {
		if err := ctx.Set(tt.key, tt.value); !errors.Is(err, tt.want) {
			t.Errorf("Set(%q, %q) = %v, want %v", tt.key, tt.value, err, tt.want)
		}
	}
}

func TestCloseIdempotent(t *testing.T) {
	ctx := New(Options{})
	_, _ = ctx.Bind("a", []byte("a"))
	ctx.Report(diag.IntInvalid, 0, "msg")
	ctx.Close()
	ctx.Close()
	if _, err := ctx.Bind("a", []byte("a")); !errors.Is(err, ErrClosed) {
		t.Fatalf("Bind after Close = %v", err)
	}
	if err := ctx.Set(KeyBigInt, "big"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Set after Close = %v", err)
	}
}
