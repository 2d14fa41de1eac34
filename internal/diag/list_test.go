package diag

import (
	"testing"

	"clark/internal/source"
)

func TestListAppend(t *testing.T) {
	pool := source.NewPool()
	l := NewList(pool, 0)

	if ok, err := l.Append(InvalidUTF8, 3, "'\\xff'"); !ok || err != nil {
		t.Fatalf("Append = %v, %v", ok, err)
	}
	if ok, err := l.Append(StringEOF, 7, ""); !ok || err != nil {
		t.Fatalf("Append = %v, %v", ok, err)
	}

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if d := l.At(0); d.Code != InvalidUTF8 || d.Start != 3 || d.Msg == source.NoHandle {
		t.Fatalf("At(0) = %+v", d)
	}
	if got := l.Message(0); got != "'\\xff'" {
		t.Fatalf("Message(0) = %q", got)
	}
	if d := l.At(1); d.Msg != source.NoHandle || l.Message(1) != "" {
		t.Fatalf("entry without message got handle %d", d.Msg)
	}
}

func TestListSharesMessages(t *testing.T) {
	pool := source.NewPool()
	l := NewList(pool, 0)
	for i := 0; i < 5; i++ {
		if _, err := l.Append(UnexpectedSymbol, uint32(i), "'$'"); err != nil {
			t.Fatal(err)
		}
	}
	if pool.Len() != 1 {
		t.Fatalf("identical messages interned %d times", pool.Len())
	}
}

func TestListCap(t *testing.T) {
	l := NewList(source.NewPool(), 0)
	if l.Limit() != MaxDiagnostics {
		t.Fatalf("default limit = %d", l.Limit())
	}
	for i, iEnd := 0, MaxDiagnostics; i < iEnd; i++ {
		ok, err := l.Append(IntInvalid, uint32(i), "")
		if !ok || err != nil {
			t.Fatalf("append %d failed: %v %v", i, ok, err)
		}
	}
	ok, err := l.Append(IntInvalid, MaxDiagnostics, "dropped")
	if ok || err != nil {
		t.Fatalf("append past cap = %v, %v; want silent drop", ok, err)
	}
	if l.Len() != MaxDiagnostics || !l.Full() {
		t.Fatalf("Len = %d", l.Len())
	}
}

func TestListLimit(t *testing.T) {
	l := NewList(source.NewPool(), 2)
	for i := 0; i < 4; i++ {
		_, _ = l.Append(FloatInvalid, uint32(i), "")
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	l.SetLimit(MaxDiagnostics + 10)
	if l.Limit() != MaxDiagnostics {
		t.Fatalf("limit not clamped: %d", l.Limit())
	}
}

func TestCodeMetadata(t *testing.T) {
	tests := []struct {
		code   Code
		id     string
		name   string
		reason string
	}{
		{UnexpectedSymbol, "LEX1001", "UNEXPECTED_SYMBOL", "unexpected symbol:"},
		{NewlineInRawBytes, "LEX1004", "NEWLINE_IN_RAWBYTES", "unexpected newline in raw byte string"},
		{HexNumberNoDigits, "NUM2003", "HEX_NUMBER_NO_DIGITS", "hexadecimal number has no digits:"},
		{InvalidEscape, "ESC3001", "INVALID_ESCAPE", "invalid escape:"},
		{ExpectedIdent, "SYN4001", "EXPECTED_IDENT", "expected identifier, found"},
		{Code(999), "E0000", "INVALID", "INVALID ERRORCODE:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.ID(); got != tt.id {
				t.Errorf("ID = %q, want %q", got, tt.id)
			}
			if got := tt.code.Name(); got != tt.name {
				t.Errorf("Name = %q, want %q", got, tt.name)
			}
			if got := tt.code.Reason(); got != tt.reason {
				t.Errorf("Reason = %q, want %q", got, tt.reason)
			}
		})
	}
	if Invalid.Known() || !FloatTooBig.Known() {
		t.Fatal("Known() mismatch")
	}
}
