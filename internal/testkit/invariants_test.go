package testkit

import (
	"testing"

	"clark/internal/lexer"
	"clark/internal/parser"
	"clark/internal/session"
	"clark/internal/source"
	"clark/internal/token"
)

func TestInvariantsHoldForParsedInput(t *testing.T) {
	src := []byte("x 0x1A \"abc\n1__0 r'q' # tail\n\xff 3.5\n")
	ctx := session.New(session.Options{})
	defer ctx.Close()
	stream, err := lexer.Lex(ctx, "k.star", src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if err := CheckStreamInvariants(stream, len(src)); err != nil {
		t.Error(err)
	}
	// проверяем до парсера: его диагностики идут отдельным проходом
	if err := CheckDiagnostics(ctx.Diags, len(src)); err != nil {
		t.Error(err)
	}
	tree, err := parser.ParseTokens(ctx, stream)
	if err != nil {
		t.Fatalf("ParseTokens: %v", err)
	}
	defer tree.Release()
	if err := CheckTreeInvariants(tree, stream); err != nil {
		t.Error(err)
	}
}

func TestCheckStreamInvariantsRejectsOverlap(t *testing.T) {
	s := token.NewStream(nil, 2)
	s.Push(token.Ident, source.Span{Start: 0, End: 3})
	s.Push(token.Ident, source.Span{Start: 2, End: 4})
	if err := CheckStreamInvariants(s, 4); err == nil {
		t.Fatal("overlap not detected")
	}

	out := token.NewStream(nil, 1)
	out.Push(token.Ident, source.Span{Start: 0, End: 9})
	if err := CheckStreamInvariants(out, 4); err == nil {
		t.Fatal("out-of-range span not detected")
	}
}
