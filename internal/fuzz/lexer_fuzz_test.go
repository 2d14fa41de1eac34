package fuzztests

import (
	"testing"

	"clark/internal/lexer"
	"clark/internal/session"
	"clark/internal/testkit"
)

func FuzzLexerSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx := session.New(session.Options{MaxDiagnostics: 256})
		defer ctx.Close()
		stream, err := lexer.Lex(ctx, "fuzz.star", input)
		if err != nil {
			t.Fatalf("Lex: %v", err)
		}

		if err := testkit.CheckStreamInvariants(stream, len(input)); err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckDiagnostics(ctx.Diags, len(input)); err != nil {
			t.Fatal(err)
		}
	})
}
