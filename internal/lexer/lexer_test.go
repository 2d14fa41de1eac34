package lexer_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"clark/internal/diag"
	"clark/internal/lexer"
	"clark/internal/session"
	"clark/internal/source"
	"clark/internal/token"
)

type lexed struct {
	kinds []token.Kind
	texts []string
	codes []diag.Code
	diags []diag.Diagnostic
	ctx   *session.Context
}

// lexString прогоняет лексер по строке и собирает результат
func lexString(t *testing.T, src string) lexed {
	t.Helper()
	ctx := session.New(session.Options{})
	t.Cleanup(ctx.Close)

	stream, err := lexer.Lex(ctx, "test.star", []byte(src))
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	var out lexed
	out.ctx = ctx
	for i, iEnd := 0, stream.Len(); i < iEnd; i++ {
		out.kinds = append(out.kinds, stream.Kind(i))
		out.texts = append(out.texts, string(stream.Text(i)))
	}
	out.diags = ctx.Diags.Items()
	for _, d := range out.diags {
		out.codes = append(out.codes, d.Code)
	}
	return out
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		src   string
		kinds []token.Kind
		texts []string
	}{
		{"x", []token.Kind{token.Ident}, []string{"x"}},
		{"_private9", []token.Kind{token.Ident}, []string{"_private9"}},
		{"def", []token.Kind{token.Ident}, []string{"def"}},
		{"a b\n", []token.Kind{token.Ident, token.Ident, token.Newline}, []string{"a", "b", "\n"}},
		{"42", []token.Kind{token.Number}, []string{"42"}},
		{"0x1A 0o17 0b101", []token.Kind{token.Number, token.Number, token.Number}, []string{"0x1A", "0o17", "0b101"}},
		{"1_000", []token.Kind{token.Number}, []string{"1_000"}},
		{".5 3.14 1e10 1.5E-3", []token.Kind{token.Number, token.Number, token.Number, token.Number}, []string{".5", "3.14", "1e10", "1.5E-3"}},
		{"0xZZ", []token.Kind{token.Number}, []string{"0xZZ"}},
		{"'a'", []token.Kind{token.String}, []string{"'a'"}},
		{`"a\tb"`, []token.Kind{token.String}, []string{`"a\tb"`}},
		{`r"a\tb"`, []token.Kind{token.String}, []string{`r"a\tb"`}},
		{`b'x' rb"y" br'z'`, []token.Kind{token.String, token.String, token.String}, []string{`b'x'`, `rb"y"`, `br'z'`}},
		{`"""a` + "\n" + `b"""`, []token.Kind{token.String}, []string{"\"\"\"a\nb\"\"\""}},
		{`"a\"b"`, []token.Kind{token.String}, []string{`"a\"b"`}},
		{`"a\\" x`, []token.Kind{token.String, token.Ident}, []string{`"a\\"`, "x"}},
		{"'it''s'", []token.Kind{token.String, token.String}, []string{"'it'", "'s'"}},
		{"rb", []token.Kind{token.Ident}, []string{"rb"}},
		{"bar", []token.Kind{token.Ident}, []string{"bar"}},
		{"x # note\ny", []token.Kind{token.Ident, token.Comment, token.Newline, token.Ident}, []string{"x", "", "\n", "y"}},
		{"a.b", []token.Kind{token.Ident, token.Dot, token.Ident}, []string{"a", ".", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := lexString(t, tt.src)
			if len(got.codes) != 0 {
				t.Fatalf("unexpected diagnostics: %v", got.codes)
			}
			if !slices.Equal(got.kinds, tt.kinds) {
				t.Fatalf("kinds = %v, want %v", got.kinds, tt.kinds)
			}
			if !slices.Equal(got.texts, tt.texts) {
				t.Fatalf("texts = %q, want %q", got.texts, tt.texts)
			}
		})
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	src := "( ) [ ] { } + += - -= * ** *= / // /= //= % %= & &= | |= ^ ^= ~ << <<= >> >>= = == != < <= > >= , ; : . ..."
	want := []token.Kind{
		token.LParen, token.RParen, token.LBracket, token.RBracket, token.LBrace, token.RBrace,
		token.Plus, token.PlusAssign, token.Minus, token.MinusAssign,
		token.Star, token.StarStar, token.StarAssign,
		token.Slash, token.SlashSlash, token.SlashAssign, token.SlashSlashAssign,
		token.Percent, token.PercentAssign, token.Amp, token.AmpAssign,
		token.Pipe, token.PipeAssign, token.Caret, token.CaretAssign, token.Tilde,
		token.Shl, token.ShlAssign, token.Shr, token.ShrAssign,
		token.Assign, token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Comma, token.Semicolon, token.Colon, token.Dot, token.Ellipsis,
	}
	got := lexString(t, src)
	if !slices.Equal(got.kinds, want) {
		t.Fatalf("kinds = %v\nwant   %v", got.kinds, want)
	}
	for i, k := range got.kinds {
		if got.texts[i] != k.Lexeme() {
			t.Errorf("token %d text %q, lexeme %q", i, got.texts[i], k.Lexeme())
		}
	}

	// без пробелов жадность всё равно работает
	dense := lexString(t, "a**=b<<=c")
	wantDense := []token.Kind{token.Ident, token.StarStar, token.Assign, token.Ident, token.ShlAssign, token.Ident}
	if !slices.Equal(dense.kinds, wantDense) {
		t.Fatalf("dense kinds = %v, want %v", dense.kinds, wantDense)
	}
}

func TestSpansCoverNonBlankBytes(t *testing.T) {
	src := "name = 'v'  # c\n  x+=0x1F\t.5\n"
	ctx := session.New(session.Options{})
	defer ctx.Close()
	stream, err := lexer.Lex(ctx, "t", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	covered := make([]bool, len(src))
	for i, iEnd := 0, stream.Len(); i < iEnd; i++ {
		sp := stream.Span(i)
		for j := sp.Start; j < sp.End; j++ {
			covered[j] = true
		}
	}
	inComment := false
	for i, iEnd := 0, len(src); i < iEnd; i++ {
		switch {
		case src[i] == '#':
			inComment = true
		case src[i] == '\n':
			inComment = false
		}
		blank := src[i] == ' ' || src[i] == '\t' || inComment
		if blank == covered[i] {
			t.Errorf("byte %d (%q): blank=%v covered=%v", i, src[i], blank, covered[i])
		}
	}
}

func TestUnterminatedStrings(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
		text string
	}{
		{`"abc`, diag.StringEOF, `"abc`},
		{`r'abc`, diag.RawStringEOF, `r'abc`},
		{`b"abc`, diag.BytesEOF, `b"abc`},
		{`rb"abc`, diag.RawBytesEOF, `rb"abc`},
		{`"""abc""`, diag.StringEOF, `"""abc""`},
		{"\"ab\ncd\"", diag.NewlineInString, `"ab`},
		{"r'ab\n", diag.NewlineInRawString, `r'ab`},
		{"b'ab\n", diag.NewlineInBytes, `b'ab`},
		{"br'ab\n", diag.NewlineInRawBytes, `br'ab`},
		{"r'a\\\nb'", diag.NewlineInRawString, `r'a\`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := lexString(t, tt.src)
			if len(got.codes) == 0 || got.codes[0] != tt.code {
				t.Fatalf("codes = %v, want first %v", got.codes, tt.code)
			}
			if got.diags[0].Start != 0 {
				t.Fatalf("diagnostic at %d, want literal start 0", got.diags[0].Start)
			}
			if got.kinds[0] != token.Error || got.texts[0] != tt.text {
				t.Fatalf("first token = %v %q, want ERROR %q", got.kinds[0], got.texts[0], tt.text)
			}
		})
	}
}

func TestEscapedNewlineContinuesString(t *testing.T) {
	got := lexString(t, "'a\\\nb'")
	if len(got.codes) != 0 || !slices.Equal(got.kinds, []token.Kind{token.String}) {
		t.Fatalf("kinds=%v codes=%v", got.kinds, got.codes)
	}
}

func TestInvalidUTF8OneDiagnosticPerRun(t *testing.T) {
	src := "a \xff\xfe\xfd b \xc3 c"
	got := lexString(t, src)
	if !slices.Equal(got.codes, []diag.Code{diag.InvalidUTF8, diag.InvalidUTF8}) {
		t.Fatalf("codes = %v", got.codes)
	}
	if got.diags[0].Start != 2 || got.diags[1].Start != 8 {
		t.Fatalf("offsets = %d, %d", got.diags[0].Start, got.diags[1].Start)
	}
	if msg := got.ctx.Diags.Message(0); msg != `'\xff\xfe\xfd'` {
		t.Fatalf("message = %q", msg)
	}
	want := []token.Kind{token.Ident, token.Error, token.Ident, token.Error, token.Ident}
	if !slices.Equal(got.kinds, want) {
		t.Fatalf("kinds = %v, want %v", got.kinds, want)
	}
}

func TestInvalidUTF8InCommentAndString(t *testing.T) {
	got := lexString(t, "# \xff\xff\n'x\xffy'")
	if !slices.Equal(got.codes, []diag.Code{diag.InvalidUTF8, diag.InvalidUTF8}) {
		t.Fatalf("codes = %v", got.codes)
	}
	if got.kinds[len(got.kinds)-1] != token.Error {
		t.Fatalf("string with invalid bytes must be an error token, got %v", got.kinds)
	}
}

func TestValidUTF8InStringAndComment(t *testing.T) {
	got := lexString(t, "'привет' # коммент ✓")
	if len(got.codes) != 0 {
		t.Fatalf("codes = %v", got.codes)
	}
	if got.kinds[0] != token.String {
		t.Fatalf("kinds = %v", got.kinds)
	}
}

func TestInvalidBytesChar(t *testing.T) {
	got := lexString(t, "b'aéb✓'")
	if !slices.Equal(got.codes, []diag.Code{diag.InvalidBytesChar, diag.InvalidBytesChar}) {
		t.Fatalf("codes = %v", got.codes)
	}
	if got.diags[0].Start != 3 || got.ctx.Diags.Message(0) != "'é'" {
		t.Fatalf("first = %+v %q", got.diags[0], got.ctx.Diags.Message(0))
	}
	if !slices.Equal(got.kinds, []token.Kind{token.Error}) {
		t.Fatalf("kinds = %v", got.kinds)
	}
}

func TestTerminationReportedBeforeInnerDiagnostics(t *testing.T) {
	got := lexString(t, "x b'\xff")
	if !slices.Equal(got.codes, []diag.Code{diag.BytesEOF, diag.InvalidUTF8}) {
		t.Fatalf("codes = %v", got.codes)
	}
	if got.diags[0].Start > got.diags[1].Start {
		t.Fatalf("offsets go backwards: %d > %d", got.diags[0].Start, got.diags[1].Start)
	}
}

func TestUnexpectedSymbol(t *testing.T) {
	got := lexString(t, "a ! $ é")
	want := []diag.Code{diag.UnexpectedSymbol, diag.UnexpectedSymbol, diag.UnexpectedSymbol}
	if !slices.Equal(got.codes, want) {
		t.Fatalf("codes = %v", got.codes)
	}
	msgs := []string{"'!'", "'$'", "'é'"}
	for i, m := range msgs {
		if got.ctx.Diags.Message(i) != m {
			t.Errorf("message %d = %q, want %q", i, got.ctx.Diags.Message(i), m)
		}
	}
	if got.texts[3] != "é" || got.kinds[3] != token.Error {
		t.Fatalf("non-ASCII symbol token = %v %q", got.kinds[3], got.texts[3])
	}
}

func TestDiagnosticOffsetsNonDecreasing(t *testing.T) {
	src := "'abc\n$ \xff \"x\xfe\n b'é' 'ok' \"\"\"never"
	got := lexString(t, src)
	if len(got.diags) < 5 {
		t.Fatalf("expected several diagnostics, got %v", got.codes)
	}
	for i := 1; i < len(got.diags); i++ {
		if got.diags[i].Start < got.diags[i-1].Start {
			t.Fatalf("offset %d < %d at %d", got.diags[i].Start, got.diags[i-1].Start, i)
		}
	}
}

func TestDeterministic(t *testing.T) {
	src := []byte("x = 0x1F + 'a\\n' # c\n\xff y")
	run := func() ([]token.Token, []diag.Diagnostic) {
		ctx := session.New(session.Options{})
		defer ctx.Close()
		s, err := lexer.Lex(ctx, "t", src)
		if err != nil {
			t.Fatal(err)
		}
		return s.Tokens(), ctx.Diags.Items()
	}
	t1, d1 := run()
	t2, d2 := run()
	if !slices.Equal(t1, t2) || !slices.Equal(d1, d2) {
		t.Fatal("two contexts produced different output")
	}
}

func TestEmptyAndBlankInput(t *testing.T) {
	for _, src := range []string{"", "   \t\r", "# only comment"} {
		got := lexString(t, src)
		for _, k := range got.kinds {
			if k != token.Comment {
				t.Fatalf("%q produced %v", src, got.kinds)
			}
		}
	}
}

func TestFaultDiscardsStream(t *testing.T) {
	ctx := session.New(session.Options{})
	defer ctx.Close()
	ctx.Fail(source.ErrPoolExhausted)
	stream, err := lexer.Lex(ctx, "t", []byte("x"))
	if stream != nil || !errors.Is(err, source.ErrPoolExhausted) {
		t.Fatalf("Lex after fault = %v, %v", stream, err)
	}
}

func TestManyDiagnosticsCapped(t *testing.T) {
	ctx := session.New(session.Options{MaxDiagnostics: 3})
	defer ctx.Close()
	if _, err := lexer.Lex(ctx, "t", []byte(strings.Repeat("$", 10))); err != nil {
		t.Fatal(err)
	}
	if ctx.Diags.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ctx.Diags.Len())
	}
}
