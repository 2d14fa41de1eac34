package parser_test

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"clark/internal/ast"
	"clark/internal/bigint"
	"clark/internal/diag"
	"clark/internal/lexer"
	"clark/internal/parser"
	"clark/internal/session"
	"clark/internal/source"
	"clark/internal/token"
)

func parseString(t *testing.T, src string) (*ast.Tree, *session.Context) {
	t.Helper()
	ctx := session.New(session.Options{})
	t.Cleanup(ctx.Close)
	tree, err := parser.Parse(ctx, "test.star", []byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	t.Cleanup(tree.Release)
	return tree, ctx
}

func codes(ctx *session.Context) []diag.Code {
	return slices.Clone(ctx.Diags.Codes())
}

func intText(t *testing.T, tree *ast.Tree, i int) string {
	t.Helper()
	s, err := tree.Int(i).Text(10)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	return s
}

func TestIntegers(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"0", "0"},
		{"42", "42"},
		{"0x1A", "26"},
		{"0X1a", "26"},
		{"0o17", "15"},
		{"0b101", "5"},
		{"1_000", "1000"},
		{"0x_1", "1"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
		{"0xFFFFFFFFFFFFFFFFFFFF", "1208925819614629174706175"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, ctx := parseString(t, tt.src)
			if len(codes(ctx)) != 0 {
				t.Fatalf("unexpected diagnostics: %v", codes(ctx))
			}
			if tree.Len() != 1 || tree.Tag(0) != ast.TagInt {
				t.Fatalf("tags = %v", tree.Tags())
			}
			if got := intText(t, tree, 0); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIntegersWithBigEngine(t *testing.T) {
	for _, name := range bigint.Names() {
		t.Run(name, func(t *testing.T) {
			e, _ := bigint.Lookup(name)
			ctx := session.New(session.Options{BigInt: e})
			defer ctx.Close()
			tree, err := parser.Parse(ctx, "t", []byte("0x1A 99999999999999999999"))
			if err != nil {
				t.Fatal(err)
			}
			defer tree.Release()
			if got := intText(t, tree, 1); got != "99999999999999999999" {
				t.Errorf("got %s", got)
			}
			if tree.Int(0).Engine().Name() != name {
				t.Errorf("engine = %s, want %s", tree.Int(0).Engine().Name(), name)
			}
		})
	}
}

func TestFloats(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{".5", 0.5},
		{"3.14", 3.14},
		{"1e10", 1e10},
		{"1.0e10", 1e10},
		{"1.", 1},
		{"1.5E-3", 1.5e-3},
		{"1_000.5", 1000.5},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, ctx := parseString(t, tt.src)
			if len(codes(ctx)) != 0 {
				t.Fatalf("unexpected diagnostics: %v", codes(ctx))
			}
			if tree.Tag(0) != ast.TagFloat || tree.Float(0) != tt.want {
				t.Errorf("got %v %v, want %v", tree.Tag(0), tree.Float(0), tt.want)
			}
		})
	}
}

func TestNumberErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
		at   uint32
		msg  string
	}{
		{"0x", diag.HexNumberNoDigits, 0, "0x"},
		{"0b", diag.BinaryNumberNoDigits, 0, "0b"},
		{"0o_", diag.OctalNumberNoDigits, 0, "0o_"},
		{"0b102", diag.BinaryNumberInvalidDigit, 4, "'2'"},
		{"0o78", diag.OctalNumberInvalidDigit, 3, "'8'"},
		{"0xFG", diag.HexNumberInvalidDigit, 3, "'G'"},
		{"x 1__0", diag.NumberConsecutiveUnderscores, 3, ""},
		{"0x1__0", diag.NumberConsecutiveUnderscores, 3, ""},
		{"1.0__1", diag.NumberConsecutiveUnderscores, 3, ""},
		{"1_", diag.IntInvalid, 0, "1_"},
		{"0x1_", diag.IntInvalid, 0, "0x1_"},
		{"1._5", diag.FloatInvalid, 0, "1._5"},
		{"1e", diag.FloatInvalid, 0, "1e"},
		{"1e400", diag.FloatTooBig, 0, "1e400"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, ctx := parseString(t, tt.src)
			if got := codes(ctx); !slices.Equal(got, []diag.Code{tt.code}) {
				t.Fatalf("codes = %v, want [%v]", got, tt.code)
			}
			d := ctx.Diags.At(0)
			if d.Start != tt.at || ctx.Diags.Message(0) != tt.msg {
				t.Errorf("diagnostic at %d %q, want %d %q", d.Start, ctx.Diags.Message(0), tt.at, tt.msg)
			}
			last := tree.Len() - 1
			if tree.Tag(last) != ast.TagError {
				t.Errorf("last node = %v, want ERROR", tree.Tag(last))
			}
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src  string
		want []byte
	}{
		{`"a\tb"`, []byte{0x61, 0x09, 0x62}},
		{`r"a\tb"`, []byte(`a\tb`)},
		{"\"\"\"a\nb\"\"\"", []byte("a\nb")},
		{"'a\\\nb'", []byte("ab")},
		{`''`, []byte{}},
		{`'it\'s'`, []byte("it's")},
		{`"\x41\x00\xff"`, []byte{'A', 0, 0xff}},
		{`"\101\0"`, []byte{'A', 0}},
		{`"\1234"`, []byte("S4")},
		{`"\u00e9"`, []byte("é")},
		{`"\U0001F600"`, []byte("😀")},
		{`"\a\b\f\n\r\v\\\""`, []byte("\a\b\f\n\r\v\\\"")},
		{`b"\x41"`, []byte("A")},
		{`rb"\x41"`, []byte(`\x41`)},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, ctx := parseString(t, tt.src)
			if len(codes(ctx)) != 0 {
				t.Fatalf("unexpected diagnostics: %v", codes(ctx))
			}
			if tree.Tag(0) != ast.TagString {
				t.Fatalf("tag = %v", tree.Tag(0))
			}
			if got := tree.Str(0); !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestInvalidEscapes(t *testing.T) {
	tests := []struct {
		src string
		at  []uint32
		msg string
	}{
		{`"a\qb"`, []uint32{2}, `'\q'`},
		{`"\8"`, []uint32{1}, `'\8'`},
		{`"\400"`, []uint32{1}, `'\400'`},
		{`"\x4"`, []uint32{1}, `'\x4'`},
		{`"\xZZ"`, []uint32{1}, `'\xZZ'`},
		{`"\ud800"`, []uint32{1}, `unicode escape must be in the form \uXXXX or \UXXXXXXXX, where the Xs are a valid Unicode codepoint`},
		{`"\U00110000"`, []uint32{1}, `unicode escape must be in the form \uXXXX or \UXXXXXXXX, where the Xs are a valid Unicode codepoint`},
		{`x "\q\w"`, []uint32{3, 5}, `'\q'`},
		{`b'\q'`, []uint32{2}, `'\q'`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, ctx := parseString(t, tt.src)
			if ctx.Diags.Len() != len(tt.at) {
				t.Fatalf("codes = %v", codes(ctx))
			}
			for i, at := range tt.at {
				d := ctx.Diags.At(i)
				if d.Code != diag.InvalidEscape || d.Start != at {
					t.Errorf("diag %d = %v at %d, want INVALID_ESCAPE at %d", i, d.Code.Name(), d.Start, at)
				}
			}
			if msg := ctx.Diags.Message(0); msg != tt.msg {
				t.Errorf("message = %q, want %q", msg, tt.msg)
			}
			if tree.Tag(tree.Len()-1) != ast.TagError {
				t.Errorf("tags = %v", tree.Tags())
			}
		})
	}
}

func TestUnterminatedStringBecomesErrorNode(t *testing.T) {
	tree, ctx := parseString(t, `x "abc`)
	if got := codes(ctx); !slices.Equal(got, []diag.Code{diag.StringEOF}) {
		t.Fatalf("codes = %v", got)
	}
	if !slices.Equal(tree.Tags(), []ast.Tag{ast.TagIdent, ast.TagError}) {
		t.Fatalf("tags = %v", tree.Tags())
	}
	if tree.Ident(0) != "x" {
		t.Errorf("ident = %q", tree.Ident(0))
	}
}

func TestSkipsNewlinesAndComments(t *testing.T) {
	tree, _ := parseString(t, "a # c\n\nb\n")
	if !slices.Equal(tree.Tags(), []ast.Tag{ast.TagIdent, ast.TagIdent}) {
		t.Fatalf("tags = %v", tree.Tags())
	}
	if tree.Token(1) != 4 {
		t.Errorf("second node token = %d, want 4", tree.Token(1))
	}
}

func TestUnsupportedConstruct(t *testing.T) {
	ctx := session.New(session.Options{})
	defer ctx.Close()

	tree, err := parser.Parse(ctx, "t", []byte("x + 1"))
	if tree != nil {
		t.Fatal("tree must be discarded")
	}
	var ue *parser.UnsupportedError
	if !errors.As(err, &ue) || !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
	if ue.Kind != token.Plus || ue.Offset != 2 {
		t.Errorf("got %v at %d", ue.Kind, ue.Offset)
	}
	if got := codes(ctx); !slices.Equal(got, []diag.Code{diag.UnsupportedConstruct}) {
		t.Fatalf("codes = %v", got)
	}
	if ctx.Diags.Message(0) != "'+'" {
		t.Errorf("message = %q", ctx.Diags.Message(0))
	}
}

func TestFaultDiscardsTree(t *testing.T) {
	ctx := session.New(session.Options{})
	defer ctx.Close()
	stream, err := lexer.Lex(ctx, "t", []byte("a 1"))
	if err != nil {
		t.Fatal(err)
	}
	ctx.Fail(source.ErrPoolExhausted)
	tree, err := parser.ParseTokens(ctx, stream)
	if tree != nil || !errors.Is(err, source.ErrPoolExhausted) {
		t.Fatalf("ParseTokens after fault = %v, %v", tree, err)
	}
}

func TestIntLiteralOverSizeLimitIsFault(t *testing.T) {
	// 2^32000000 needs one limb more than either engine allows
	src := []byte("x 0x1" + strings.Repeat("0", 8_000_000))
	for _, e := range []bigint.Engine{bigint.Limbs, bigint.Big} {
		t.Run(e.Name(), func(t *testing.T) {
			ctx := session.New(session.Options{BigInt: e})
			defer ctx.Close()
			tree, err := parser.Parse(ctx, "big.star", src)
			if tree != nil || !errors.Is(err, bigint.ErrTooLarge) {
				t.Fatalf("Parse = %v, %v; want ErrTooLarge fault", tree, err)
			}
			if ctx.Diags.Len() != 0 {
				t.Errorf("size limit reported as diagnostics: %v", codes(ctx))
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	ctx := session.New(session.Options{})
	defer ctx.Close()
	tree, err := parser.ParseReader(ctx, "r.star", strings.NewReader("abc 7"))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Release()
	if ctx.DisplayName() != "r.star" || tree.Len() != 2 {
		t.Fatalf("name=%q len=%d", ctx.DisplayName(), tree.Len())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReaderError(t *testing.T) {
	ctx := session.New(session.Options{})
	defer ctx.Close()
	if _, err := parser.ParseReader(ctx, "bad", failingReader{}); err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Fatalf("err = %v", err)
	}
}

func TestDeterministic(t *testing.T) {
	src := []byte("a 0x1F 2.5 'x\\ty' \"\\q\" 0b2\n")
	var dumps [2]string
	for i := range dumps {
		ctx := session.New(session.Options{})
		tree, err := parser.Parse(ctx, "d", src)
		if err != nil {
			t.Fatal(err)
		}
		var sb strings.Builder
		for j, jEnd := 0, tree.Len(); j < jEnd; j++ {
			sb.WriteString(tree.Tag(j).String())
			sb.WriteByte(' ')
		}
		for _, d := range ctx.Diags.Items() {
			sb.WriteString(d.Code.Name())
			sb.WriteByte(' ')
		}
		dumps[i] = sb.String()
		tree.Release()
		ctx.Close()
	}
	if dumps[0] != dumps[1] {
		t.Fatalf("runs differ:\n%s\n%s", dumps[0], dumps[1])
	}
}

func TestSourceIsNotModified(t *testing.T) {
	src := []byte(`"a\tb" "\x41"`)
	orig := slices.Clone(src)
	ctx := session.New(session.Options{})
	defer ctx.Close()
	tree, err := parser.Parse(ctx, "t", src)
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Release()
	if !bytes.Equal(src, orig) {
		t.Fatalf("source modified: %q", src)
	}
}
