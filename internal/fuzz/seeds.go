package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса

// handSeeds cover every lexer state and the classic failure shapes.
var handSeeds = []string{
	"",
	"x = 1\n",
	"name 0x1A 0o17 0b101 1_000 .5 3.14 1e10\n",
	`"a\tb" r"a\tb" b'\x41' rb"\q" """a` + "\n" + `b"""`,
	"'abc",
	"\"ab\ncd\"",
	"\xff\xfe a \xc3",
	"b'é'",
	`"\400 \8 \x4 \ud800 \U00110000"`,
	"0x 0b12 1__0 1_ 1._5 1e 1e400",
	"# comment \xff\n...**=//=<<=>>=!=",
	"'a\\\nb'",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range handSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds the parser golden inputs.
func addTestdataSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "parser", "testdata", "*.star"))
	if err != nil {
		return
	}
	for _, path := range paths {
		// #nosec G304 -- path comes from repository testdata glob
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.Add(clampSeed(src))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
