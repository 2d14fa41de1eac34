package diagfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"clark/internal/session"
)

// WriteDiagnostics prints one line per diagnostic in recording order:
//
//	<name>:<line>:<col>: <reason>[ <message>]
func WriteDiagnostics(w io.Writer, ctx *session.Context) error {
	bw := bufio.NewWriter(w)
	for i, iEnd := 0, ctx.Diags.Len(); i < iEnd; i++ {
		bw.WriteString(Line(ctx, i))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// FormatDiagnostics is WriteDiagnostics into a string.
func FormatDiagnostics(ctx *session.Context) string {
	var sb strings.Builder
	_ = WriteDiagnostics(&sb, ctx) //nolint:errcheck // strings.Builder never fails
	return sb.String()
}

// Line renders diagnostic i of ctx.
func Line(ctx *session.Context, i int) string {
	d := ctx.Diags.At(i)
	name := ctx.DisplayName()
	var line, col uint32 = 1, d.Start + 1
	if ctx.File != nil {
		pos := ctx.File.Position(d.Start)
		line, col = pos.Line, pos.Col
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(line), 10))
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatUint(uint64(col), 10))
	sb.WriteString(": ")
	sb.WriteString(d.Code.Reason())
	if msg := ctx.Diags.Message(i); msg != "" {
		sb.WriteByte(' ')
		sb.WriteString(msg)
	}
	return sb.String()
}
