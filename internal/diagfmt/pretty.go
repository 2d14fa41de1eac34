package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"clark/internal/session"
)

// Pretty writes diagnostics in a human-oriented format:
//
//	error[LEX1003]: newline in string literal
//	  --> main.star:2:7
//	   |
//	 2 | x = "abc
//	   |       ^
func Pretty(w io.Writer, ctx *session.Context, opts PrettyOpts) error {
	prev := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = prev }()

	head := color.New(color.FgRed, color.Bold)
	code := color.New(color.FgRed)
	arrow := color.New(color.FgBlue, color.Bold)
	bold := color.New(color.Bold)

	name := ctx.DisplayName()
	for i, iEnd := 0, ctx.Diags.Len(); i < iEnd; i++ {
		d := ctx.Diags.At(i)

		title := strings.TrimSuffix(d.Code.Reason(), ":")
		if msg := ctx.Diags.Message(i); msg != "" {
			title += " " + msg
		}
		if _, err := fmt.Fprintf(w, "%s%s: %s\n",
			head.Sprint("error"), code.Sprintf("[%s]", d.Code.ID()), bold.Sprint(title)); err != nil {
			return err
		}

		if ctx.File == nil {
			continue
		}
		pos := ctx.File.Position(d.Start)
		if _, err := fmt.Fprintf(w, "  %s %s:%d:%d\n", arrow.Sprint("-->"), name, pos.Line, pos.Col); err != nil {
			return err
		}
		if !opts.ShowPreview {
			continue
		}
		if err := writePreview(w, ctx, d.Start, arrow); err != nil {
			return err
		}
	}
	if ctx.Diags.Full() {
		_, err := fmt.Fprintf(w, "%s: diagnostic limit %d reached, later diagnostics were dropped\n",
			bold.Sprint("note"), ctx.Diags.Limit())
		return err
	}
	return nil
}

func writePreview(w io.Writer, ctx *session.Context, off uint32, gutter *color.Color) error {
	pos := ctx.File.Position(off)
	line := strings.TrimRight(ctx.File.GetLine(pos.Line), "\r")
	num := fmt.Sprint(pos.Line)
	pad := strings.Repeat(" ", len(num))

	// колонка считается в байтах, а каретку ставим по ширине на экране
	prefix := line
	if c := int(pos.Col) - 1; c < len(prefix) {
		prefix = prefix[:c]
	}
	caret := strings.Repeat(" ", runewidth.StringWidth(prefix)) + "^"

	_, err := fmt.Fprintf(w, " %s %s\n %s %s %s\n %s %s %s\n",
		pad, gutter.Sprint("|"),
		num, gutter.Sprint("|"), line,
		pad, gutter.Sprint("|"), color.New(color.FgRed, color.Bold).Sprint(caret))
	return err
}
