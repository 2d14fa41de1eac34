package diagfmt

import (
	"encoding/json"
	"io"

	"clark/internal/session"
)

// LocationJSON описывает позицию диагностики
type LocationJSON struct {
	File   string `json:"file"`
	Offset uint32 `json:"offset"`
	Line   uint32 `json:"line,omitempty"`
	Col    uint32 `json:"col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Code     string       `json:"code"`
	Name     string       `json:"name"`
	Reason   string       `json:"reason"`
	Message  string       `json:"message,omitempty"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput is the root object of JSON diagnostics.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"` // лимит List достигнут
	Fault       string           `json:"fault,omitempty"`
}

// BuildDiagnosticsJSON converts the diagnostics of ctx.
func BuildDiagnosticsJSON(ctx *session.Context, opts JSONOpts) DiagnosticsOutput {
	n := ctx.Diags.Len()
	if opts.Max > 0 && n > opts.Max {
		n = opts.Max
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, n),
		Count:       ctx.Diags.Len(),
		Truncated:   ctx.Diags.Full(),
	}
	if err := ctx.Fault(); err != nil {
		out.Fault = err.Error()
	}

	name := ctx.DisplayName()
	for i, iEnd := 0, n; i < iEnd; i++ {
		d := ctx.Diags.At(i)
		loc := LocationJSON{File: name, Offset: d.Start}
		if opts.IncludePositions && ctx.File != nil {
			pos := ctx.File.Position(d.Start)
			loc.Line, loc.Col = pos.Line, pos.Col
		}
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Code:     d.Code.ID(),
			Name:     d.Code.Name(),
			Reason:   d.Code.Reason(),
			Message:  ctx.Diags.Message(i),
			Location: loc,
		})
	}
	return out
}

// JSON writes diagnostics of ctx as an indented JSON document.
func JSON(w io.Writer, ctx *session.Context, opts JSONOpts) error {
	return EncodeJSON(w, BuildDiagnosticsJSON(ctx, opts))
}

// EncodeJSON writes v as indented JSON followed by a newline.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
