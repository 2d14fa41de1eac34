// Package diagfmt renders diagnostics, token streams and trees for humans
// (plain lines, coloured pretty output) and for tools (JSON).
package diagfmt
