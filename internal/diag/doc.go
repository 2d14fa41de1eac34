// Package diag defines the diagnostic model shared by the lexer and parser.
//
// A diagnostic is a Code, the byte offset where the problem starts, and an
// optional message interned in the session's source.Pool. Diagnostics are
// stored column-wise in a List capped at MaxDiagnostics (65,534) entries;
// appends past the cap are dropped without error.
//
// Phases emit through Reporter and never format anything themselves.
// Rendering into `<name>:<line>:<col>: <reason>[ <message>]` lines, colour
// output and JSON lives in internal/diagfmt.
package diag
