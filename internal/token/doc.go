// Package token defines lexical token kinds and the columnar token stream.
// Invariants:
//   - Tokens never copy text; Span indexes the borrowed source.
//   - String spans include prefix letters and quotes.
//   - Comment tokens are zero-length markers at '#'.
//   - Keywords are lexed as Ident and recognised via IsKeyword.
package token
