package token

// keywords of the language plus words reserved for future use.
// The lexer does not split them out of Ident.
var keywords = map[string]struct{}{
	"and": {}, "break": {}, "continue": {}, "def": {}, "elif": {}, "else": {},
	"for": {}, "if": {}, "in": {}, "lambda": {}, "load": {}, "not": {},
	"or": {}, "pass": {}, "return": {},

	// зарезервированы
	"as": {}, "assert": {}, "async": {}, "await": {}, "class": {}, "del": {},
	"except": {}, "finally": {}, "from": {}, "global": {}, "import": {},
	"is": {}, "nonlocal": {}, "raise": {}, "try": {}, "while": {}, "with": {},
	"yield": {},
}

// IsKeyword reports whether text is a keyword or reserved word.
// Case matters: "If" is an identifier.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}
