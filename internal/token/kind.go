package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Error marks bytes the lexer could not turn into a token; a diagnostic was recorded.
	Error Kind = iota
	// Ident covers identifiers and keywords alike; see IsKeyword.
	Ident
	// Number is any numeric literal, validated later by the parser.
	Number
	// String is any string or bytes literal including prefix and quotes.
	String
	// Newline is an unescaped '\n' outside literals.
	Newline
	// Comment is a zero-length marker at the '#' of a comment.
	Comment

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }

	Plus             // +
	PlusAssign       // +=
	Minus            // -
	MinusAssign      // -=
	Star             // *
	StarStar         // **
	StarAssign       // *=
	Slash            // /
	SlashSlash       // //
	SlashAssign      // /=
	SlashSlashAssign // //=
	Percent          // %
	PercentAssign    // %=
	Amp              // &
	AmpAssign        // &=
	Pipe             // |
	PipeAssign       // |=
	Caret            // ^
	CaretAssign      // ^=
	Tilde            // ~
	Shl              // <<
	ShlAssign        // <<=
	Shr              // >>
	ShrAssign        // >>=
	Assign           // =
	EqEq             // ==
	BangEq           // !=
	Lt               // <
	LtEq             // <=
	Gt               // >
	GtEq             // >=

	Comma     // ,
	Semicolon // ;
	Colon     // :
	Dot       // .
	Ellipsis  // ...

	kindCount
)

var kindNames = [kindCount]string{
	Error:            "ERROR",
	Ident:            "IDENT",
	Number:           "NUMBER",
	String:           "STRING",
	Newline:          "NEWLINE",
	Comment:          "COMMENT",
	LParen:           "LPAREN",
	RParen:           "RPAREN",
	LBracket:         "LBRACKET",
	RBracket:         "RBRACKET",
	LBrace:           "LBRACE",
	RBrace:           "RBRACE",
	Plus:             "PLUS",
	PlusAssign:       "PLUSEQ",
	Minus:            "MINUS",
	MinusAssign:      "MINUSEQ",
	Star:             "MUL",
	StarStar:         "EXP",
	StarAssign:       "MULEQ",
	Slash:            "DIV",
	SlashSlash:       "DIVINT",
	SlashAssign:      "DIVEQ",
	SlashSlashAssign: "DIVINTEQ",
	Percent:          "MOD",
	PercentAssign:    "MODEQ",
	Amp:              "BITAND",
	AmpAssign:        "BITANDEQ",
	Pipe:             "BITOR",
	PipeAssign:       "BITOREQ",
	Caret:            "XOR",
	CaretAssign:      "XOREQ",
	Tilde:            "BITNOT",
	Shl:              "LSHIFT",
	ShlAssign:        "LSHIFTEQ",
	Shr:              "RSHIFT",
	ShrAssign:        "RSHIFTEQ",
	Assign:           "ASSIGN",
	EqEq:             "EQ",
	BangEq:           "NOTEQ",
	Lt:               "LESS",
	LtEq:             "LEQ",
	Gt:               "GREATER",
	GtEq:             "GEQ",
	Comma:            "COMMA",
	Semicolon:        "SEMICOLON",
	Colon:            "COLON",
	Dot:              "DOT",
	Ellipsis:         "ELLIPSIS",
}

var kindLexemes = map[Kind]string{
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Plus: "+", PlusAssign: "+=", Minus: "-", MinusAssign: "-=",
	Star: "*", StarStar: "**", StarAssign: "*=",
	Slash: "/", SlashSlash: "//", SlashAssign: "/=", SlashSlashAssign: "//=",
	Percent: "%", PercentAssign: "%=", Amp: "&", AmpAssign: "&=",
	Pipe: "|", PipeAssign: "|=", Caret: "^", CaretAssign: "^=", Tilde: "~",
	Shl: "<<", ShlAssign: "<<=", Shr: ">>", ShrAssign: ">>=",
	Assign: "=", EqEq: "==", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Comma: ",", Semicolon: ";", Colon: ":", Dot: ".", Ellipsis: "...",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Lexeme returns the fixed spelling of punctuation and operators, "" otherwise.
func (k Kind) Lexeme() string {
	return kindLexemes[k]
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

// IsPunctOrOp reports whether the kind is a punctuation or operator.
func (k Kind) IsPunctOrOp() bool {
	return k >= LParen && k < kindCount
}

// IsTrivia reports kinds the parser skips between operands.
func (k Kind) IsTrivia() bool {
	return k == Newline || k == Comment
}
