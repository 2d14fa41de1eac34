package ast

// Tag is the kind of a leaf node.
type Tag uint8

const (
	// TagError stands in for an operand that failed to lex or evaluate.
	TagError Tag = iota
	TagIdent
	TagInt
	TagFloat
	TagString
)

func (t Tag) String() string {
	switch t {
	case TagError:
		return "ERROR"
	case TagIdent:
		return "IDENTIFIER"
	case TagInt:
		return "INT"
	case TagFloat:
		return "FLOAT"
	case TagString:
		return "STRING"
	}
	return "UNKNOWN"
}
