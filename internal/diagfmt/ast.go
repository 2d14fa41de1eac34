package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"clark/internal/ast"
)

// NodeOutput: узел дерева в JSON выводе.
type NodeOutput struct {
	Tag   string `json:"tag"`
	Token int    `json:"token"`
	Value string `json:"value,omitempty"`
}

// WriteAST prints one line per node in parse order:
//
//	IDENTIFIER: x
//	INT:        26
//	STRING:     'a\tb'
//	ERROR
func WriteAST(w io.Writer, t *ast.Tree) error {
	for i, iEnd := 0, t.Len(); i < iEnd; i++ {
		tag := t.Tag(i)
		var err error
		if tag == ast.TagError {
			_, err = fmt.Fprintln(w, tag)
		} else {
			_, err = fmt.Fprintf(w, "%-12s%s\n", tag.String()+":", NodeValue(t, i))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildASTJSON converts the node list of t.
func BuildASTJSON(t *ast.Tree) []NodeOutput {
	out := make([]NodeOutput, 0, t.Len())
	for i, iEnd := 0, t.Len(); i < iEnd; i++ {
		out = append(out, NodeOutput{
			Tag:   t.Tag(i).String(),
			Token: t.Token(i),
			Value: NodeValue(t, i),
		})
	}
	return out
}

// WriteASTJSON выводит дерево в JSON формате
func WriteASTJSON(w io.Writer, t *ast.Tree) error {
	return EncodeJSON(w, BuildASTJSON(t))
}

// NodeValue renders the value of node i ("" for error nodes).
func NodeValue(t *ast.Tree, i int) string {
	switch t.Tag(i) {
	case ast.TagIdent:
		return t.Ident(i)
	case ast.TagInt:
		s, err := t.Int(i).Text(10)
		if err != nil {
			return "?"
		}
		return s
	case ast.TagFloat:
		return strconv.FormatFloat(t.Float(i), 'g', -1, 64)
	case ast.TagString:
		return quoteSingle(t.Str(i))
	}
	return ""
}

// quoteSingle is strconv.Quote with single quotes.
func quoteSingle(b []byte) string {
	q := strconv.Quote(string(b))
	q = q[1 : len(q)-1]
	q = strings.ReplaceAll(q, `\"`, `"`)
	q = strings.ReplaceAll(q, `'`, `\'`)
	return "'" + q + "'"
}
