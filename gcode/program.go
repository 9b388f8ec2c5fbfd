package gcode

import (
	"fmt"
	"io"
	"strings"
)

// Statement is one line of a generated program: a word Block, a
// parameter Assign, or a Comment.
type Statement interface {
	fmt.Stringer
	isStatement()
}

// Assign sets an RS274 parameter to the value of an expression.
// Param is the text after '#': digits ("1001") or a bracketed
// name ("<angle>").
type Assign struct {
	Param string
	Expr  string
}

func (a Assign) String() string { return "#" + a.Param + "=" + a.Expr }
func (a Assign) isStatement()   {}

// Comment renders as a parenthesized gcode comment.
type Comment string

func (c Comment) String() string { return "(" + string(c) + ")" }
func (c Comment) isStatement()   {}

// Program is an ordered sequence of statements.
type Program []Statement

func (p Program) String() string {
	var sb strings.Builder
	for _, st := range p {
		sb.WriteString(st.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p Program) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}
