package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Parser struct{ br *bufio.Reader }

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReader(r)}
}

// Read returns the next statement: a Comment, an Assign, or a word
// Block. Word arguments may be literals, bracketed expressions, or
// parameter references.
func (p *Parser) Read() (Statement, error) {
	for {
		s, err := p.br.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		if err != nil {
			return nil, err
		}

		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		switch s[0] {
		case '(':
			if !strings.HasSuffix(s, ")") {
				return nil, errors.New("unterminated comment: " + s)
			}
			return Comment(s[1 : len(s)-1]), nil
		case '#':
			return parseAssign(s)
		default:
			return parseBlock(s)
		}
	}
}

func parseAssign(s string) (Assign, error) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return Assign{}, errors.New("missing '=' in assignment: " + s)
	}
	param := strings.TrimSpace(s[1:eq])
	expr := strings.TrimSpace(s[eq+1:])
	if param == "" || expr == "" {
		return Assign{}, errors.New("malformed assignment: " + s)
	}
	return Assign{Param: param, Expr: expr}, nil
}

func parseBlock(s string) (Block, error) {
	var b Block
	i := 0
	for i < len(s) {
		if s[i] == ' ' || s[i] == '\t' {
			i++
			continue
		}
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("expected word letter at %q", s[i:])
		}
		i++
		w := Word{W: c}

		switch {
		case i < len(s) && s[i] == '[':
			expr, n, err := scanBracketed(s[i:])
			if err != nil {
				return nil, err
			}
			w.Expr = expr
			i += n
		case i < len(s) && s[i] == '#':
			start := i
			i++
			if _, err := scanParamKey(s, &i); err != nil {
				return nil, err
			}
			w.Expr = s[start:i]
		default:
			start := i
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.' || s[i] == '-') {
				i++
			}
			arg, err := strconv.ParseFloat(s[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("bad argument for %c in %q", c, s)
			}
			w.Arg = arg
		}
		b = append(b, w)
	}

	if len(b) == 0 {
		return nil, errors.New("empty block")
	}
	return b, b.Validate()
}

// scanBracketed returns the balanced bracket group at the start of s
// and the number of bytes consumed.
func scanBracketed(s string) (string, int, error) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[:i+1], i + 1, nil
			}
		}
	}
	return "", 0, errors.New("unbalanced brackets in " + s)
}

func Parse(data string) (Program, error) {
	r := NewParser(strings.NewReader(data))
	var prog Program
	for {
		st, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		prog = append(prog, st)
	}
	return prog, nil
}

func MustParse(data string) Program {
	p, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return p
}
