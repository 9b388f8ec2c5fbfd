package gcode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParamFunc resolves a parameter reference. The key is the text after
// '#' with any angle brackets stripped: "5061", "1001", "angle".
type ParamFunc func(key string) (float64, bool)

// EvalExpr evaluates an RS274 parameter expression: numbers, parameter
// references, brackets, + - * /, unary minus, and the two-argument
// ATAN[dy]/[dx] form (result in degrees).
func EvalExpr(s string, params ParamFunc) (float64, error) {
	ev := &exprScanner{s: s, params: params}
	v, err := ev.expr()
	if err != nil {
		return 0, err
	}
	ev.skipSpace()
	if ev.i != len(ev.s) {
		return 0, fmt.Errorf("unexpected %q in expression %q", ev.s[ev.i:], s)
	}
	return v, nil
}

type exprScanner struct {
	s      string
	i      int
	params ParamFunc
}

func (ev *exprScanner) skipSpace() {
	for ev.i < len(ev.s) && (ev.s[ev.i] == ' ' || ev.s[ev.i] == '\t') {
		ev.i++
	}
}

func (ev *exprScanner) peek() byte {
	ev.skipSpace()
	if ev.i == len(ev.s) {
		return 0
	}
	return ev.s[ev.i]
}

func (ev *exprScanner) expr() (float64, error) {
	v, err := ev.term()
	if err != nil {
		return 0, err
	}
	for {
		switch ev.peek() {
		case '+':
			ev.i++
			t, err := ev.term()
			if err != nil {
				return 0, err
			}
			v += t
		case '-':
			ev.i++
			t, err := ev.term()
			if err != nil {
				return 0, err
			}
			v -= t
		default:
			return v, nil
		}
	}
}

func (ev *exprScanner) term() (float64, error) {
	v, err := ev.factor()
	if err != nil {
		return 0, err
	}
	for {
		switch ev.peek() {
		case '*':
			ev.i++
			f, err := ev.factor()
			if err != nil {
				return 0, err
			}
			v *= f
		case '/':
			ev.i++
			f, err := ev.factor()
			if err != nil {
				return 0, err
			}
			if f == 0 {
				return 0, errors.New("division by zero in expression")
			}
			v /= f
		default:
			return v, nil
		}
	}
}

func (ev *exprScanner) factor() (float64, error) {
	c := ev.peek()
	switch {
	case c == '-':
		ev.i++
		v, err := ev.factor()
		return -v, err
	case c == '[':
		return ev.bracket()
	case c == '#':
		return ev.param()
	case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		return ev.atan()
	case c >= '0' && c <= '9' || c == '.':
		return ev.number()
	}
	return 0, fmt.Errorf("unexpected character %q in expression", string(c))
}

func (ev *exprScanner) bracket() (float64, error) {
	ev.i++ // consume '['
	v, err := ev.expr()
	if err != nil {
		return 0, err
	}
	if ev.peek() != ']' {
		return 0, errors.New("missing ']' in expression")
	}
	ev.i++
	return v, nil
}

func (ev *exprScanner) number() (float64, error) {
	start := ev.i
	for ev.i < len(ev.s) && (ev.s[ev.i] >= '0' && ev.s[ev.i] <= '9' || ev.s[ev.i] == '.') {
		ev.i++
	}
	v, err := strconv.ParseFloat(ev.s[start:ev.i], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q in expression", ev.s[start:ev.i])
	}
	return v, nil
}

func (ev *exprScanner) param() (float64, error) {
	ev.i++ // consume '#'
	key, err := scanParamKey(ev.s, &ev.i)
	if err != nil {
		return 0, err
	}
	if ev.params == nil {
		return 0, fmt.Errorf("unresolved parameter #%s", key)
	}
	v, ok := ev.params(key)
	if !ok {
		return 0, fmt.Errorf("undefined parameter #%s", key)
	}
	return v, nil
}

func (ev *exprScanner) atan() (float64, error) {
	rest := ev.s[ev.i:]
	if len(rest) < 4 || !strings.EqualFold(rest[:4], "ATAN") {
		return 0, fmt.Errorf("unknown function in expression %q", ev.s)
	}
	ev.i += 4
	if ev.peek() != '[' {
		return 0, errors.New("ATAN requires a bracketed argument")
	}
	dy, err := ev.bracket()
	if err != nil {
		return 0, err
	}
	if ev.peek() != '/' {
		return 0, errors.New("ATAN requires the form ATAN[dy]/[dx]")
	}
	ev.i++
	if ev.peek() != '[' {
		return 0, errors.New("ATAN requires the form ATAN[dy]/[dx]")
	}
	dx, err := ev.bracket()
	if err != nil {
		return 0, err
	}
	return math.Atan2(dy, dx) * 180 / math.Pi, nil
}

// scanParamKey reads a parameter key at s[*i]: either a digit run or a
// <name> in angle brackets. Named keys are lowercased.
func scanParamKey(s string, i *int) (string, error) {
	if *i < len(s) && s[*i] == '<' {
		end := strings.IndexByte(s[*i:], '>')
		if end < 0 {
			return "", errors.New("missing '>' in parameter name")
		}
		key := strings.ToLower(s[*i+1 : *i+end])
		*i += end + 1
		if key == "" {
			return "", errors.New("empty parameter name")
		}
		return key, nil
	}
	start := *i
	for *i < len(s) && s[*i] >= '0' && s[*i] <= '9' {
		*i++
	}
	if *i == start {
		return "", errors.New("malformed parameter reference")
	}
	return s[start:*i], nil
}
