package gcode

import (
	"strconv"
	"strings"
)

// Word is a single gcode word. Arg is the literal argument; if Expr is
// non-empty the word carries an RS274 parameter expression instead
// (e.g. `X[[#1001+#1003]/2]`).
type Word struct {
	W    byte
	Arg  float64
	Expr string
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z': // maybe someday 'A', 'B', 'C', 'U', 'V', 'W':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

func (w Word) String() string {
	if w.Expr != "" {
		return string(w.W) + w.Expr
	}
	return string(w.W) + formatFloat(w.Arg, 4)
}
