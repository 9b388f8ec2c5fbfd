package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalExpr(t *testing.T) {
	params := func(key string) (float64, bool) {
		switch key {
		case "1001":
			return -10, true
		case "1003":
			return 30, true
		case "angle":
			return 45, true
		}
		return 0, false
	}

	tests := []struct {
		expr string
		want float64
	}{
		{"5", 5},
		{"-2.5", -2.5},
		{"1+2*3", 7},
		{"[1+2]*3", 9},
		{"[[#1001+#1003]/2]", 10},
		{"#<angle>", 45},
		{"#<ANGLE>", 45},
		{"ATAN[10]/[10]", 45},
		{"ATAN[-1]/[0]", -90},
		{"[#1003-#1001]*0.5", 20},
	}
	for _, tt := range tests {
		got, err := EvalExpr(tt.expr, params)
		assert.NoError(t, err, tt.expr)
		assert.InDelta(t, tt.want, got, 1e-9, tt.expr)
	}
}

func TestEvalExpr_Errors(t *testing.T) {
	tests := []string{
		"",
		"[1+2",
		"1/0",
		"#9999",
		"#<missing>",
		"SIN[1]",
		"ATAN[1]",
		"1 2",
	}
	for _, expr := range tests {
		_, err := EvalExpr(expr, func(string) (float64, bool) { return 0, false })
		assert.Error(t, err, expr)
	}
}
