package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probegen/probegen/coord"
)

func TestVM_Motion(t *testing.T) {
	vm := NewVM()

	require.NoError(t, vm.RunAll(MustParse("G21 G90\nG0 X10 Y5\nG91 G0 Z-10\nG90\nG1 X20 F100\n")))

	assert.Equal(t, coord.Point{X: 20, Y: 5, Z: -10}, vm.Pos())
	assert.Equal(t, 100.0, vm.Feed())
}

func TestVM_Spindle(t *testing.T) {
	vm := NewVM()

	require.NoError(t, vm.Run(Block{{W: 'M', Arg: 3}}))
	assert.True(t, vm.SpindleOn())

	require.NoError(t, vm.Run(Block{{W: 'M', Arg: 5}}))
	assert.False(t, vm.SpindleOn())
}

func TestVM_Probe(t *testing.T) {
	vm := NewVM()
	// wall at X=8, probing in +X
	vm.Surface = func(from, to coord.Point) (coord.Point, bool) {
		if to.X > from.X && from.X < 8 && to.X >= 8 {
			from.X = 8
			return from, true
		}
		return coord.Point{}, false
	}

	require.NoError(t, vm.RunAll(MustParse("G38.2 X50 F100\n#1001=#5061\n#1002=#5062\n")))

	assert.Equal(t, coord.Point{X: 8}, vm.Pos())
	v, ok := vm.Param("1001")
	assert.True(t, ok)
	assert.Equal(t, 8.0, v)
	v, ok = vm.Param("5070")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	// moving away from the wall: no contact is an error
	err := vm.Run(Block{{W: 'G', Arg: 38.2}, {W: 'X', Arg: -50}, {W: 'F', Arg: 100}})
	assert.Error(t, err)
}

func TestVM_ExpressionMove(t *testing.T) {
	vm := NewVM()
	vm.SetParam("1001", -10)
	vm.SetParam("1003", 30)

	require.NoError(t, vm.Run(Block{{W: 'G', Arg: 0}, {W: 'X', Expr: "[[#1001+#1003]/2]"}}))

	assert.Equal(t, 10.0, vm.Pos().X)
}

func TestVM_Assign(t *testing.T) {
	vm := NewVM()

	require.NoError(t, vm.Run(Assign{Param: "<angle>", Expr: "ATAN[10]/[10]"}))

	v, ok := vm.Param("angle")
	assert.True(t, ok)
	assert.InDelta(t, 45, v, 1e-9)
}

func TestVM_DebugMessages(t *testing.T) {
	vm := NewVM()
	vm.SetParam("angle", 5.25)

	require.NoError(t, vm.Run(Comment("DEBUG, edge angle: #<angle>")))
	require.NoError(t, vm.Run(Comment("plain comment")))

	assert.Equal(t, []string{"edge angle: 5.25"}, vm.Messages())
}

func TestVM_Unsupported(t *testing.T) {
	vm := NewVM()

	assert.Error(t, vm.Run(Block{{W: 'G', Arg: 33}}))
	assert.Error(t, vm.Run(Block{{W: 'X', Arg: 1}}))
	assert.Error(t, vm.Run(Block{{W: 'Q', Arg: 1}}))
}
