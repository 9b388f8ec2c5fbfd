package probe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probegen/probegen/coord"
	"github.com/probegen/probegen/gcode"
)

// wall is one face of simulated material: an infinite boundary line
// and the direction pointing from clear space into the material.
type wall struct {
	line coord.Line
	in   coord.Point
}

// walls builds a gcode.Surface returning the first face crossed while
// moving into material.
func walls(ws ...wall) gcode.Surface {
	return func(from, to coord.Point) (coord.Point, bool) {
		d := to.Sub(from)
		best := math.MaxFloat64
		var hit coord.Point
		var found bool
		for _, w := range ws {
			if d.Dot(w.in) <= 0 {
				continue
			}
			dir := w.line.B.Sub(w.line.A)
			denom := dir.X*d.Y - dir.Y*d.X
			if denom == 0 {
				continue
			}
			rel := from.Sub(w.line.A)
			t := -(dir.X*rel.Y - dir.Y*rel.X) / denom
			if t < 1e-9 || t > 1 || t >= best {
				continue
			}
			best = t
			hit = from.Add(d.Mul(t))
			found = true
		}
		return hit, found
	}
}

func vwall(x float64, in coord.Point) wall {
	return wall{line: coord.Line{A: coord.Point{X: x}, B: coord.Point{X: x, Y: 1}}, in: in}
}

func hwall(y float64, in coord.Point) wall {
	return wall{line: coord.Line{A: coord.Point{Y: y}, B: coord.Point{X: 1, Y: y}}, in: in}
}

// run generates the operation's program, reparses its text and
// executes it against the surface, starting at the fixture origin.
func run(t *testing.T, op Operation, f *Fixture, surface gcode.Surface) *gcode.VM {
	t.Helper()

	prog, err := op.Generate(f)
	require.NoError(t, err)

	parsed, err := gcode.Parse(prog.String())
	require.NoError(t, err)

	vm := gcode.NewVM()
	vm.Surface = surface
	require.NoError(t, vm.RunAll(parsed))
	require.False(t, vm.SpindleOn(), "probing must never start the spindle")
	return vm
}
