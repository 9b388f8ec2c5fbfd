package probe

import (
	"errors"
	"fmt"

	"github.com/probegen/probegen/coord"
	"github.com/probegen/probegen/gcode"
)

// EdgeProbe authors a program that finds the direction of one
// workpiece edge, or the intersection point of two perpendicular
// edges meeting at a corner.
//
// The program assumes the machine starts clear of the material, just
// off the probed corner or edge, with the fixture origin at that
// start point.
type EdgeProbe struct {
	Params
	Retract   float64 `xml:"retract"` // back-off from the travel line before the final probing pass
	EdgeCount int     `xml:"edges"`   // 1 or 2 only
	Edge      Edge    `xml:"edge"`    // consulted only when EdgeCount == 1
	Corner    Corner  `xml:"corner"`  // consulted only when EdgeCount == 2
}

func NewEdgeProbe(toolNumber int, tools ToolTable, edges int, edge Edge, corner Corner) (*EdgeProbe, error) {
	op := &EdgeProbe{
		Params:    NewParams("Probe Edge", toolNumber, tools),
		Retract:   DefaultRetract,
		EdgeCount: edges,
		Edge:      edge,
		Corner:    corner,
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func (op *EdgeProbe) Kind() string { return "edge" }

func (op *EdgeProbe) Clone() Operation {
	c := *op
	return &c
}

func (op *EdgeProbe) Validate() error {
	if err := op.Params.Validate(); err != nil {
		return err
	}
	if op.Retract < 0 {
		return fmt.Errorf("retract must be non-negative, got %g", op.Retract)
	}
	switch op.EdgeCount {
	case 1:
		if _, err := op.Edge.Label(); err != nil {
			return err
		}
	case 2:
		if _, err := op.Corner.Label(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("edge count must be 1 or 2, got %d", op.EdgeCount)
	}
	return nil
}

// Generate probes each edge at two points spaced Distance apart and
// reports the edge's angle. With two edges it also intersects the two
// probed lines and finishes with a rapid to the corner point.
func (op *EdgeProbe) Generate(f *Fixture) (gcode.Program, error) {
	if f == nil {
		return nil, errors.New("nil fixture")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var vars varAlloc
	prog := op.preamble(f)

	if op.EdgeCount == 1 {
		prog, cs := op.appendEdge(prog, f, &vars, op.Edge, op.Edge.tangent())
		return append(prog,
			gcode.Assign{Param: "<angle>", Expr: angleExpr(op.Edge, op.Edge.tangent(), cs, f.Rotation)},
			gcode.Comment("DEBUG, edge angle: #<angle>"),
		), nil
	}

	e1, e2 := op.Corner.edges()
	t1 := op.Corner.tangentFrom(e1)
	t2 := op.Corner.tangentFrom(e2)
	prog, c1 := op.appendEdge(prog, f, &vars, e1, t1)
	prog, c2 := op.appendEdge(prog, f, &vars, e2, t2)

	prog = append(prog,
		gcode.Assign{Param: "<angle_1>", Expr: angleExpr(e1, t1, c1, f.Rotation)},
		gcode.Comment("DEBUG, first edge angle: #<angle_1>"),
		gcode.Assign{Param: "<angle_2>", Expr: angleExpr(e2, t2, c2, f.Rotation)},
		gcode.Comment("DEBUG, second edge angle: #<angle_2>"),
	)
	return appendIntersection(prog, c1, c2), nil
}

// appendEdge probes one edge at two points along tangent. The second
// probe starts Retract further off the travel line, so the final pass
// always approaches from a known back-off.
func (op *EdgeProbe) appendEdge(prog gcode.Program, f *Fixture, vars *varAlloc, e Edge, tangent coord.Point) (gcode.Program, [2]contact) {
	normal := e.normal()
	var cs [2]contact
	for i := 0; i < 2; i++ {
		along := tangent.Mul(float64(i+1) * op.Distance)
		setup := along
		if i == 1 {
			setup = along.Sub(normal.Mul(op.Retract))
		}
		target := along.Add(normal.Mul(op.Distance))
		cs[i] = vars.pair()
		prog = op.appendSingleProbe(prog, f, setup, setup, op.Depth, target, cs[i].x, cs[i].y)
	}
	return prog, cs
}

// angleExpr reports the probed line's angle against the edge's
// nominal axis: X for horizontal edges, Y for vertical ones. The
// contacts are ordered along the positive axis first so the reported
// angle is the small deviation, not its supplement. Contacts are in
// machine coordinates, so the fixture rotation is backed out to make
// the report relative to the fixture's axis.
func angleExpr(e Edge, tangent coord.Point, cs [2]contact, rotation float64) string {
	a, b := cs[0], cs[1]
	if tangent.X+tangent.Y < 0 {
		a, b = b, a
	}
	dx := diffExpr(b.x, a.x)
	dy := diffExpr(b.y, a.y)
	expr := "ATAN" + dy + "/" + dx
	offset := -rotation
	if e == Left || e == Right {
		expr = "ATAN" + dx + "/" + dy
		offset = rotation
	}
	if offset == 0 {
		return expr
	}
	return "[" + expr + signedNumber(offset) + "]"
}

// appendIntersection emits the parameter math intersecting the two
// probed edge lines and the rapid move onto that corner point.
func appendIntersection(prog gcode.Program, a, b [2]contact) gcode.Program {
	return append(prog,
		gcode.Assign{Param: "<cross_1>", Expr: "[#" + a[0].x + "*#" + a[1].y + "-#" + a[0].y + "*#" + a[1].x + "]"},
		gcode.Assign{Param: "<cross_2>", Expr: "[#" + b[0].x + "*#" + b[1].y + "-#" + b[0].y + "*#" + b[1].x + "]"},
		gcode.Assign{Param: "<den>", Expr: "[" + diffExpr(a[0].x, a[1].x) + "*" + diffExpr(b[0].y, b[1].y) + "-" + diffExpr(a[0].y, a[1].y) + "*" + diffExpr(b[0].x, b[1].x) + "]"},
		gcode.Assign{Param: "<corner_x>", Expr: "[[#<cross_1>*" + diffExpr(b[0].x, b[1].x) + "-" + diffExpr(a[0].x, a[1].x) + "*#<cross_2>]/#<den>]"},
		gcode.Assign{Param: "<corner_y>", Expr: "[[#<cross_1>*" + diffExpr(b[0].y, b[1].y) + "-" + diffExpr(a[0].y, a[1].y) + "*#<cross_2>]/#<den>]"},
		gcode.Comment("move to the probed corner"),
		gcode.Block{{W: 'G', Arg: 0}, {W: 'X', Expr: "#<corner_x>"}, {W: 'Y', Expr: "#<corner_y>"}},
	)
}
