package probe

import (
	"errors"
	"fmt"

	"github.com/probegen/probegen/coord"
	"github.com/probegen/probegen/gcode"
)

// CentreProbe authors a program that locates the midpoint between two
// opposing probe contacts, or the 2-D centre of a feature probed on
// both axes.
type CentreProbe struct {
	Params
	Direction  Direction `xml:"direction"`
	PointCount int       `xml:"points"` // 2 or 4 only
}

func NewCentreProbe(toolNumber int, tools ToolTable, direction Direction, points int) (*CentreProbe, error) {
	op := &CentreProbe{
		Params:     NewParams("Probe Centre", toolNumber, tools),
		Direction:  direction,
		PointCount: points,
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func (op *CentreProbe) Kind() string { return "centre" }

func (op *CentreProbe) Clone() Operation {
	c := *op
	return &c
}

func (op *CentreProbe) Validate() error {
	if err := op.Params.Validate(); err != nil {
		return err
	}
	if _, err := op.Direction.Label(); err != nil {
		return err
	}
	if op.PointCount != 2 && op.PointCount != 4 {
		return fmt.Errorf("point count must be 2 or 4, got %d", op.PointCount)
	}
	return nil
}

// Generate probes the feature from opposite sides along X (and along
// Y for a 4-point cycle) and finishes with a rapid to the midpoint of
// the recorded contacts.
func (op *CentreProbe) Generate(f *Fixture) (gcode.Program, error) {
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

	axes := []coord.Point{{X: 1}}
	if op.PointCount == 4 {
		axes = append(axes, coord.Point{Y: 1})
	}

	var contacts []contact
	for _, axis := range axes {
		for _, sign := range []float64{-1, 1} {
			out := axis.Mul(sign * op.Distance)
			// Inside probes from the start point out to the feature
			// wall; Outside starts clear of the feature and probes
			// back toward the start point.
			setup, target := coord.Point{}, out
			if op.Direction == Outside {
				setup, target = out, coord.Point{}
			}
			c := vars.pair()
			prog = op.appendSingleProbe(prog, f, setup, setup, op.Depth, target, c.x, c.y)
			contacts = append(contacts, c)
		}
	}

	x := midExpr(contacts[0].x, contacts[1].x)
	y := midExpr(contacts[0].y, contacts[1].y)
	if op.PointCount == 4 {
		y = midExpr(contacts[2].y, contacts[3].y)
	}
	return append(prog,
		gcode.Comment("move to the probed centre"),
		gcode.Block{{W: 'G', Arg: 0}, {W: 'X', Expr: x}, {W: 'Y', Expr: y}},
	), nil
}
