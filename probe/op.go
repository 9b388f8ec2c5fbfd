package probe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probegen/probegen/coord"
	"github.com/probegen/probegen/gcode"
)

const (
	DefaultDepth    = 10.0
	DefaultDistance = 50.0
	DefaultRetract  = 5.0
	DefaultFeedRate = 100.0
)

// Operation is a probing cycle that authors its own program.
type Operation interface {
	Kind() string
	Validate() error
	Generate(f *Fixture) (gcode.Program, error)
	OutputFileName(ext string) string
	Clone() Operation
}

// Params holds the settings every probing operation shares.
type Params struct {
	Title      string  `xml:"title,attr"`
	ToolNumber int     `xml:"tool,attr"`
	Depth      float64 `xml:"depth"`    // plunge below the start height before probing in
	Distance   float64 `xml:"distance"` // travel out from the start point before plunging
	FeedRate   float64 `xml:"feed"`
}

// NewParams returns shared parameters seeded for the given tool. When
// the tool number resolves to a touch probe, Depth starts at half the
// probe's length offset. This is a one-time seed: later edits to the
// tool record do not propagate back.
func NewParams(title string, toolNumber int, tools ToolTable) Params {
	p := Params{
		Title:      title,
		ToolNumber: toolNumber,
		Depth:      DefaultDepth,
		Distance:   DefaultDistance,
		FeedRate:   DefaultFeedRate,
	}
	if tools != nil {
		if t, ok := tools.Find(toolNumber); ok && t.Type == ToolTypeTouchProbe {
			p.Depth = t.LengthOffset / 2
		}
	}
	return p
}

// SpindleSpeed is always zero: the spindle never turns while probing.
func (p Params) SpindleSpeed() float64 { return 0 }

// Active is always false: probing operations are excluded from the
// normal program-generation traversal and invoked explicitly.
func (p Params) Active() bool { return false }

func (p Params) Validate() error {
	if p.Depth < 0 {
		return fmt.Errorf("depth must be non-negative, got %g", p.Depth)
	}
	if p.Distance < 0 {
		return fmt.Errorf("distance must be non-negative, got %g", p.Distance)
	}
	if p.FeedRate <= 0 {
		return fmt.Errorf("feed rate must be positive, got %g", p.FeedRate)
	}
	return nil
}

// OutputFileName derives the generated program's file name from the
// operation title and the requested extension.
func (p Params) OutputFileName(ext string) string {
	name := strings.ToLower(strings.TrimSpace(p.Title))
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	for strings.Contains(mapped, "__") {
		mapped = strings.ReplaceAll(mapped, "__", "_")
	}
	mapped = strings.Trim(mapped, "_")
	if mapped == "" {
		mapped = "probe"
	}
	return mapped + "." + strings.TrimPrefix(ext, ".")
}

// preamble opens every generated program: title, metric absolute
// modes, fixture select, spindle stop.
func (p Params) preamble(f *Fixture) gcode.Program {
	return gcode.Program{
		gcode.Comment(p.Title),
		gcode.Block{{W: 'G', Arg: 21}, {W: 'G', Arg: 90}},
		f.selectBlock(),
		gcode.Block{{W: 'M', Arg: 5}},
	}
}

// appendSingleProbe emits one elementary probe-and-retract move:
// rapid to the setup point, plunge down by depth, probe toward the
// probe point, record the contact into the two result parameters,
// rapid back to the retract point and raise by depth. Points are in
// the fixture's frame.
func (p Params) appendSingleProbe(prog gcode.Program, f *Fixture, setup, retract coord.Point, depth float64, probePoint coord.Point, varX, varY string) gcode.Program {
	s := f.transform(setup)
	r := f.transform(retract)
	t := f.transform(probePoint)

	return append(prog,
		gcode.Block{{W: 'G', Arg: 0}, {W: 'X', Arg: s.X}, {W: 'Y', Arg: s.Y}},
		gcode.Block{{W: 'G', Arg: 91}, {W: 'G', Arg: 0}, {W: 'Z', Arg: -depth}},
		gcode.Block{{W: 'G', Arg: 90}},
		gcode.Block{{W: 'G', Arg: 38.2}, {W: 'X', Arg: t.X}, {W: 'Y', Arg: t.Y}, {W: 'F', Arg: p.FeedRate}},
		gcode.Assign{Param: varX, Expr: "#5061"},
		gcode.Assign{Param: varY, Expr: "#5062"},
		gcode.Block{{W: 'G', Arg: 0}, {W: 'X', Arg: r.X}, {W: 'Y', Arg: r.Y}},
		gcode.Block{{W: 'G', Arg: 91}, {W: 'G', Arg: 0}, {W: 'Z', Arg: depth}},
		gcode.Block{{W: 'G', Arg: 90}},
	)
}

// contact is the pair of parameters holding one recorded probe
// intersection.
type contact struct{ x, y string }

// varAlloc hands out numbered intersection parameters starting at
// #1001, two per probe.
type varAlloc struct{ next int }

func (v *varAlloc) pair() contact {
	if v.next == 0 {
		v.next = 1001
	}
	c := contact{x: fmt.Sprint(v.next), y: fmt.Sprint(v.next + 1)}
	v.next += 2
	return c
}

func midExpr(a, b string) string {
	return "[[#" + a + "+#" + b + "]/2]"
}

func diffExpr(a, b string) string {
	return "[#" + a + "-#" + b + "]"
}

// signedNumber renders v with an explicit sign, for appending to an
// expression.
func signedNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v >= 0 {
		return "+" + s
	}
	return s
}
