package probe

import (
	"fmt"

	"github.com/probegen/probegen/coord"
	"github.com/probegen/probegen/gcode"
)

// Fixture is the work offset a probing program runs against. System is
// the coordinate system select code (54..59, default 54); Rotation is
// the fixture's XY rotation in degrees. Probe geometry is expressed in
// the fixture's frame and rotated into place on emission.
type Fixture struct {
	Name     string  `xml:"name,attr"`
	System   int     `xml:"system,attr"`
	Rotation float64 `xml:"rotation,attr"`
}

// Validate rejects select codes outside G54..G59. Zero selects the
// default, G54.
func (f Fixture) Validate() error {
	if f.System != 0 && (f.System < 54 || f.System > 59) {
		return fmt.Errorf("coordinate system must be 54..59, got %d", f.System)
	}
	return nil
}

func (f Fixture) selectBlock() gcode.Block {
	system := f.System
	if system == 0 {
		system = 54
	}
	return gcode.Block{{W: 'G', Arg: float64(system)}}
}

func (f Fixture) transform(p coord.Point) coord.Point {
	return p.RotateXY(f.Rotation)
}
