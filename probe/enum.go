package probe

import (
	"fmt"

	"github.com/probegen/probegen/coord"
)

// Direction selects which way a centre probe travels: Inside starts
// over the feature and probes outward, Outside starts clear of the
// feature and probes back in.
type Direction int

const (
	Inside Direction = iota
	Outside
)

// Label returns the human-readable name. Unmapped values are an
// explicit error, never silent empty text.
func (d Direction) Label() (string, error) {
	switch d {
	case Inside:
		return "Inside", nil
	case Outside:
		return "Outside", nil
	}
	return "", fmt.Errorf("direction: unmapped value %d", int(d))
}

func (d Direction) String() string {
	s, err := d.Label()
	if err != nil {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return s
}

func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case Inside:
		return []byte("inside"), nil
	case Outside:
		return []byte("outside"), nil
	}
	return nil, fmt.Errorf("direction: unmapped value %d", int(d))
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "inside":
		*d = Inside
	case "outside":
		*d = Outside
	default:
		return fmt.Errorf("direction: unknown value %q", text)
	}
	return nil
}

// Edge identifies one side of the workpiece as seen from above.
type Edge int

const (
	Bottom Edge = iota
	Top
	Left
	Right
)

func (e Edge) Label() (string, error) {
	switch e {
	case Bottom:
		return "Bottom", nil
	case Top:
		return "Top", nil
	case Left:
		return "Left", nil
	case Right:
		return "Right", nil
	}
	return "", fmt.Errorf("edge: unmapped value %d", int(e))
}

func (e Edge) String() string {
	s, err := e.Label()
	if err != nil {
		return fmt.Sprintf("Edge(%d)", int(e))
	}
	return s
}

func (e Edge) MarshalText() ([]byte, error) {
	switch e {
	case Bottom:
		return []byte("bottom"), nil
	case Top:
		return []byte("top"), nil
	case Left:
		return []byte("left"), nil
	case Right:
		return []byte("right"), nil
	}
	return nil, fmt.Errorf("edge: unmapped value %d", int(e))
}

func (e *Edge) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bottom":
		*e = Bottom
	case "top":
		*e = Top
	case "left":
		*e = Left
	case "right":
		*e = Right
	default:
		return fmt.Errorf("edge: unknown value %q", text)
	}
	return nil
}

// tangent is the direction along the edge; horizontal edges run along
// X, vertical edges along Y.
func (e Edge) tangent() coord.Point {
	if e == Bottom || e == Top {
		return coord.Point{X: 1}
	}
	return coord.Point{Y: 1}
}

// normal points from clear space into the material.
func (e Edge) normal() coord.Point {
	switch e {
	case Bottom:
		return coord.Point{Y: 1}
	case Top:
		return coord.Point{Y: -1}
	case Left:
		return coord.Point{X: 1}
	}
	return coord.Point{X: -1}
}

// Corner identifies the meeting point of two perpendicular edges.
type Corner int

const (
	BottomLeft Corner = iota
	BottomRight
	TopLeft
	TopRight
)

func (c Corner) Label() (string, error) {
	switch c {
	case BottomLeft:
		return "Bottom Left", nil
	case BottomRight:
		return "Bottom Right", nil
	case TopLeft:
		return "Top Left", nil
	case TopRight:
		return "Top Right", nil
	}
	return "", fmt.Errorf("corner: unmapped value %d", int(c))
}

func (c Corner) String() string {
	s, err := c.Label()
	if err != nil {
		return fmt.Sprintf("Corner(%d)", int(c))
	}
	return s
}

func (c Corner) MarshalText() ([]byte, error) {
	switch c {
	case BottomLeft:
		return []byte("bottom-left"), nil
	case BottomRight:
		return []byte("bottom-right"), nil
	case TopLeft:
		return []byte("top-left"), nil
	case TopRight:
		return []byte("top-right"), nil
	}
	return nil, fmt.Errorf("corner: unmapped value %d", int(c))
}

func (c *Corner) UnmarshalText(text []byte) error {
	switch string(text) {
	case "bottom-left":
		*c = BottomLeft
	case "bottom-right":
		*c = BottomRight
	case "top-left":
		*c = TopLeft
	case "top-right":
		*c = TopRight
	default:
		return fmt.Errorf("corner: unknown value %q", text)
	}
	return nil
}

// edges returns the two perpendicular edges meeting at the corner.
func (c Corner) edges() (Edge, Edge) {
	switch c {
	case BottomLeft:
		return Bottom, Left
	case BottomRight:
		return Bottom, Right
	case TopLeft:
		return Top, Left
	}
	return Top, Right
}

// tangentFrom is the direction along edge e moving away from the
// corner.
func (c Corner) tangentFrom(e Edge) coord.Point {
	t := e.tangent()
	switch {
	case e == Bottom || e == Top:
		if c == BottomRight || c == TopRight {
			return t.Mul(-1)
		}
	default:
		if c == TopLeft || c == TopRight {
			return t.Mul(-1)
		}
	}
	return t
}
