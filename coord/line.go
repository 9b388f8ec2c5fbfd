package coord

import (
	"errors"
	"math"
)

// Line is an infinite line through two distinct points.
type Line struct{ A, B Point }

// AngleXY returns the direction angle of the line's XY projection
// in degrees, measured counter-clockwise from the X axis.
func (l Line) AngleXY() float64 {
	return math.Atan2(l.B.Y-l.A.Y, l.B.X-l.A.X) * 180 / math.Pi
}

// ContainsXY reports whether (x,y) lies on the line's XY projection
// within tol.
func (l Line) ContainsXY(x, y, tol float64) bool {
	dx := l.B.X - l.A.X
	dy := l.B.Y - l.A.Y
	// perpendicular distance from (x,y) to the line
	d := math.Abs(dy*(x-l.A.X)-dx*(y-l.A.Y)) / math.Hypot(dx, dy)
	return d <= tol
}

// IntersectXY returns the intersection of the XY projections of both
// lines. Parallel lines are an error.
func (l Line) IntersectXY(o Line) (Point, error) {
	d1 := l.A.X*l.B.Y - l.A.Y*l.B.X
	d2 := o.A.X*o.B.Y - o.A.Y*o.B.X
	den := (l.A.X-l.B.X)*(o.A.Y-o.B.Y) - (l.A.Y-l.B.Y)*(o.A.X-o.B.X)
	if den == 0 {
		return Point{}, errors.New("lines are parallel")
	}

	return Point{
		X: (d1*(o.A.X-o.B.X) - (l.A.X-l.B.X)*d2) / den,
		Y: (d1*(o.A.Y-o.B.Y) - (l.A.Y-l.B.Y)*d2) / den,
	}, nil
}
