package coord

import (
	"math"
)

type Point struct{ X, Y, Z float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

func (p Point) Dot(op Point) float64 {
	return p.X*op.X + p.Y*op.Y + p.Z*op.Z
}

func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}

func (p Point) Div(val float64) Point {
	p.X /= val
	p.Y /= val
	p.Z /= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// Mid will return the point halfway between p and the target.
func (p Point) Mid(target Point) Point {
	return p.Add(target).Div(2)
}

// RotateXY will rotate p around the Z axis by deg degrees.
func (p Point) RotateXY(deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
		Z: p.Z,
	}
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Sqrt(math.Pow(x-p.X, 2) + math.Pow(y-p.Y, 2))
}
