package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine_AngleXY(t *testing.T) {
	l := Line{A: Point{X: 0, Y: 0}, B: Point{X: 10, Y: 10}}
	assert.InDelta(t, 45, l.AngleXY(), 1e-9)

	// angle depends on direction only, not position
	off := Point{X: 3, Y: -7}
	moved := Line{A: l.A.Add(off), B: l.B.Add(off)}
	assert.InDelta(t, l.AngleXY(), moved.AngleXY(), 1e-9)
}

func TestLine_IntersectXY(t *testing.T) {
	h := Line{A: Point{X: -5, Y: 2}, B: Point{X: 5, Y: 2}}
	v := Line{A: Point{X: 1, Y: -10}, B: Point{X: 1, Y: 10}}

	p, err := h.IntersectXY(v)
	assert.NoError(t, err)
	assert.InDelta(t, 1, p.X, 1e-9)
	assert.InDelta(t, 2, p.Y, 1e-9)

	_, err = h.IntersectXY(Line{A: Point{Y: 4}, B: Point{X: 1, Y: 4}})
	assert.Error(t, err)
}

func TestLine_ContainsXY(t *testing.T) {
	l := Line{A: Point{}, B: Point{X: 10, Y: 10}}
	assert.True(t, l.ContainsXY(5, 5, 1e-9))
	assert.False(t, l.ContainsXY(5, 6, 1e-3))
}
