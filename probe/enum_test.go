package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumLabels(t *testing.T) {
	tests := []struct {
		v    interface{ Label() (string, error) }
		want string
	}{
		{Inside, "Inside"},
		{Outside, "Outside"},
		{Bottom, "Bottom"},
		{Top, "Top"},
		{Left, "Left"},
		{Right, "Right"},
		{BottomLeft, "Bottom Left"},
		{BottomRight, "Bottom Right"},
		{TopLeft, "Top Left"},
		{TopRight, "Top Right"},
	}
	for _, tt := range tests {
		got, err := tt.v.Label()
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEnumLabels_UnmappedIsError(t *testing.T) {
	_, err := Direction(9).Label()
	assert.Error(t, err)
	_, err = Edge(9).Label()
	assert.Error(t, err)
	_, err = Corner(9).Label()
	assert.Error(t, err)

	assert.Equal(t, "Direction(9)", Direction(9).String())
}

func TestEnumText_RoundTrip(t *testing.T) {
	for _, d := range []Direction{Inside, Outside} {
		text, err := d.MarshalText()
		require.NoError(t, err)
		var got Direction
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, d, got)
	}
	for _, e := range []Edge{Bottom, Top, Left, Right} {
		text, err := e.MarshalText()
		require.NoError(t, err)
		var got Edge
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, e, got)
	}
	for _, c := range []Corner{BottomLeft, BottomRight, TopLeft, TopRight} {
		text, err := c.MarshalText()
		require.NoError(t, err)
		var got Corner
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, c, got)
	}
}

func TestEnumText_Errors(t *testing.T) {
	_, err := Direction(9).MarshalText()
	assert.Error(t, err)

	var d Direction
	assert.Error(t, d.UnmarshalText([]byte("sideways")))
	var e Edge
	assert.Error(t, e.UnmarshalText([]byte("middle")))
	var c Corner
	assert.Error(t, c.UnmarshalText([]byte("centre")))
}

func TestCornerEdges(t *testing.T) {
	e1, e2 := BottomLeft.edges()
	assert.Equal(t, Bottom, e1)
	assert.Equal(t, Left, e2)

	e1, e2 = TopRight.edges()
	assert.Equal(t, Top, e1)
	assert.Equal(t, Right, e2)
}
