package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid([]string{"..#", "M.M", "..."})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 9, g.Len())
	assert.Equal(t, CellFixed, g.StateAt(0, 2))
	assert.Equal(t, CellMovable, g.StateAt(1, 0))
	assert.Equal(t, CellEmpty, g.StateAt(2, 2))
	assert.Equal(t, 2, g.Count(CellMovable))
	assert.Equal(t, "..#\nM.M\n...", g.String())
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		size bool
	}{
		{name: "empty", rows: nil, size: true},
		{name: "short row", rows: []string{"..", "."}, size: true},
		{name: "not square", rows: []string{"...", "..."}, size: true},
		{name: "unknown rune", rows: []string{".x", ".."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(tt.rows)
			require.Error(t, err)
			if tt.size {
				assert.ErrorIs(t, err, ErrGridSize)
			}
		})
	}
}

func TestNewGridSizeMismatch(t *testing.T) {
	_, err := NewGrid(5, make([]CellState, 24))
	assert.ErrorIs(t, err, ErrGridSize)

	_, err = NewGrid(0, nil)
	assert.ErrorIs(t, err, ErrGridSize)
}

func TestIndexRowColRoundTrip(t *testing.T) {
	g := MustParseGrid(".....", ".....", ".....", ".....", ".....")
	for i := 0; i < g.Len(); i++ {
		r, c := g.RowCol(i)
		assert.True(t, g.InBounds(r, c))
		assert.Equal(t, i, g.Index(r, c))
	}
	assert.False(t, g.InBounds(-1, 0))
	assert.False(t, g.InBounds(0, 5))
	assert.Equal(t, CellEmpty, g.StateAt(7, 7))
}

func TestDirection(t *testing.T) {
	tests := []struct {
		d        Direction
		dr, dc   int
		positive bool
	}{
		{DirUp, -1, 0, false},
		{DirDown, 1, 0, true},
		{DirLeft, 0, -1, false},
		{DirRight, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			dr, dc := tt.d.Delta()
			assert.Equal(t, tt.dr, dr)
			assert.Equal(t, tt.dc, dc)
			assert.Equal(t, tt.positive, tt.d.Positive())
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := MustParseGrid("M.", "..")
	c := g.Clone()
	Commit(c, Resolve(c, DirRight))

	assert.Equal(t, "M.\n..", g.String())
	assert.Equal(t, ".M\n..", c.String())
}
