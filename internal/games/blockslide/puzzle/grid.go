// Package puzzle implements the sliding-block puzzle: the grid model, the chain
// slide resolver, the tween state machine, the arrow shot and the session that
// ties them together. It has no dependency on the terminal platform.
package puzzle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGridSize is returned when a grid does not hold exactly size*size cells.
var ErrGridSize = errors.New("puzzle: grid size mismatch")

// CellState is the content of a grid cell.
type CellState int

const (
	CellEmpty CellState = iota
	CellMovable
	CellFixed
)

// String returns the state name.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellMovable:
		return "movable"
	case CellFixed:
		return "fixed"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}

// Rune returns the level-file character for the state.
func (s CellState) Rune() rune {
	switch s {
	case CellMovable:
		return 'M'
	case CellFixed:
		return '#'
	default:
		return '.'
	}
}

// ParseCellState maps a level-file character to a state.
func ParseCellState(r rune) (CellState, bool) {
	switch r {
	case '.':
		return CellEmpty, true
	case 'M', 'm':
		return CellMovable, true
	case '#':
		return CellFixed, true
	}
	return CellEmpty, false
}

// Direction is a slide direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a stable order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Delta returns the unit step of the direction in (row, col).
// Up decreases the row index.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Positive reports whether the direction points toward increasing indices.
func (d Direction) Positive() bool {
	dr, dc := d.Delta()
	return dr > 0 || dc > 0
}

// Cell is one grid slot. ID is the identity of the block object occupying the
// slot; it travels with the block when cells are swapped.
type Cell struct {
	ID    int
	State CellState
}

// Grid is a square board of side Size. Cells are stored row-major.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid builds a grid from row-major states. Cell IDs are assigned from the
// initial index so a block's identity is stable across commits.
func NewGrid(size int, states []CellState) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: side %d", ErrGridSize, size)
	}
	if len(states) != size*size {
		return nil, fmt.Errorf("%w: %d cells for side %d", ErrGridSize, len(states), size)
	}

	g := &Grid{size: size, cells: make([]Cell, len(states))}
	for i, s := range states {
		g.cells[i] = Cell{ID: i, State: s}
	}
	return g, nil
}

// ParseGrid builds a grid from rows of '.', 'M' and '#'.
func ParseGrid(rows []string) (*Grid, error) {
	size := len(rows)
	states := make([]CellState, 0, size*size)

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrGridSize, y, len(runes), size)
		}
		for x, r := range runes {
			s, ok := ParseCellState(r)
			if !ok {
				return nil, fmt.Errorf("puzzle: unknown cell %q at row %d col %d", r, y, x)
			}
			states = append(states, s)
		}
	}

	return NewGrid(size, states)
}

// MustParseGrid is ParseGrid for fixtures; it panics on error.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the side length.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index converts a row/col pair to a cell index. Callers check InBounds first.
func (g *Grid) Index(row, col int) int {
	return row*g.size + col
}

// RowCol converts a cell index to row/col.
func (g *Grid) RowCol(i int) (row, col int) {
	return i / g.size, i % g.size
}

// InBounds reports whether row/col lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// At returns the cell at index i.
func (g *Grid) At(i int) Cell {
	return g.cells[i]
}

// State returns the state of the cell at index i.
func (g *Grid) State(i int) CellState {
	return g.cells[i].State
}

// StateAt returns the state at row/col; out-of-bounds reads as empty.
func (g *Grid) StateAt(row, col int) CellState {
	if !g.InBounds(row, col) {
		return CellEmpty
	}
	return g.cells[g.Index(row, col)].State
}

// swap exchanges the occupants of two slots.
func (g *Grid) swap(a, b int) {
	g.cells[a], g.cells[b] = g.cells[b], g.cells[a]
}

// Count returns how many cells hold the given state.
func (g *Grid) Count(s CellState) int {
	n := 0
	for _, c := range g.cells {
		if c.State == s {
			n++
		}
	}
	return n
}

// States returns the row-major states.
func (g *Grid) States() []CellState {
	out := make([]CellState, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.State
	}
	return out
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Rows renders the grid as level-file rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	for y := 0; y < g.size; y++ {
		var sb strings.Builder
		for x := 0; x < g.size; x++ {
			sb.WriteRune(g.cells[g.Index(y, x)].State.Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Key returns a compact string of the states, usable as a map key.
func (g *Grid) Key() string {
	return strings.Join(g.Rows(), "")
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
