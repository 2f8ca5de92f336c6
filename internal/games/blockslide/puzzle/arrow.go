package puzzle

import "fmt"

// ShotResult is the outcome of an arrow shot.
type ShotResult int

const (
	ShotNone ShotResult = iota
	ShotSolved
	ShotMissed
)

// String returns the result name.
func (r ShotResult) String() string {
	switch r {
	case ShotNone:
		return "none"
	case ShotSolved:
		return "solved"
	case ShotMissed:
		return "missed"
	default:
		return fmt.Sprintf("ShotResult(%d)", int(r))
	}
}

// TraceShot follows an arrow fired upward from below the grid in column col.
// The first non-empty cell decides the outcome: a fixed cell is the target and
// solves the puzzle, a movable block stops the arrow. Leaving the top of the
// grid is a miss. stopRow is the row the arrow ends in, -1 past the top.
func TraceShot(g *Grid, col int) (result ShotResult, stopRow int) {
	for row := g.Size() - 1; row >= 0; row-- {
		switch g.StateAt(row, col) {
		case CellFixed:
			return ShotSolved, row
		case CellMovable:
			return ShotMissed, row
		}
	}
	return ShotMissed, -1
}

// Arrow is an arrow in flight. Position is measured in rows, starting one row
// below the grid and decreasing as the arrow rises.
type Arrow struct {
	col      int
	pos      float64
	stopRow  int
	result   ShotResult
	speed    float64
	inFlight bool
}

// Launch starts a shot against g. The outcome is fixed at launch because the
// grid cannot change while the arrow flies.
func (a *Arrow) Launch(g *Grid, col int, cellsPerSecond float64) {
	a.col = col
	a.pos = float64(g.Size())
	a.result, a.stopRow = TraceShot(g, col)
	a.speed = cellsPerSecond
	a.inFlight = true
}

// InFlight reports whether the arrow is travelling.
func (a *Arrow) InFlight() bool {
	return a.inFlight
}

// Position returns the column and the current fractional row.
func (a *Arrow) Position() (col int, row float64) {
	return a.col, a.pos
}

// Advance moves the arrow by dt seconds and returns the result on the tick it
// lands, ShotNone before that.
func (a *Arrow) Advance(seconds float64) ShotResult {
	if !a.inFlight {
		return ShotNone
	}
	a.pos -= a.speed * seconds
	if a.pos > float64(a.stopRow) {
		return ShotNone
	}
	a.pos = float64(a.stopRow)
	a.inFlight = false
	return a.result
}

// Cancel drops the arrow.
func (a *Arrow) Cancel() {
	a.inFlight = false
}
