package puzzle

import "sort"

// Move shifts the block at From one step into To.
type Move struct {
	From int
	To   int
}

// MovePlan is the set of simultaneous one-step shifts produced by one input.
// Moves are listed in discovery order.
type MovePlan struct {
	Direction Direction
	Moves     []Move
}

// Empty reports whether the plan moves nothing.
func (p MovePlan) Empty() bool {
	return len(p.Moves) == 0
}

// Len returns the number of moving blocks.
func (p MovePlan) Len() int {
	return len(p.Moves)
}

// CommitOrder returns the moves sorted so a slot is always vacated before the
// block behind it lands there: descending source index for positive
// directions, ascending otherwise.
func (p MovePlan) CommitOrder() []Move {
	ordered := make([]Move, len(p.Moves))
	copy(ordered, p.Moves)

	desc := p.Direction.Positive()
	sort.SliceStable(ordered, func(i, j int) bool {
		if desc {
			return ordered[i].From > ordered[j].From
		}
		return ordered[i].From < ordered[j].From
	})
	return ordered
}

// Resolve computes which blocks slide for one directional input. It reads the
// grid and never mutates it. Every movable cell whose forward neighbour is
// empty drags the contiguous run of movable cells behind it one step forward.
func Resolve(g *Grid, d Direction) MovePlan {
	plan := MovePlan{Direction: d}
	n := g.Len()

	if d.Positive() {
		for i := n - 1; i >= 0; i-- {
			plan.Moves = appendChainMoves(plan.Moves, g, i, d)
		}
	} else {
		for i := 0; i < n; i++ {
			plan.Moves = appendChainMoves(plan.Moves, g, i, d)
		}
	}

	return plan
}

// appendChainMoves adds the chain anchored at start if the cell ahead of start
// is an in-bounds empty cell.
func appendChainMoves(moves []Move, g *Grid, start int, d Direction) []Move {
	if g.State(start) != CellMovable {
		return moves
	}

	chain := chainBehind(g, start, d)
	if len(chain) == 0 {
		return moves
	}

	dr, dc := d.Delta()
	row, col := g.RowCol(start)
	targetRow, targetCol := row+dr, col+dc
	if !g.InBounds(targetRow, targetCol) {
		return moves
	}
	if g.State(g.Index(targetRow, targetCol)) != CellEmpty {
		return moves
	}

	for _, idx := range chain {
		r, c := g.RowCol(idx)
		moves = append(moves, Move{From: idx, To: g.Index(r+dr, c+dc)})
	}
	return moves
}

// chainBehind walks opposite to d from start, collecting contiguous movable
// cells until a non-movable cell or the grid edge.
func chainBehind(g *Grid, start int, d Direction) []int {
	dr, dc := d.Delta()
	row, col := g.RowCol(start)

	var chain []int
	for g.InBounds(row, col) {
		idx := g.Index(row, col)
		if g.State(idx) != CellMovable {
			break
		}
		chain = append(chain, idx)
		row -= dr
		col -= dc
	}
	return chain
}

// Commit applies a plan to the grid in place. Each move swaps the occupant of
// its source and target slots, so block identities travel and the vacated
// empty cell ends up where the tail of the chain was.
func Commit(g *Grid, p MovePlan) {
	for _, m := range p.CommitOrder() {
		g.swap(m.From, m.To)
	}
}
