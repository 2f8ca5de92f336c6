package puzzle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomGrid fills an n x n grid with a fixed seed.
func randomGrid(rng *rand.Rand, n int) *Grid {
	states := make([]CellState, n*n)
	for i := range states {
		switch rng.Intn(5) {
		case 0, 1:
			states[i] = CellEmpty
		case 2, 3:
			states[i] = CellMovable
		default:
			states[i] = CellFixed
		}
	}
	g, err := NewGrid(n, states)
	if err != nil {
		panic(err)
	}
	return g
}

func TestResolveScenarios(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		dir   Direction
		moves int
		after string
	}{
		{
			name:  "chain slides into empty",
			rows:  []string{"MM.", "###", "###"},
			dir:   DirRight,
			moves: 2,
			after: ".MM\n###\n###",
		},
		{
			name:  "fixed blocks the chain",
			rows:  []string{"M#.", "###", "###"},
			dir:   DirRight,
			moves: 0,
			after: "M#.\n###\n###",
		},
		{
			name:  "nothing ahead away from empty",
			rows:  []string{".MM", "###", "###"},
			dir:   DirRight,
			moves: 0,
			after: ".MM\n###\n###",
		},
		{
			name:  "chain slides left",
			rows:  []string{".MM", "###", "###"},
			dir:   DirLeft,
			moves: 2,
			after: "MM.\n###\n###",
		},
		{
			name:  "column slides down",
			rows:  []string{"M..", "M..", "..."},
			dir:   DirDown,
			moves: 2,
			after: "...\nM..\nM..",
		},
		{
			name:  "up decreases row",
			rows:  []string{"...", "M..", "M.."},
			dir:   DirUp,
			moves: 2,
			after: "M..\nM..\n...",
		},
		{
			name:  "two independent chains",
			rows:  []string{"M.M.", "....", "....", "...."},
			dir:   DirRight,
			moves: 2,
			after: ".M.M\n....\n....\n....",
		},
		{
			name:  "chain stops at fixed behind it",
			rows:  []string{"#MM.", "....", "....", "...."},
			dir:   DirRight,
			moves: 2,
			after: "#.MM\n....\n....\n....",
		},
		{
			name:  "edge blocks",
			rows:  []string{"..M", "...", "..."},
			dir:   DirRight,
			moves: 0,
			after: "..M\n...\n...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustParseGrid(tt.rows...)
			plan := Resolve(g, tt.dir)

			assert.Equal(t, tt.dir, plan.Direction)
			assert.Equal(t, tt.moves, plan.Len())
			Commit(g, plan)
			assert.Equal(t, tt.after, g.String())
		})
	}
}

func TestResolveDoesNotMutate(t *testing.T) {
	g := MustParseGrid("MM.", "M.M", "...")
	before := g.String()
	for _, d := range Directions {
		Resolve(g, d)
	}
	assert.Equal(t, before, g.String())
}

func TestCommitOrder(t *testing.T) {
	g := MustParseGrid("MMM.", "....", "....", "....")
	plan := Resolve(g, DirRight)
	order := plan.CommitOrder()
	require.Len(t, order, 3)
	assert.Equal(t, []int{2, 1, 0}, []int{order[0].From, order[1].From, order[2].From})

	g = MustParseGrid(".MMM", "....", "....", "....")
	plan = Resolve(g, DirLeft)
	order = plan.CommitOrder()
	require.Len(t, order, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{order[0].From, order[1].From, order[2].From})
}

func TestCommitMovesIdentities(t *testing.T) {
	g := MustParseGrid("MM.", "###", "###")
	idA, idB, idEmpty := g.At(0).ID, g.At(1).ID, g.At(2).ID

	Commit(g, Resolve(g, DirRight))

	assert.Equal(t, idEmpty, g.At(0).ID)
	assert.Equal(t, idA, g.At(1).ID)
	assert.Equal(t, idB, g.At(2).ID)
}

func TestResolveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 300; iter++ {
		n := 2 + rng.Intn(5)
		g := randomGrid(rng, n)

		for _, d := range Directions {
			plan := Resolve(g, d)
			dr, dc := d.Delta()

			if !hasOpenFront(g, d) {
				assert.True(t, plan.Empty(), "expected no-op for %s on\n%s", d, g)
			}

			sources := make(map[int]bool)
			for _, m := range plan.Moves {
				require.GreaterOrEqual(t, m.To, 0)
				require.Less(t, m.To, g.Len())
				require.Equal(t, CellMovable, g.State(m.From))
				require.False(t, sources[m.From], "cell %d moved twice", m.From)
				sources[m.From] = true

				r, c := g.RowCol(m.From)
				require.Equal(t, g.Index(r+dr, c+dc), m.To)

				// walk forward to the chain head; its forward neighbour must be empty
				hr, hc := r, c
				for g.InBounds(hr+dr, hc+dc) && g.StateAt(hr+dr, hc+dc) == CellMovable {
					hr, hc = hr+dr, hc+dc
				}
				require.True(t, g.InBounds(hr+dr, hc+dc))
				require.Equal(t, CellEmpty, g.StateAt(hr+dr, hc+dc))
			}

			after := g.Clone()
			Commit(after, plan)

			assert.Equal(t, g.Count(CellMovable), after.Count(CellMovable))
			assert.Equal(t, g.Count(CellFixed), after.Count(CellFixed))
			for _, m := range plan.Moves {
				assert.Equal(t, g.At(m.From).ID, after.At(m.To).ID)
			}
			for i := 0; i < g.Len(); i++ {
				if g.State(i) == CellFixed {
					assert.Equal(t, g.At(i), after.At(i))
				}
			}
		}
	}
}

// hasOpenFront reports whether any movable cell has an empty cell ahead in d.
func hasOpenFront(g *Grid, d Direction) bool {
	dr, dc := d.Delta()
	for i := 0; i < g.Len(); i++ {
		if g.State(i) != CellMovable {
			continue
		}
		r, c := g.RowCol(i)
		if g.InBounds(r+dr, c+dc) && g.StateAt(r+dr, c+dc) == CellEmpty {
			return true
		}
	}
	return false
}
