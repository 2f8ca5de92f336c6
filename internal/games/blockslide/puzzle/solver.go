package puzzle

// SolveResult reports a breadth-first search over slide sequences.
type SolveResult struct {
	Solvable bool
	Path     []Direction
	Explored int
}

// Solve searches for the shortest sequence of slides after which an arrow
// fired in col hits the target. Search stops after maxStates distinct grids;
// a non-positive limit means unbounded.
func Solve(g *Grid, col int, maxStates int) SolveResult {
	if res, _ := TraceShot(g, col); res == ShotSolved {
		return SolveResult{Solvable: true, Explored: 1}
	}

	type node struct {
		grid *Grid
		path []Direction
	}

	seen := map[string]struct{}{g.Key(): {}}
	queue := []node{{grid: g.Clone()}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range Directions {
			plan := Resolve(cur.grid, d)
			if plan.Empty() {
				continue
			}
			next := cur.grid.Clone()
			Commit(next, plan)

			key := next.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			path := make([]Direction, len(cur.path)+1)
			copy(path, cur.path)
			path[len(cur.path)] = d

			if res, _ := TraceShot(next, col); res == ShotSolved {
				return SolveResult{Solvable: true, Path: path, Explored: len(seen)}
			}
			if maxStates > 0 && len(seen) >= maxStates {
				return SolveResult{Explored: len(seen)}
			}
			queue = append(queue, node{grid: next, path: path})
		}
	}

	return SolveResult{Explored: len(seen)}
}
