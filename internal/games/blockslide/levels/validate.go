package levels

import (
	"fmt"

	"github.com/vovakirdan/blockslide/internal/games/blockslide/puzzle"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate performs structural validation of a level.
// Checks:
//   - ID is present
//   - Row count and widths match the declared size
//   - Every cell rune is known
//   - Arrow column lies inside the grid and holds a target
func Validate(l Level) error {
	if l.ID == "" {
		return ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if l.Size < 1 {
		return ValidationError{Code: "INVALID_SIZE", Message: fmt.Sprintf("size %d", l.Size)}
	}
	if len(l.Rows) != l.Size {
		return ValidationError{
			Code:    "ROW_COUNT",
			Message: fmt.Sprintf("%d rows for size %d", len(l.Rows), l.Size),
		}
	}
	for y, row := range l.Rows {
		if n := len([]rune(row)); n != l.Size {
			return ValidationError{
				Code:    "ROW_WIDTH",
				Message: fmt.Sprintf("row %d has %d cells, expected %d", y, n, l.Size),
			}
		}
	}

	g, err := puzzle.ParseGrid(l.Rows)
	if err != nil {
		return ValidationError{Code: "INVALID_CELL", Message: err.Error()}
	}

	if l.ArrowColumn < 0 || l.ArrowColumn >= l.Size {
		return ValidationError{
			Code:    "ARROW_COLUMN",
			Message: fmt.Sprintf("arrow column %d outside 0..%d", l.ArrowColumn, l.Size-1),
		}
	}
	hasTarget := false
	for row := 0; row < l.Size; row++ {
		if g.StateAt(row, l.ArrowColumn) == puzzle.CellFixed {
			hasTarget = true
			break
		}
	}
	if !hasTarget {
		return ValidationError{
			Code:    "NO_TARGET",
			Message: fmt.Sprintf("column %d has no fixed cell to hit", l.ArrowColumn),
		}
	}
	if l.Par < 0 {
		return ValidationError{Code: "INVALID_PAR", Message: fmt.Sprintf("par %d", l.Par)}
	}

	return nil
}

// ValidateSolvable checks that the level can be solved and that its par is
// the optimal move count. maxStates bounds the search.
func ValidateSolvable(l Level, maxStates int) (puzzle.SolveResult, error) {
	g, err := l.ToGrid()
	if err != nil {
		return puzzle.SolveResult{}, err
	}

	res := puzzle.Solve(g, l.ArrowColumn, maxStates)
	if !res.Solvable {
		return res, ValidationError{
			Code:    "UNSOLVABLE",
			Message: fmt.Sprintf("no solution within %d states", res.Explored),
		}
	}
	if l.Par > 0 && l.Par < len(res.Path) {
		return res, ValidationError{
			Code:    "PAR_TOO_LOW",
			Message: fmt.Sprintf("par %d below optimal %d", l.Par, len(res.Path)),
		}
	}
	return res, nil
}
