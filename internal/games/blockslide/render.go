package blockslide

import (
	"fmt"

	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/puzzle"
)

const (
	cellWidth  = 6 // Width of each cell (including borders)
	cellHeight = 3 // Height of each cell (including borders)
	hudHeight  = 3
)

// boardSize returns the board footprint including the launcher row.
func boardSize(n int) (w, h int) {
	return n*cellWidth + 1, n*cellHeight + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.cfg.Grid.Size
	boardW, boardH := boardSize(n)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	board := core.NewRect(boardX, boardY, boardW, boardH)

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderArrow(dst, board)
	g.renderOverlays(dst, board)

	if board.Bottom() < g.screenH-1 {
		dst.DrawTextCentered(g.screenH-1, g.Controls())
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, level and move counters.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "BLOCK SLIDE"
	if g.mode == ModePractice {
		title = "BLOCK SLIDE - PRACTICE"
	}
	dst.DrawTextCentered(0, title)

	lvl := g.Level()
	levelStr := fmt.Sprintf("Level %d/%d  %s", g.levelIndex+1, len(g.levels), lvl.Title())
	dst.DrawText(boardX, 1, levelStr)

	stats := fmt.Sprintf("Moves: %d  Par: %d", g.session.Moves(), lvl.Par)
	if g.mode == ModeCampaign {
		stats += fmt.Sprintf("  Score: %d", g.score)
	}
	dst.DrawText(boardX, 2, stats)

	if g.missTicks > 0 {
		miss := "MISS!"
		dst.DrawTextColor(boardX+boardW-len(miss), 2, miss, core.ColorRed)
	}
}

// renderBoard draws the grid lines, resting cells and sliding blocks.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.cfg.Grid.Size
	grid := g.session.Grid()

	// Draw grid borders
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColor(px, py, junction(x, y, n), core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	tweens := g.session.Tweens()
	moving := make(map[int]bool, len(tweens))
	for _, tw := range tweens {
		moving[tw.From] = true
	}

	// Resting cells
	for i := 0; i < grid.Len(); i++ {
		if moving[i] {
			continue
		}
		row, col := grid.RowCol(i)
		g.drawCell(dst, boardX, boardY, float64(row), float64(col), grid.State(i), col)
	}

	// Sliding blocks at interpolated positions
	for _, tw := range tweens {
		g.drawCell(dst, boardX, boardY, tw.Row, tw.Col, puzzle.CellMovable, -1)
	}
}

// drawCell fills the interior of the cell at a (possibly fractional) grid
// position. col is the logical column, used to highlight the target.
func (g *Game) drawCell(dst *core.Screen, boardX, boardY int, row, col float64, state puzzle.CellState, logicalCol int) {
	var fill rune
	var color core.Color

	switch state {
	case puzzle.CellMovable:
		fill, color = '▓', core.ColorCyan
	case puzzle.CellFixed:
		fill, color = '█', core.ColorWhite
		if logicalCol == g.session.ArrowColumn() {
			color = core.ColorYellow
		}
	default:
		return
	}

	x := boardX + 1 + core.Round(col*cellWidth)
	y := boardY + 1 + core.Round(row*cellHeight)
	dst.DrawRect(core.NewRect(x, y, cellWidth-1, cellHeight-1), fill, color)
}

// renderArrow draws the launcher below the arrow column and the arrow in flight.
func (g *Game) renderArrow(dst *core.Screen, board core.Rect) {
	colX := board.X + g.session.ArrowColumn()*cellWidth + cellWidth/2
	launcherY := board.Bottom() - 1

	dst.SetColor(colX, launcherY, '▲', core.ColorOrange)

	if _, row, ok := g.session.ArrowPosition(); ok {
		// Hidden once it leaves the board
		y := board.Y + 1 + core.Round(row*cellHeight)
		if board.Contains(colX, y) && y < launcherY {
			dst.SetColor(colX, y, '↑', core.ColorBrightWhite)
		}
	}
}

// junction picks the box-drawing rune for a grid intersection.
func junction(x, y, n int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == n:
		return '┐'
	case y == n && x == 0:
		return '└'
	case y == n && x == n:
		return '┘'
	case y == 0:
		return '┬'
	case y == n:
		return '┴'
	case x == 0:
		return '├'
	case x == n:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	centerX, centerY := board.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		solved := fmt.Sprintf("Solved in %d moves (par %d)", g.session.Moves(), g.Level().Par)
		switch {
		case g.mode == ModePractice:
			g.drawOverlay(dst, centerX, centerY, "LEVEL CLEARED", solved, "Replaying level")
		case g.levelIndex >= len(g.levels)-1:
			g.drawOverlay(dst, centerX, centerY, "LEVEL CLEARED", solved, fmt.Sprintf("+%d points", g.lastPoints), "Final level complete!")
		default:
			g.drawOverlay(dst, centerX, centerY, "LEVEL CLEARED", solved, fmt.Sprintf("+%d points", g.lastPoints))
		}
		return
	}

	if g.won {
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", fmt.Sprintf("Final score: %d", g.score), "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := core.Clamp(centerX-boxW/2, 0, max(0, g.screenW-boxW))
	boxY := centerY - boxH/2

	// Clear area behind overlay
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawText(boxX+(boxW-len(line))/2, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Slide | Space: Fire | R: Reset level | P: Pause | Q: Quit"
}
