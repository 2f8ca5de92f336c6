package blockslide

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateLevelCleared GameStateType = "level_cleared"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string
	Level   int // 1-indexed for display
	LevelID string
	Score   int
	Moves   int
	Rows    []string
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.won:
		state = StateWin
	case g.levelCleared:
		state = StateLevelCleared
	case g.session.Busy():
		state = StateAnimating
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   g.levelIndex + 1,
		LevelID: g.Level().ID,
		Score:   g.score,
		Moves:   g.session.Moves(),
		Rows:    g.session.Grid().Rows(),
		State:   state,
	}
}
