// Package blockslide implements the sliding-block arrow puzzle as a
// registry.Game. Levels are played in order; each is cleared by sliding
// blocks out of the arrow's column and firing at the target wall.
package blockslide

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockslide/internal/config"
	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/puzzle"
	"github.com/vovakirdan/blockslide/internal/logging"
	"github.com/vovakirdan/blockslide/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModePractice Mode = "practice"
)

// Registered game IDs.
const (
	GameID         = "blockslide"
	PracticeGameID = "blockslide_practice"
)

// missFlashTicks is how long the miss indicator stays up.
const missFlashTicks = 30

// Game implements the block slide puzzle.
type Game struct {
	mode   Mode
	cfg    config.BlockslideConfig
	easing puzzle.Easing
	levels []levels.Level
	logger *log.Logger

	startIndex int
	tick       uint64
	dt         time.Duration

	score      int
	levelIndex int
	session    *puzzle.Session
	levelTick  uint64 // Tick the current level started on
	lastPoints int
	missTicks  int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

func init() {
	registry.Register(GameID, "Block Slide", func(setup registry.Setup) (registry.Game, error) {
		return New(ModeCampaign, setup)
	})
	registry.Register(PracticeGameID, "Block Slide (Practice)", func(setup registry.Setup) (registry.Game, error) {
		return New(ModePractice, setup)
	})
}

// New loads configuration and levels and returns a game ready for Reset.
func New(mode Mode, setup registry.Setup) (*Game, error) {
	cfg, err := config.LoadBlockslide(setup.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParseDifficulty(setup.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyBlockslidePreset(&cfg, preset)

	all, err := levels.NewLoader(setup.LevelsDir).Campaign()
	if err != nil {
		return nil, err
	}
	return NewWithLevels(mode, cfg, all, setup)
}

// NewWithLevels builds a game from an explicit configuration and level list.
// Levels whose size differs from the configured grid are skipped.
func NewWithLevels(mode Mode, cfg config.BlockslideConfig, all []levels.Level, setup registry.Setup) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	easing, err := puzzle.EasingByName(cfg.Animation.Easing)
	if err != nil {
		return nil, err
	}

	logger := setup.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	playable := make([]levels.Level, 0, len(all))
	for _, lvl := range all {
		if lvl.Size != cfg.Grid.Size {
			logger.Warn("skipping level", "level", lvl.ID, "size", lvl.Size, "grid", cfg.Grid.Size)
			continue
		}
		playable = append(playable, lvl)
	}
	if len(playable) == 0 {
		return nil, fmt.Errorf("%w for grid size %d", levels.ErrNoLevels, cfg.Grid.Size)
	}

	g := &Game{
		mode:   mode,
		cfg:    cfg,
		easing: easing,
		levels: playable,
		logger: logger,
	}

	if setup.StartLevel != "" {
		idx := g.indexOf(setup.StartLevel)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", levels.ErrLevelNotFound, setup.StartLevel)
		}
		g.startIndex = idx
	}

	// Every level must build a session up front so Step never fails.
	for _, lvl := range playable {
		if _, err := g.newSession(lvl); err != nil {
			return nil, fmt.Errorf("level %s: %w", lvl.ID, err)
		}
	}

	return g, nil
}

func (g *Game) indexOf(id string) int {
	for i, lvl := range g.levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return PracticeGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Block Slide (Practice)"
	}
	return "Block Slide"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.levels[g.levelIndex]
}

// LevelCount returns the number of playable levels.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// Session returns the puzzle session of the current level.
func (g *Game) Session() *puzzle.Session {
	return g.session
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.dt = cfg.TickDuration()
	g.score = 0
	g.lastPoints = 0
	g.missTicks = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0

	g.loadLevel(g.startIndex)
	g.checkScreenSize()
}

// loadLevel builds a fresh session for level i.
func (g *Game) loadLevel(i int) {
	g.levelIndex = i
	g.levelTick = g.tick

	s, err := g.newSession(g.levels[i])
	if err != nil {
		// Every level was checked in NewWithLevels.
		panic(err)
	}
	g.session = s
	g.logger.Info("level started", "level", g.levels[i].ID, "mode", g.mode)
}

func (g *Game) newSession(lvl levels.Level) (*puzzle.Session, error) {
	grid, err := lvl.ToGrid()
	if err != nil {
		return nil, err
	}
	return puzzle.NewSession(grid, puzzle.SessionOptions{
		Size:         g.cfg.Grid.Size,
		MoveDuration: g.cfg.MoveDuration(),
		Easing:       g.easing,
		ArrowColumn:  lvl.ArrowColumn,
		ArrowSpeed:   g.cfg.Arrow.CellsPerSecond,
		Observer:     sessionLogger{logger: g.logger, level: lvl.ID},
	})
}

// Resize updates the screen dimensions without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := boardSize(g.cfg.Grid.Size)
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart after the campaign is handled by the platform
	if g.won {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event

	// Handle level cleared banner
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.cfg.Campaign.ClearTicks {
			if ev, ok := g.advanceLevel(); ok {
				events = append(events, ev)
			}
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	if g.missTicks > 0 {
		g.missTicks--
	}

	if in.Has(core.ActionReset) {
		g.session.Reset()
		g.levelTick = g.tick
		events = append(events, core.Event{Kind: core.EventLevelReset, LevelID: g.Level().ID})
	} else {
		g.handleInput(in)
	}

	switch g.session.Advance(g.dt) {
	case puzzle.ShotMissed:
		g.missTicks = missFlashTicks
		events = append(events, core.Event{
			Kind:    core.EventShotMissed,
			LevelID: g.Level().ID,
			Moves:   g.session.Moves(),
		})
	case puzzle.ShotSolved:
		events = append(events, g.solveLevel())
	}

	return core.StepResult{State: g.State(), Events: events}
}

// handleInput applies at most one slide per tick, then the fire action.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.session.Move(puzzle.DirUp)
	case in.Has(core.ActionDown):
		g.session.Move(puzzle.DirDown)
	case in.Has(core.ActionLeft):
		g.session.Move(puzzle.DirLeft)
	case in.Has(core.ActionRight):
		g.session.Move(puzzle.DirRight)
	}

	if in.Has(core.ActionFire) {
		g.session.Fire()
	}
}

// solveLevel scores the level and raises the cleared banner.
func (g *Game) solveLevel() core.Event {
	lvl := g.Level()
	moves := g.session.Moves()

	points := 0
	if g.mode == ModeCampaign {
		points = g.cfg.Scoring.Points(moves, lvl.Par)
	}
	g.score += points
	g.lastPoints = points

	g.levelCleared = true
	g.levelClearTicks = 0

	elapsed := time.Duration(g.tick-g.levelTick) * g.dt
	g.logger.Info("level solved", "level", lvl.ID, "moves", moves, "par", lvl.Par, "points", points, "elapsed", elapsed)

	return core.Event{
		Kind:     core.EventLevelSolved,
		LevelID:  lvl.ID,
		Moves:    moves,
		Par:      lvl.Par,
		Points:   points,
		Duration: elapsed,
	}
}

// advanceLevel moves to the next level. Practice replays the same level.
func (g *Game) advanceLevel() (core.Event, bool) {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.mode == ModePractice {
		g.loadLevel(g.levelIndex)
		return core.Event{}, false
	}

	if g.levelIndex >= len(g.levels)-1 {
		// Completed all levels
		g.won = true
		g.logger.Info("campaign complete", "score", g.score)
		return core.Event{Kind: core.EventCampaignComplete, Points: g.score}, true
	}

	g.loadLevel(g.levelIndex + 1)
	return core.Event{}, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// sessionLogger forwards session notifications to the game logger.
type sessionLogger struct {
	logger *log.Logger
	level  string
}

func (o sessionLogger) PlanStarted(p puzzle.MovePlan) {
	o.logger.Debug("plan started", "level", o.level, "dir", p.Direction, "blocks", p.Len())
}

func (o sessionLogger) PlanCommitted(p puzzle.MovePlan, moves int) {
	o.logger.Debug("plan committed", "level", o.level, "dir", p.Direction, "moves", moves)
}

func (o sessionLogger) InputDropped(d puzzle.Direction) {
	o.logger.Debug("input dropped", "level", o.level, "dir", d)
}

func (o sessionLogger) ShotResolved(r puzzle.ShotResult, row int) {
	o.logger.Debug("shot resolved", "level", o.level, "result", r, "row", row)
}
