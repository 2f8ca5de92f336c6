package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/storage"
)

// stubGame records the inputs it sees and returns scripted results.
type stubGame struct {
	resets  int
	inputs  []core.InputFrame
	state   core.GameState
	events  []core.Event
	resized [2]int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	ev := g.events
	g.events = nil
	return core.StepResult{State: g.state, Events: ev}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

// resizableGame adapts to new sizes without restarting.
type resizableGame struct {
	stubGame
}

func (g *resizableGame) Resize(w, h int) {
	g.resized = [2]int{w, h}
}

type fakeStore struct {
	scores  []storage.ScoreEntry
	results []storage.LevelResult
}

func (s *fakeStore) SaveScore(gameID string, score int) (int64, error) {
	s.scores = append(s.scores, storage.ScoreEntry{GameID: gameID, Score: score})
	return int64(len(s.scores)), nil
}

func (s *fakeStore) SaveLevelResult(r storage.LevelResult) (int64, error) {
	s.results = append(s.results, r)
	return int64(len(s.results)), nil
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func TestGameModelInitResets(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, testConfig(), nil)

	assert.NotNil(t, m.Init())
	assert.Equal(t, 1, g.resets)
	assert.NotEmpty(t, m.RunID())
}

func TestGameModelKeysReachNextTickOnly(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, testConfig(), nil)
	m.Init()

	m, _ = update(t, m, runeKey("a"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	m, _ = update(t, m, TickMsg(time.Now()))

	require.Len(t, g.inputs, 2)
	assert.True(t, g.inputs[0].Has(core.ActionLeft))
	assert.True(t, g.inputs[0].Has(core.ActionFire))
	assert.True(t, g.inputs[1].Empty())
	assert.False(t, m.IsQuitting())
}

func TestGameModelSavesLevelResults(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{}
	m := NewGameModel(g, store, testConfig(), nil)
	m.Init()

	g.events = []core.Event{
		{Kind: core.EventShotMissed, LevelID: "01"},
		{Kind: core.EventLevelSolved, LevelID: "01", Moves: 3, Par: 2, Points: 950, Duration: 2 * time.Second},
	}
	m, _ = update(t, m, TickMsg(time.Now()))

	require.Len(t, store.results, 1)
	r := store.results[0]
	assert.Equal(t, m.RunID(), r.RunID)
	assert.Equal(t, "stub", r.GameID)
	assert.Equal(t, "01", r.LevelID)
	assert.Equal(t, 3, r.Moves)
	assert.Equal(t, 2, r.Par)
	assert.Equal(t, 950, r.Points)
	assert.Equal(t, 2*time.Second, r.Duration)
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{}
	m := NewGameModel(g, store, testConfig(), nil)
	m.Init()

	g.state = core.GameState{Score: 1200, GameOver: true}
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))

	require.Len(t, store.scores, 1)
	assert.Equal(t, 1200, store.scores[0].Score)
	assert.Equal(t, "stub", store.scores[0].GameID)
}

func TestGameModelRestartStartsNewRun(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{}
	m := NewGameModel(g, store, testConfig(), nil)
	m.Init()
	firstRun := m.RunID()

	g.state = core.GameState{Score: 500, GameOver: true}
	m, _ = update(t, m, TickMsg(time.Now()))

	m, _ = update(t, m, runeKey("r"))
	m, _ = update(t, m, TickMsg(time.Now()))

	assert.Equal(t, 2, g.resets)
	assert.NotEqual(t, firstRun, m.RunID())

	// A new run may save its own score
	g.state = core.GameState{Score: 700, GameOver: true}
	_, _ = update(t, m, TickMsg(time.Now()))
	assert.Len(t, store.scores, 2)
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, testConfig(), nil)
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu())

	g.state = core.GameState{Paused: true}
	m, _ = update(t, m, TickMsg(time.Now()))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.NotNil(t, cmd)
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), nil)
	m.Init()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestGameModelResize(t *testing.T) {
	t.Run("resizer keeps state", func(t *testing.T) {
		g := &resizableGame{}
		m := NewGameModel(g, nil, testConfig(), nil)
		m.Init()

		_, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})
		assert.Equal(t, [2]int{90, 30}, g.resized)
		assert.Equal(t, 1, g.resets)
	})

	t.Run("other games restart", func(t *testing.T) {
		g := &stubGame{}
		m := NewGameModel(g, nil, testConfig(), nil)
		m.Init()

		_, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})
		assert.Equal(t, 2, g.resets)
	})
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), nil)
	m.Init()
	assert.Contains(t, m.View(), "stub")
}
