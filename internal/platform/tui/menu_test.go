package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/storage"
)

func testLevels() []levels.Level {
	return []levels.Level{
		{ID: "01_first", Name: "First", Size: 3, ArrowColumn: 1, Par: 1},
		{ID: "02_second", Name: "Second", Size: 3, ArrowColumn: 1, Par: 2},
	}
}

func press(t *testing.T, m MenuModel, msgs ...tea.KeyMsg) (MenuModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		mm, ok := next.(MenuModel)
		require.True(t, ok)
		m = mm
	}
	return m, cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuCampaign(t *testing.T) {
	m := NewMenuModel(testLevels(), nil, testConfig())

	m, cmd := press(t, m, keyEnter)
	require.NotNil(t, m.Selected())
	assert.Equal(t, blockslide.GameID, m.Selected().GameID)
	assert.Empty(t, m.Selected().StartLevel)
	assert.NotNil(t, cmd)
}

func TestMenuStartFromLevel(t *testing.T) {
	m := NewMenuModel(testLevels(), nil, testConfig())

	m, _ = press(t, m, keyDown, keyEnter, keyDown, keyEnter)
	require.NotNil(t, m.Selected())
	assert.Equal(t, blockslide.GameID, m.Selected().GameID)
	assert.Equal(t, "02_second", m.Selected().StartLevel)
}

func TestMenuPractice(t *testing.T) {
	m := NewMenuModel(testLevels(), nil, testConfig())

	m, _ = press(t, m, keyDown, keyDown, keyEnter)
	assert.Contains(t, m.View(), "PRACTICE")

	// Cursor clamps at the last level
	m, _ = press(t, m, keyDown, keyDown, keyDown, keyEnter)
	require.NotNil(t, m.Selected())
	assert.Equal(t, blockslide.PracticeGameID, m.Selected().GameID)
	assert.Equal(t, "02_second", m.Selected().StartLevel)
}

func TestMenuBackFromLevelList(t *testing.T) {
	m := NewMenuModel(testLevels(), nil, testConfig())

	m, _ = press(t, m, keyDown, keyEnter, keyEsc)
	assert.Nil(t, m.Selected())
	assert.False(t, m.IsQuitting())
	assert.Contains(t, m.View(), "Campaign")

	m, _ = press(t, m, keyUp, keyEnter)
	require.NotNil(t, m.Selected())
	assert.Empty(t, m.Selected().StartLevel)
}

func TestMenuRecordsAndQuit(t *testing.T) {
	m := NewMenuModel(testLevels(), nil, testConfig())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.WantsRecords())

	m = NewMenuModel(testLevels(), nil, testConfig())
	m, _ = press(t, m, keyDown, keyDown, keyDown, keyEnter)
	assert.True(t, m.WantsRecords())

	m = NewMenuModel(testLevels(), nil, testConfig())
	m, _ = press(t, m, runeKey("q"))
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
}

func TestMenuShowsBestMoves(t *testing.T) {
	stats := map[string]*storage.LevelStats{
		"01_first": {LevelID: "01_first", Clears: 2, BestMoves: 4},
	}
	m := NewMenuModel(testLevels(), stats, testConfig())
	m, _ = press(t, m, keyDown, keyEnter)

	view := m.View()
	assert.Contains(t, view, "best  4")
	assert.Contains(t, view, "best  -")
}

func TestMenuTracksResize(t *testing.T) {
	m := NewMenuModel(testLevels(), nil, testConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m = next.(MenuModel)

	assert.Equal(t, 100, m.Config().ScreenW)
	assert.Equal(t, 50, m.Config().ScreenH)
}
