package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/storage"
)

// MenuSelection is the game the player picked.
type MenuSelection struct {
	GameID     string
	StartLevel string // Empty starts from the first level
}

type menuScreen int

const (
	screenMain menuScreen = iota
	screenCampaignLevels
	screenPracticeLevels
)

var mainEntries = []string{
	"Campaign",
	"Start from level...",
	"Practice...",
	"Records",
}

// MenuModel lets the player pick campaign or practice and a starting level.
type MenuModel struct {
	levels      []levels.Level
	stats       map[string]*storage.LevelStats
	screen      menuScreen
	cursor      int
	levelCursor int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	selected    *MenuSelection
	openRecords bool
	quitting    bool
}

// NewMenuModel creates a new menu model. stats may be nil.
func NewMenuModel(lvls []levels.Level, stats map[string]*storage.LevelStats, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		levels:    lvls,
		stats:     stats,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit
	}

	if m.screen == screenMain {
		return m.handleMainKey(action)
	}
	return m.handleLevelKey(action)
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(mainEntries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.selected = &MenuSelection{GameID: blockslide.GameID}
			return m, tea.Quit
		case 1:
			m.screen = screenCampaignLevels
			m.levelCursor = 0
		case 2:
			m.screen = screenPracticeLevels
			m.levelCursor = 0
		case 3:
			m.openRecords = true
			return m, tea.Quit
		}
	case MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		gameID := blockslide.GameID
		if m.screen == screenPracticeLevels {
			gameID = blockslide.PracticeGameID
		}
		m.selected = &MenuSelection{GameID: gameID, StartLevel: m.levels[m.levelCursor].ID}
		return m, tea.Quit
	case MenuActionBack:
		m.screen = screenMain
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenMain {
		return m.viewMain()
	}
	return m.viewLevels()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B L O C K   S L I D E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Clear the arrow's path to the target", m.width))
	b.WriteString("\n\n")

	for i, entry := range mainEntries {
		if i == 0 {
			entry = fmt.Sprintf("%s (%d levels)", entry, len(m.levels))
		}
		b.WriteString(centerText(m.cursorLine(i == m.cursor, entry), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(hintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevels() string {
	var b strings.Builder

	title := "SELECT LEVEL"
	if m.screen == screenPracticeLevels {
		title = "PRACTICE"
	}

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		best := "-"
		if st, ok := m.stats[lvl.ID]; ok && st.Clears > 0 {
			best = fmt.Sprintf("%d", st.BestMoves)
		}
		line := fmt.Sprintf("%2d. %-14s par %2d  best %2s", i+1, lvl.Title(), lvl.Par, best)
		b.WriteString(centerText(m.cursorLine(i == m.levelCursor, line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(hintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m MenuModel) cursorLine(active bool, text string) string {
	if active {
		return cursorStyle.Render("> " + text)
	}
	return "  " + text
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection    *MenuSelection
	Config       core.RuntimeConfig
	WantsRecords bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	var stats map[string]*storage.LevelStats
	if store != nil {
		// Stats are decoration; a failed query just hides them
		stats, _ = store.GetAllLevelStats()
	}

	p := tea.NewProgram(NewMenuModel(lvls, stats, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsRecords():
		result.WantsRecords = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
