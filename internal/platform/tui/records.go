package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/blockslide/internal/games/blockslide"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/storage"
)

// Records layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the board list sidebar
	sidebarWidth       = 22  // Width of board list sidebar
	maxRecords         = 100 // Max rows to load
)

// RecordSource is the read side of the result store.
type RecordSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	BestLevelResults(levelID string, limit int) ([]storage.LevelResult, error)
}

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// board is one selectable leaderboard: the campaign scores or one level.
type board struct {
	title   string
	levelID string // Empty for the campaign board
}

// RecordsModel shows campaign high scores and per-level best clears.
type RecordsModel struct {
	boards      []board
	cursor      int
	source      RecordSource
	now         func() time.Time
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRecordsModel creates a records model. source may be nil.
func NewRecordsModel(source RecordSource, lvls []levels.Level, width, height int) RecordsModel {
	boards := []board{{title: "Campaign"}}
	for _, lvl := range lvls {
		boards = append(boards, board{title: lvl.Title(), levelID: lvl.ID})
	}

	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		boards:      boards,
		source:      source,
		now:         time.Now,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// columns returns the table columns for the selected board.
func (m *RecordsModel) columns() []table.Column {
	if m.boards[m.cursor].levelID == "" {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "When", Width: 16},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Par", Width: 5},
		{Title: "Time", Width: 8},
		{Title: "When", Width: 16},
	}
}

// load queries the selected board and rebuilds the table.
func (m *RecordsModel) load() {
	m.rows = nil
	b := m.boards[m.cursor]

	if m.source != nil {
		if b.levelID == "" {
			if scores, err := m.source.TopScores(blockslide.GameID, maxRecords); err == nil {
				for i, s := range scores {
					m.rows = append(m.rows, table.Row{
						fmt.Sprintf("#%d", i+1),
						fmt.Sprintf("%d", s.Score),
						humanize.RelTime(s.CreatedAt, m.now(), "ago", "from now"),
					})
				}
			}
		} else if results, err := m.source.BestLevelResults(b.levelID, maxRecords); err == nil {
			for i, r := range results {
				m.rows = append(m.rows, table.Row{
					fmt.Sprintf("#%d", i+1),
					fmt.Sprintf("%d", r.Moves),
					fmt.Sprintf("%d", r.Par),
					r.Duration.Round(100 * time.Millisecond).String(),
					humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now"),
				})
			}
		}
	}

	m.table = m.createTable()
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextBoard):
			m.cursor = (m.cursor + 1) % len(m.boards)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.cursor = (m.cursor - 1 + len(m.boards)) % len(m.boards)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("RECORDS - %s", m.boards[m.cursor].title)
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout renders the board list next to the table.
func (m RecordsModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, bd := range m.boards {
		name := bd.title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		if i == m.cursor {
			sidebar.WriteString(cursorStyle.Render("> " + name))
		} else {
			sidebar.WriteString("  " + name)
		}
		sidebar.WriteString("\n")
	}

	left := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	right := panelStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderNarrowLayout shows only the current board name above the table.
func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.boards[m.cursor].title), m.width))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RecordsModel) renderTableContent() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No records yet.\nClear a level to set one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords runs the records screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRecords(store *storage.Store, lvls []levels.Level, width, height int) (goBack bool, err error) {
	var src RecordSource
	if store != nil {
		src = store
	}

	p := tea.NewProgram(NewRecordsModel(src, lvls, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(RecordsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
