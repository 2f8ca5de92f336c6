package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/blockslide/internal/config"
	"github.com/vovakirdan/blockslide/internal/core"
	"github.com/vovakirdan/blockslide/internal/games/blockslide/levels"
	"github.com/vovakirdan/blockslide/internal/logging"
	"github.com/vovakirdan/blockslide/internal/registry"
	"github.com/vovakirdan/blockslide/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.blockslide/host_key.
	HostKeyPath string

	// DBPath is the path to the results database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// ConfigPath, LevelsDir and Difficulty are passed to every game.
	ConfigPath string
	LevelsDir  string
	Difficulty string

	// Logger receives server logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      filepath.Join(config.DataDir(), "scores.db"),
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for the puzzle.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	levels []levels.Level
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// Levels are loaded once and shared by all sessions.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		var err error
		if logger, err = logging.NewStderr("info", "blockslide-ssh"); err != nil {
			return nil, err
		}
	}

	lvls, err := levels.NewLoader(cfg.LevelsDir).Campaign()
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		levels: lvls,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.DataDir(), "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	setup := registry.Setup{
		ConfigPath: s.config.ConfigPath,
		LevelsDir:  s.config.LevelsDir,
		Difficulty: s.config.Difficulty,
		Logger:     s.logger.With("user", sshSession.User()),
	}

	var rs ResultStore
	if s.store != nil {
		rs = s.store
	}

	model := NewSessionModel(rs, s.statsSource(), s.levels, setup, cfg)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// statsSource returns the store as a SessionStore, or nil without storage.
func (s *SSHServer) statsSource() SessionStore {
	if s.store == nil {
		return nil
	}
	return s.store
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "levels", len(s.levels))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionStore is what a session reads for the menu and records screens.
type SessionStore interface {
	RecordSource
	GetAllLevelStats() (map[string]*storage.LevelStats, error)
}

type sessionScreen int

const (
	sessionMenu sessionScreen = iota
	sessionGame
	sessionRecords
)

// SessionModel manages the full session flow: menu -> game or records -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	results   ResultStore
	stats     SessionStore
	levels    []levels.Level
	setup     registry.Setup
	config    core.RuntimeConfig
	screen    sessionScreen
	menu      MenuModel
	gameModel *GameModel
	records   RecordsModel
	err       string
	quitting  bool
}

// NewSessionModel creates a new session model. results and stats may be nil.
func NewSessionModel(results ResultStore, stats SessionStore, lvls []levels.Level, setup registry.Setup, cfg core.RuntimeConfig) SessionModel {
	m := SessionModel{
		results: results,
		stats:   stats,
		levels:  lvls,
		setup:   setup,
		config:  cfg,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	var stats map[string]*storage.LevelStats
	if m.stats != nil {
		stats, _ = m.stats.GetAllLevelStats()
	}
	return NewMenuModel(m.levels, stats, m.config)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case sessionGame:
		return m.updateGame(msg)
	case sessionRecords:
		return m.updateRecords(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	m.config = m.menu.Config()

	if m.menu.WantsRecords() {
		var src RecordSource
		if m.stats != nil {
			src = m.stats
		}
		m.records = NewRecordsModel(src, m.levels, m.config.ScreenW, m.config.ScreenH)
		m.screen = sessionRecords
		return m, m.records.Init()
	}

	if sel := m.menu.Selected(); sel != nil {
		setup := m.setup
		setup.StartLevel = sel.StartLevel

		game, err := registry.Create(sel.GameID, setup)
		if err != nil {
			m.err = err.Error()
			m.menu = m.newMenu()
			return m, nil
		}

		m.err = ""
		gameModel := NewGameModel(game, m.results, m.config, setup.Logger)
		m.gameModel = &gameModel
		m.screen = sessionGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.screen = sessionMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRecords handles updates when on the records screen.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if rm, ok := newModel.(RecordsModel); ok {
		m.records = rm
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.records.IsGoingBack() {
		m.screen = sessionMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case sessionGame:
		return m.gameModel.View()
	case sessionRecords:
		return m.records.View()
	}

	view := m.menu.View()
	if m.err != "" {
		view += "\n" + centerText(hintStyle.Render("error: "+m.err), m.config.ScreenW)
	}
	return view
}
