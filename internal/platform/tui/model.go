package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Terminal lines reserved below the game screen for the help view.
const (
	shortHelpHeight = 1
	fullHelpHeight  = 4
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	recorded   bool   // Whether the finished game has been journaled
	lastEntry  string // Journal ID of the most recently saved game
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-shortHelpHeight, 0)),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(),
		help:       h,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// gameHeight is the screen height left for the game below the help view.
func (m Model) gameHeight() int {
	reserved := shortHelpHeight
	if m.help.ShowAll {
		reserved = fullHelpHeight
	}
	return max(m.config.ScreenH-reserved, 0)
}

// relayout resizes the screen buffer and the game to the current terminal.
func (m Model) relayout() {
	m.screen.Resize(m.config.ScreenW, m.gameHeight())
	m.game.Resize(m.config.ScreenW, m.gameHeight())
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Info("game started", "variant", m.game.ID(), "seed", m.config.Seed)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// gameConfig is the runtime config as seen by the game.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.gameHeight()
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Restart is only offered once the game is over
	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
// The game keeps its state; it only lays itself out again.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.relayout()

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.recorded = false
		m.inputFrame.Clear()
		m.logger.Info("game restarted", "variant", m.game.ID(), "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.recordGame()
		m.recorded = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordGame writes the finished game to the journal.
func (m *Model) recordGame() {
	r, ok := m.game.(registry.Recordable)
	if !ok {
		return
	}
	rec := r.Record()
	m.logger.Info("game over", "variant", m.game.ID(), "score", rec.Score, "max_tile", rec.MaxTile, "moves", len(rec.Moves))

	if m.store == nil || len(rec.Moves) == 0 {
		return
	}

	id, err := m.store.SaveGame(JournalRecord(m.game.ID(), rec))
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Error("cannot journal game", "error", err)
		return
	}
	m.lastEntry = id
	m.logger.Debug("game journaled", "id", id)
}

// JournalRecord converts a game record into a journal entry.
func JournalRecord(gameID string, rec registry.Record) storage.GameRecord {
	return storage.GameRecord{
		GameID:  gameID,
		Seed:    rec.Seed,
		Score:   rec.Score,
		MaxTile: rec.MaxTile,
		Config:  rec.Config,
		Moves:   rec.Moves,
	}
}

// LastEntry returns the journal ID of the last saved game, if any.
func (m Model) LastEntry() string {
	return m.lastEntry
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts the Bubble Tea program with the given game.
// It returns the journal ID of the last finished game, if one was saved.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (string, error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	if m, ok := finalModel.(Model); ok {
		return m.LastEntry(), nil
	}
	return "", nil
}
