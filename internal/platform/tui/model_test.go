package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var arrowKeys = map[t2048.Direction]tea.KeyMsg{
	t2048.DirUp:    {Type: tea.KeyUp},
	t2048.DirDown:  {Type: tea.KeyDown},
	t2048.DirLeft:  {Type: tea.KeyLeft},
	t2048.DirRight: {Type: tea.KeyRight},
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *t2048.Game) {
	t.Helper()

	cfg := config.DefaultT2048Config()
	cfg.Animation = config.AnimationConfig{} // Moves apply on the tick they are pressed
	game := t2048.New(cfg)

	m := NewModel(game, store, nil, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     99,
	})
	m.Init()
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestModelMove(t *testing.T) {
	m, game := newTestModel(t, nil)

	dir := t2048.LegalDirections(game.Controller().Board())[0]
	m, _ = update(t, m, arrowKeys[dir])
	m, cmd := update(t, m, TickMsg{})

	if cmd == nil {
		t.Error("Tick should schedule the next tick")
	}
	if game.Controller().Turns() != 1 {
		t.Errorf("Turns = %d, want 1", game.Controller().Turns())
	}
	if m.inputFrame.Has(core.ActionLeft) || m.inputFrame.Has(core.ActionRight) {
		t.Error("Input frame should be cleared after a tick")
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	m, game := newTestModel(t, nil)

	m, _ = update(t, m, runeKey('r'))
	if m.inputFrame.Has(core.ActionRestart) {
		t.Error("Restart should be ignored while playing")
	}
	update(t, m, TickMsg{})
	if game.State().GameOver {
		t.Fatal("Fresh game should not be over")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := update(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, game := newTestModel(t, nil)

	dir := t2048.LegalDirections(game.Controller().Board())[0]
	m, _ = update(t, m, arrowKeys[dir])
	m, _ = update(t, m, TickMsg{})
	before := game.Controller().Grid()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if game.Controller().Grid() != before {
		t.Error("Resize should not reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40-shortHelpHeight {
		t.Errorf("Screen = %dx%d, want 100x%d", m.screen.Width(), m.screen.Height(), 40-shortHelpHeight)
	}

	m, _ = update(t, m, runeKey('?'))
	if m.screen.Height() != 40-fullHelpHeight {
		t.Errorf("Screen height with full help = %d, want %d", m.screen.Height(), 40-fullHelpHeight)
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "Score") {
		t.Errorf("View should contain the HUD:\n%s", view)
	}
	if !strings.Contains(view, "quit") {
		t.Errorf("View should contain the help line:\n%s", view)
	}
}

func TestModelJournalsFinishedGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, game := newTestModel(t, store)

	for i := 0; i < 5000 && !game.State().GameOver; i++ {
		dirs := t2048.LegalDirections(game.Controller().Board())
		m, _ = update(t, m, arrowKeys[dirs[i%len(dirs)]])
		m, _ = update(t, m, TickMsg{})
	}
	if !game.State().GameOver {
		t.Fatal("Game should end within 5000 moves")
	}

	id := m.LastEntry()
	if id == "" {
		t.Fatal("Finished game should be journaled")
	}

	rec, err := store.GameByID(id)
	if err != nil || rec == nil {
		t.Fatalf("GameByID(%s) = %v, %v", id, rec, err)
	}
	if rec.Score != game.Controller().Score() {
		t.Errorf("Journaled score = %d, want %d", rec.Score, game.Controller().Score())
	}

	moves, err := t2048.ParseMoves(rec.Moves)
	if err != nil {
		t.Fatal(err)
	}
	replayed, err := t2048.Replay(t2048.RulesFromConfig(rec.Config), rec.Seed, moves)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if replayed.Grid() != game.Controller().Grid() {
		t.Errorf("Replay ended at\n%v\nwant\n%v", replayed.Grid(), game.Controller().Grid())
	}

	// Further ticks do not journal the same game twice
	update(t, m, TickMsg{})
	games, err := store.RecentGames("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Errorf("Journal has %d games, want 1", len(games))
	}

	// Restart starts a fresh game
	m, _ = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})
	if game.State().GameOver || game.Controller().Turns() != 0 {
		t.Error("r after game over should start a new game")
	}
}
