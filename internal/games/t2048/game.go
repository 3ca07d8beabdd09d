// Package t2048 implements the 2048 sliding-tile puzzle: the board, the
// move-resolution engine, the turn controller and a tick-driven adapter that
// plugs the controller into the terminal platform.
package t2048

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant IDs.
const (
	IDStandard = "2048"
	IDClassic  = "2048_classic"
)

// Game adapts a Controller to the platform's tick loop.
type Game struct {
	id    string
	title string
	cfg   config.T2048Config // Effective configuration, loss policy included

	ctrl    *Controller
	seed    int64
	tick    uint64
	history []Direction
	anim    animator

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game that plays by the loaded configuration.
func New(cfg config.T2048Config) *Game {
	return &Game{
		id:    IDStandard,
		title: "2048",
		cfg:   cfg,
	}
}

// NewClassic creates a game that ends on the first move that leaves the
// board full, whether or not another direction could still merge.
func NewClassic(cfg config.T2048Config) *Game {
	cfg.Rules.LossPolicy = config.LossFullBoard
	return &Game{
		id:    IDClassic,
		title: "2048 (Classic)",
		cfg:   cfg,
	}
}

func init() {
	registry.Register(IDStandard, "Game over when the board is full and nothing can merge",
		func(cfg config.T2048Config) registry.Game {
			return New(cfg)
		})
	registry.Register(IDClassic, "Game over on any move that leaves the board full",
		func(cfg config.T2048Config) registry.Game {
			return NewClassic(cfg)
		})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a new game seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.ctrl = NewController(RulesFromConfig(g.cfg), cfg.Seed)
	g.tick = 0
	g.history = nil
	g.paused = false
	g.anim = newAnimator(g.cfg.Animation)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the layout for a new screen size.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height

	// Board, HUD and one spare line on each side
	g.tooSmall = width < minScreenW || height < minScreenH
}

// Step advances the game by one tick.
// Direction input is dropped while the previous turn is still animating.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.ctrl.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.anim.active() {
		g.anim.update()
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok || g.ctrl.GameOver() {
		return core.StepResult{State: g.State()}
	}

	turn := g.ctrl.ApplyMove(dir)
	if !turn.Legal {
		if turn.Lifecycle == LifecycleGameOver {
			// The move that ended a full board game is part of the record
			g.history = append(g.history, dir)
		}
		return core.StepResult{State: g.State()}
	}

	g.history = append(g.history, dir)
	g.anim.start(turn)

	return core.StepResult{State: g.State(), Moved: true}
}

// directionFor picks the move requested by an input frame.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.ctrl.Score(),
		GameOver: g.ctrl.GameOver(),
		Paused:   g.paused || g.tooSmall,
		Busy:     g.anim.active(),
	}
}

// Record returns what the journal needs to replay this game.
func (g *Game) Record() registry.Record {
	return registry.Record{
		Seed:    g.seed,
		Config:  g.cfg,
		Moves:   MoveNames(g.history),
		Score:   g.ctrl.Score(),
		MaxTile: g.ctrl.MaxTile(),
	}
}

// Controller exposes the underlying controller.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

var (
	_ registry.Game       = (*Game)(nil)
	_ registry.Recordable = (*Game)(nil)
)
