package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Variant string
	Seed    int64
	Score   int
	Turns   int
	Board   Grid
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.ctrl.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.anim.active():
		state = StateAnimating
	}

	return Snapshot{
		Tick:    g.tick,
		Variant: g.id,
		Seed:    g.seed,
		Score:   g.ctrl.Score(),
		Turns:   g.ctrl.Turns(),
		Board:   g.ctrl.Grid(),
		MaxTile: g.ctrl.MaxTile(),
		State:   state,
	}
}
