package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// LossPolicy decides when a full board ends the game.
type LossPolicy string

const (
	// LossNoMoves ends the game once the board is full and no direction can move.
	LossNoMoves LossPolicy = config.LossNoMoves
	// LossFullBoard ends the game on the first move that leaves the board
	// full, even if another direction could still merge.
	LossFullBoard LossPolicy = config.LossFullBoard
)

// Lifecycle is the overall game state.
type Lifecycle string

const (
	LifecyclePlaying  Lifecycle = "playing"
	LifecycleGameOver Lifecycle = "game_over"
)

// Rules configures spawning and the loss condition.
type Rules struct {
	FourProbability float64 // Chance that a spawned tile is a 4
	InitialTiles    int
	InitialValue    int
	LossPolicy      LossPolicy
}

// DefaultRules returns the standard rules: 50/50 spawns, two starting 2s,
// strict loss check.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultT2048Config())
}

// RulesFromConfig extracts the gameplay rules from a configuration.
func RulesFromConfig(cfg config.T2048Config) Rules {
	return Rules{
		FourProbability: cfg.Spawn.FourProbability,
		InitialTiles:    cfg.Spawn.InitialTiles,
		InitialValue:    cfg.Spawn.InitialValue,
		LossPolicy:      LossPolicy(cfg.Rules.LossPolicy),
	}
}

// normalized fills unset fields with their defaults.
func (r Rules) normalized() Rules {
	if r.InitialTiles <= 0 {
		r.InitialTiles = 2
	}
	if r.InitialTiles > maxTiles {
		r.InitialTiles = maxTiles
	}
	if !isTileValue(r.InitialValue) {
		r.InitialValue = 2
	}
	if r.LossPolicy != LossFullBoard {
		r.LossPolicy = LossNoMoves
	}
	return r
}

// Turn is the result of one ApplyMove call.
type Turn struct {
	Outcome
	Spawned   *Tile     // Tile added after a legal move, nil otherwise
	Lifecycle Lifecycle // Lifecycle after the turn
}

// State is a read-only view of the controller.
type State struct {
	Grid      Grid
	Tiles     []Tile
	Score     int
	MaxTile   int
	Turns     int
	Lifecycle Lifecycle
}

// Controller owns the board, the score and the game lifecycle.
// It performs no I/O; the platform drives it one turn at a time.
type Controller struct {
	rules     Rules
	rng       *rand.Rand
	board     Board
	score     int
	turns     int
	lifecycle Lifecycle
	nextID    TileID
}

// NewController creates a controller seeded for deterministic play and
// starts a fresh game.
func NewController(rules Rules, seed int64) *Controller {
	c := &Controller{
		rules: rules.normalized(),
		rng:   rand.New(rand.NewSource(seed)),
	}
	c.Reset()
	return c
}

// Reset discards the board and score and starts a new game.
// The random stream continues from where the previous game left it.
func (c *Controller) Reset() {
	c.board = NewBoard()
	c.score = 0
	c.turns = 0
	c.nextID = 0
	c.lifecycle = LifecyclePlaying

	for range c.rules.InitialTiles {
		c.spawn(c.rules.InitialValue)
	}
	c.lifecycle = c.evaluate()
}

// Restore loads an externally built position, e.g. for puzzles and tests.
func (c *Controller) Restore(b Board, score int) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if score < 0 {
		return fmt.Errorf("t2048: negative score %d", score)
	}
	c.board = b.Clone()
	c.score = score
	c.turns = 0
	c.nextID = b.maxID()
	c.lifecycle = c.evaluate()
	return nil
}

// ApplyMove plays one turn. Illegal moves and moves after game over change
// nothing, except that under LossFullBoard an illegal move on a full board
// ends the game.
func (c *Controller) ApplyMove(dir Direction) Turn {
	if c.lifecycle == LifecycleGameOver {
		return Turn{
			Outcome:   Outcome{Direction: dir, Board: c.board.Clone()},
			Lifecycle: c.lifecycle,
		}
	}

	out := Resolve(c.board, dir)
	turn := Turn{Outcome: out, Lifecycle: c.lifecycle}
	if !out.Legal {
		// Only an idle move can leave a full board full
		if _, valid := dir.axis(); valid && c.rules.LossPolicy == LossFullBoard && c.board.Full() {
			c.lifecycle = LifecycleGameOver
			turn.Lifecycle = c.lifecycle
		}
		return turn
	}

	c.board = out.Board.Clone()
	c.score += out.Score
	c.turns++

	if t, ok := c.spawn(c.spawnValue()); ok {
		turn.Spawned = &t
	}
	checkInvariants(c.board)

	c.lifecycle = c.evaluate()
	turn.Lifecycle = c.lifecycle
	return turn
}

// spawnValue draws the value of a tile spawned after a move.
func (c *Controller) spawnValue() int {
	if c.rng.Float64() < c.rules.FourProbability {
		return 4
	}
	return 2
}

// spawn places a tile with the given value on a uniformly random empty cell.
func (c *Controller) spawn(value int) (Tile, bool) {
	empty := c.board.EmptyCells()
	if len(empty) == 0 {
		return Tile{}, false
	}

	cell := empty[c.rng.Intn(len(empty))]
	c.nextID++
	t := Tile{ID: c.nextID, Value: value, Row: cell.Row, Col: cell.Col}
	if err := c.board.Place(t); err != nil {
		panic(err) // cell came from EmptyCells
	}
	return t, true
}

// evaluate returns the lifecycle implied by the current board.
// A full board with no legal direction is over under every policy.
func (c *Controller) evaluate() Lifecycle {
	if c.board.Full() && !CanMove(c.board) {
		return LifecycleGameOver
	}
	return LifecyclePlaying
}

// Board returns a copy of the current board.
func (c *Controller) Board() Board {
	return c.board.Clone()
}

// Grid returns the value view of the current board.
func (c *Controller) Grid() Grid {
	return c.board.Grid()
}

// Score returns the cumulative score.
func (c *Controller) Score() int {
	return c.score
}

// Turns returns the number of accepted moves since the last reset.
func (c *Controller) Turns() int {
	return c.turns
}

// Lifecycle returns the current lifecycle state.
func (c *Controller) Lifecycle() Lifecycle {
	return c.lifecycle
}

// GameOver reports whether the game has ended.
func (c *Controller) GameOver() bool {
	return c.lifecycle == LifecycleGameOver
}

// MaxTile returns the highest tile on the board.
func (c *Controller) MaxTile() int {
	return c.board.MaxTile()
}

// Rules returns the rules the controller plays by.
func (c *Controller) Rules() Rules {
	return c.rules
}

// State returns a read-only snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Grid:      c.board.Grid(),
		Tiles:     c.board.Tiles(),
		Score:     c.score,
		MaxTile:   c.board.MaxTile(),
		Turns:     c.turns,
		Lifecycle: c.lifecycle,
	}
}
