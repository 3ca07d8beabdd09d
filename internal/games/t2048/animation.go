package t2048

import (
	"math"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// TileAnimation represents an animated tile.
type TileAnimation struct {
	Value    int     // Tile value before the move
	FromX    int     // Start position X (in cells)
	FromY    int     // Start position Y (in cells)
	ToX      int     // End position X (in cells)
	ToY      int     // End position Y (in cells)
	Progress float64 // 0.0 → 1.0
	Merged   bool    // Tile absorbed a neighbour (for visual effect)
	IsNew    bool    // Spawned tile (for pop effect)
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// PendingTile stores the spawned tile that pops in after the slide.
type PendingTile struct {
	X, Y  int
	Value int
}

// animator plays the slide of a turn followed by the pop of its spawned tile.
// It only affects presentation; the controller has already committed the turn.
type animator struct {
	slideTicks int
	popTicks   int

	phase   AnimationPhase
	ticks   int
	tiles   []TileAnimation
	pending *PendingTile
}

func newAnimator(cfg config.AnimationConfig) animator {
	return animator{
		slideTicks: cfg.SlideTicks,
		popTicks:   cfg.PopTicks,
	}
}

func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// start begins the slide animation for a committed turn.
func (a *animator) start(turn Turn) {
	a.pending = nil
	if turn.Spawned != nil {
		a.pending = &PendingTile{X: turn.Spawned.Col, Y: turn.Spawned.Row, Value: turn.Spawned.Value}
	}

	a.tiles = a.tiles[:0]
	for _, m := range turn.Moves {
		a.tiles = append(a.tiles, TileAnimation{
			Value:  m.Value,
			FromX:  m.From.Col,
			FromY:  m.From.Row,
			ToX:    m.To.Col,
			ToY:    m.To.Row,
			Merged: m.Merged,
		})
	}
	a.phase = PhaseSlide
	a.ticks = 0

	if a.slideTicks <= 0 {
		a.finish()
	}
}

// startPop begins the pop animation for the spawned tile.
func (a *animator) startPop(p PendingTile) {
	if a.popTicks <= 0 {
		a.reset()
		return
	}
	a.tiles = []TileAnimation{{
		Value: p.Value,
		FromX: p.X,
		FromY: p.Y,
		ToX:   p.X,
		ToY:   p.Y,
		IsNew: true,
	}}
	a.phase = PhasePop
	a.ticks = 0
}

// update advances the animation state.
// Returns true if animation is still in progress.
func (a *animator) update() bool {
	if !a.active() {
		return false
	}

	a.ticks++

	var duration int
	switch a.phase {
	case PhaseSlide:
		duration = a.slideTicks
	case PhasePop:
		duration = a.popTicks
	}

	progress := core.ClampF(float64(a.ticks)/float64(max(duration, 1)), 0, 1)
	for i := range a.tiles {
		a.tiles[i].Progress = progress
	}

	if a.ticks >= duration {
		a.finish()
		return a.active()
	}
	return true
}

// finish completes the current animation phase.
func (a *animator) finish() {
	if a.phase == PhaseSlide && a.pending != nil {
		p := *a.pending
		a.pending = nil
		a.startPop(p)
		return
	}
	a.reset()
}

func (a *animator) reset() {
	a.phase = PhaseNone
	a.ticks = 0
	a.tiles = nil
	a.pending = nil
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current position during animation, in cells.
func (t *TileAnimation) interpolatePosition() (x, y float64) {
	e := easeOutQuad(t.Progress)
	x = float64(t.FromX) + (float64(t.ToX)-float64(t.FromX))*e
	y = float64(t.FromY) + (float64(t.ToY)-float64(t.FromY))*e
	return x, y
}

// screenPosition converts an interpolated cell position into a screen offset.
func (t *TileAnimation) screenPosition() (px, py int) {
	x, y := t.interpolatePosition()
	return int(math.Round(x * cellWidth)), int(math.Round(y * cellHeight))
}
