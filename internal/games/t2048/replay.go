package t2048

import (
	"errors"
	"fmt"
)

// ErrReplayDiverged is returned when a recorded move does not play out.
var ErrReplayDiverged = errors.New("t2048: replay diverged")

// Replay re-executes a recorded game from its seed.
// Spawns are the only consumer of randomness, so the same rules, seed and
// accepted moves always reproduce the same final position. A recorded move
// may be illegal only if it ended the game.
func Replay(rules Rules, seed int64, moves []Direction) (*Controller, error) {
	c := NewController(rules, seed)
	for i, dir := range moves {
		if c.GameOver() {
			return c, fmt.Errorf("%w: move %d (%s) after game over", ErrReplayDiverged, i, dir)
		}
		turn := c.ApplyMove(dir)
		if !turn.Legal && turn.Lifecycle != LifecycleGameOver {
			return c, fmt.Errorf("%w: move %d (%s) changed nothing", ErrReplayDiverged, i, dir)
		}
	}
	return c, nil
}

// ParseMoves converts journal names into directions.
func ParseMoves(names []string) ([]Direction, error) {
	moves := make([]Direction, 0, len(names))
	for i, name := range names {
		d, err := ParseDirection(name)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		moves = append(moves, d)
	}
	return moves, nil
}

// MoveNames converts directions into their journal names.
func MoveNames(moves []Direction) []string {
	names := make([]string, len(moves))
	for i, d := range moves {
		names[i] = d.String()
	}
	return names
}
