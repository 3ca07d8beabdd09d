// Package config provides YAML-based game configuration loading and
// difficulty presets for the 2048 game.
package config

import (
	"errors"
	"fmt"
)

// Loss policies understood by the game controller.
const (
	LossNoMoves   = "no_moves"
	LossFullBoard = "full_board"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Spawn     SpawnConfig     `yaml:"spawn"`
	Rules     RulesConfig     `yaml:"rules"`
	Animation AnimationConfig `yaml:"animation"`
}

// SpawnConfig defines how new tiles appear on the board.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"` // Chance of a 4 instead of a 2 (0.0-1.0)
	InitialTiles    int     `yaml:"initial_tiles"`
	InitialValue    int     `yaml:"initial_value"`
}

// RulesConfig defines the end-of-game rule.
type RulesConfig struct {
	LossPolicy string `yaml:"loss_policy"`
}

// AnimationConfig defines presentation timing in simulation ticks.
type AnimationConfig struct {
	SlideTicks int `yaml:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first out-of-range setting.
func (c T2048Config) Validate() error {
	if c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1 {
		return fmt.Errorf("%w: four_probability %v outside [0, 1]", ErrInvalidConfig, c.Spawn.FourProbability)
	}
	if c.Spawn.InitialTiles < 1 || c.Spawn.InitialTiles > 16 {
		return fmt.Errorf("%w: initial_tiles %d outside [1, 16]", ErrInvalidConfig, c.Spawn.InitialTiles)
	}
	if v := c.Spawn.InitialValue; v < 2 || v&(v-1) != 0 {
		return fmt.Errorf("%w: initial_value %d is not a power of two >= 2", ErrInvalidConfig, v)
	}
	switch c.Rules.LossPolicy {
	case LossNoMoves, LossFullBoard:
	default:
		return fmt.Errorf("%w: unknown loss_policy %q", ErrInvalidConfig, c.Rules.LossPolicy)
	}
	if c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0 {
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// FourProbabilityForPreset returns the spawn probability of a 4 for a preset.
// Unknown presets return -1.
func FourProbabilityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.1
	case DifficultyNormal:
		return 0.5
	case DifficultyHard:
		return 0.75
	default:
		return -1
	}
}
