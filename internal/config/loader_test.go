package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultT2048Config(), cfg)
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("rules:\n  loss_policy: full_board\n"))
	require.NoError(t, err)

	assert.Equal(t, LossFullBoard, cfg.Rules.LossPolicy)
	assert.Equal(t, 0.5, cfg.Spawn.FourProbability, "untouched keys keep defaults")
	assert.Equal(t, 2, cfg.Spawn.InitialTiles)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"probability above one", "spawn:\n  four_probability: 1.5\n"},
		{"negative probability", "spawn:\n  four_probability: -0.1\n"},
		{"no initial tiles", "spawn:\n  initial_tiles: 0\n"},
		{"too many initial tiles", "spawn:\n  initial_tiles: 17\n"},
		{"initial value not power of two", "spawn:\n  initial_value: 6\n"},
		{"initial value of one", "spawn:\n  initial_value: 1\n"},
		{"unknown loss policy", "rules:\n  loss_policy: never\n"},
		{"negative animation", "animation:\n  slide_ticks: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("spawn: [unterminated"))
	require.Error(t, err)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spawn:\n  four_probability: 0.25\n"), 0o600))

	cfg, err := LoadT2048(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Spawn.FourProbability)
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := LoadT2048(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default
	cfg, err := LoadT2048("")
	require.NoError(t, err)
	assert.Equal(t, DefaultT2048Config(), cfg)

	// Local configs directory
	require.NoError(t, os.MkdirAll(filepath.Join(work, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "configs", "t2048.yaml"),
		[]byte("spawn:\n  four_probability: 0.3\n"), 0o600))
	cfg, err = LoadT2048("")
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Spawn.FourProbability)

	// User directory wins over local
	userDir := filepath.Join(home, ".t2048", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "t2048.yaml"),
		[]byte("spawn:\n  four_probability: 0.7\n"), 0o600))
	cfg, err = LoadT2048("")
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Spawn.FourProbability)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultT2048Config()

	require.NoError(t, ApplyT2048Preset(&cfg, ""))
	assert.Equal(t, 0.5, cfg.Spawn.FourProbability)

	require.NoError(t, ApplyT2048Preset(&cfg, DifficultyEasy))
	assert.Equal(t, 0.1, cfg.Spawn.FourProbability)

	require.NoError(t, ApplyT2048Preset(&cfg, DifficultyHard))
	assert.Equal(t, 0.75, cfg.Spawn.FourProbability)

	require.ErrorIs(t, ApplyT2048Preset(&cfg, "nightmare"), ErrInvalidConfig)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultT2048Config()
	cfg.Rules.LossPolicy = LossFullBoard

	data, err := Marshal(cfg)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
