package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified rule variant.
Without a variant the interactive menu is shown.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  P/Esc            - Pause
  R                - Restart (after game over)
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options (chance that a new tile is a 4):
  easy   - 10%
  normal - 50%
  hard   - 75%

Without --difficulty a selector is shown before the game starts.

Examples:
  t2048 play 2048
  t2048 play 2048_classic --difficulty easy
  t2048 play 2048 --seed 42
  t2048 play 2048 --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runMenu(cmd, args)
		return
	}
	gameID := args[0]

	// Check if variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available variants.")
		os.Exit(1)
	}

	rules, err := loadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := openJournal()
	if store != nil {
		defer store.Close()
	}

	entry, ok, err := playVariant(gameID, rules, store, runtimeConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
	if ok && entry != "" {
		fmt.Printf("Game saved as %s\n", entry)
		fmt.Printf("Run 't2048 replay %s' to verify it.\n", entry)
	}
}

// playVariant asks for a difficulty unless --difficulty was given, then runs the game.
// ok is false when the player backed out of the selector.
func playVariant(gameID string, rules config.T2048Config, store *storage.Store, cfg core.RuntimeConfig) (entry string, ok bool, err error) {
	if flagDifficulty == "" {
		title := gameID
		if info, found := variantInfo(gameID); found {
			title = info.Title
		}
		option, selErr := tui.RunDifficultySelector(title, rules, cfg)
		if selErr != nil {
			return "", false, selErr
		}
		// User pressed back or quit
		if option == nil {
			return "", false, nil
		}
		if err := config.ApplyT2048Preset(&rules, option.Preset); err != nil {
			return "", false, err
		}
	}

	game, err := registry.Create(gameID, rules)
	if err != nil {
		return "", false, fmt.Errorf("creating game: %w", err)
	}

	gameLogger, closeLog := tuiLogger()
	defer closeLog()

	entry, err = tui.Run(game, store, gameLogger, cfg)
	if err != nil {
		return "", false, err
	}
	if entry != "" {
		logger.Info("game journaled", "variant", gameID, "id", entry)
	}
	return entry, true, nil
}

// variantInfo looks up the registry metadata of a variant.
func variantInfo(gameID string) (registry.GameInfo, bool) {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g, true
		}
	}
	return registry.GameInfo{}, false
}

// tuiLogger returns a logger that writes to ~/.t2048/t2048.log.
// Stderr is unusable while the alternate screen is active.
func tuiLogger() (*log.Logger, func()) {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           logger.GetLevel(),
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}
