package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// errReplayMismatch is returned when a replay does not reproduce the journaled result.
var errReplayMismatch = errors.New("replay does not match journal")

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a journaled game",
	Long: `Re-run a finished game from its seed and recorded moves, print the
final board and check that score and largest tile match the journal.

Examples:
  t2048 replay 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := replayEntry(store, args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// replayEntry replays one journal entry and prints the result.
func replayEntry(store *storage.Store, id string) error {
	rec, err := store.GameByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no journaled game with id %q", id)
	}

	moves, err := t2048.ParseMoves(rec.Moves)
	if err != nil {
		return fmt.Errorf("game %s: %w", id, err)
	}

	ctrl, err := t2048.Replay(t2048.RulesFromConfig(rec.Config), rec.Seed, moves)
	if err != nil {
		return fmt.Errorf("game %s: %w", id, err)
	}

	fmt.Printf("Game %s (%s), played %s\n", rec.ID, rec.GameID, humanize.Time(rec.CreatedAt))
	fmt.Println()
	fmt.Println(ctrl.Grid().String())
	fmt.Println()
	fmt.Printf("Score: %s  Max tile: %d  Moves: %d  Status: %s\n",
		humanize.Comma(int64(ctrl.Score())), ctrl.MaxTile(), ctrl.Turns(), ctrl.Lifecycle())

	if ctrl.Score() != rec.Score || ctrl.MaxTile() != rec.MaxTile {
		logger.Error("replay mismatch",
			"id", rec.ID,
			"journal_score", rec.Score, "replay_score", ctrl.Score(),
			"journal_max", rec.MaxTile, "replay_max", ctrl.MaxTile(),
		)
		return errReplayMismatch
	}
	logger.Info("replay verified", "id", rec.ID, "seed", rec.Seed, "moves", len(moves))
	return nil
}
