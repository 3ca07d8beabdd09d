package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recently finished games",
	Long: `Display the most recent games from the journal, newest first.
Without a variant, games of every variant are listed.

Examples:
  t2048 history
  t2048 history 2048_classic --limit 20
  t2048 history 2048 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the listed games from the journal")
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearGames(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing journal: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		logger.Info("journal cleared", "variant", gameID)
		return
	}

	games, err := store.RecentGames(gameID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	if gameID == "" {
		fmt.Println("Recent games")
	} else {
		fmt.Printf("Recent games - %s\n", gameID)
	}
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Finished games are journaled automatically. Run 't2048 play' to start one!")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-12s  %9s  %5s  %5s  %s\n", "ID", "Variant", "Score", "Max", "Moves", "Played")
	fmt.Printf("  %-36s  %-12s  %9s  %5s  %5s  %s\n", "--", "-------", "-----", "---", "-----", "------")

	for _, g := range games {
		fmt.Printf("  %-36s  %-12s  %9s  %5d  %5d  %s\n",
			g.ID, g.GameID, humanize.Comma(int64(g.Score)), g.MaxTile, g.MoveCount, humanize.Time(g.CreatedAt))
	}

	fmt.Println()
	fmt.Println("Run 't2048 replay <id>' to replay a game.")
}
