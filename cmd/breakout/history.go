package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagPlain bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past runs",
	Long: `Browse recorded runs per level. In a terminal this opens an interactive
browser; with --plain (or when stdout is not a terminal) the latest runs are
printed.

Examples:
  breakout history
  breakout history --plain`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the latest runs instead of opening the browser")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		return printHistory(store)
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	var levels []tui.LevelInfo
	for _, src := range breakout.BuiltinLevelSources() {
		levels = append(levels, tui.LevelInfo{ID: src.ID, Name: src.Name})
	}
	// Levels from custom configs only appear once played.
	stats, err := store.GetAllLevelStats()
	if err == nil {
		for id := range stats {
			if !hasLevel(levels, id) {
				levels = append(levels, tui.LevelInfo{ID: id, Name: id})
			}
		}
	}

	return tui.RunHistory(store, levels, width, height)
}

func hasLevel(levels []tui.LevelInfo, id string) bool {
	for _, l := range levels {
		if l.ID == id {
			return true
		}
	}
	return false
}

func printHistory(store *storage.Store) error {
	runs, err := store.RecentRuns(20)
	if err != nil {
		return err
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-8s  %-6s  %-10s  %s\n", "Level", "Result", "Time", "Bricks", "Player", "Date")
	fmt.Printf("  %-16s  %-6s  %-8s  %-6s  %-10s  %s\n", "-----", "------", "----", "------", "------", "----")

	for _, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-16s  %-6s  %-8s  %-6d  %-10s  %s\n",
			r.LevelID, result, r.Elapsed.Round(100*time.Millisecond), r.Bricks, player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
