package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [files...]",
	Short: "List or check levels",
	Long: `Shows the levels a game would load with the current config, in play
order, with their brick counts. Given level files, checks those instead.
Levels that fail to load are reported.

Examples:
  breakout levels
  breakout levels ./mine.lvl ./other.yaml`,
	Args: cobra.ArbitraryArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files := cfg.Levels
	if len(args) > 0 {
		files = args
	}
	sources := breakout.BuiltinLevelSources()
	if len(files) > 0 {
		sources = sources[:0]
		for _, f := range files {
			sources = append(sources, breakout.FileLevelSource(f))
		}
	}

	width := float32(cfg.World.Width)
	height := float32(cfg.World.Height * cfg.World.LevelHeightRatio)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, src := range sources {
		maxIDLen = max(maxIDLen, len(src.ID))
	}

	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "ID", "Bricks", "Solid", "Name")
	fmt.Printf("  %-*s  %-6s  %-5s  %s\n", maxIDLen, "--", "------", "-----", "----")

	failed := 0
	for _, src := range sources {
		l, err := breakout.LoadLevel(src, width, height)
		if err != nil {
			fmt.Printf("  %-*s  error: %v\n", maxIDLen, src.ID, err)
			failed++
			continue
		}
		solid := len(l.Bricks) - l.CountAlive()
		fmt.Printf("  %-*s  %-6d  %-5d  %s\n", maxIDLen, l.ID, l.CountAlive(), solid, l.Name)
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed to load", failed, len(sources))
	}
	fmt.Println("Run 'breakout play' and pick a level with W/S.")
	return nil
}
