package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play locally",
	Long: `Start a game in this terminal.

Controls:
  W/S, Up/Down      - Select level (menu)
  Enter             - Start / continue after a win
  A/D, Left/Right   - Move paddle
  Space             - Launch the ball
  Esc               - Quit from the win screen
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 5 lives, wider paddle, slower ball
  normal - the config as loaded
  hard   - 2 lives, narrower paddle, faster ball

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --config ./my-breakout.yaml
  breakout play --seed 42 --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := newLogger("breakout", io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = flagFPS

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc.Seed = seed

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := []breakout.Option{
		breakout.WithLogger(logger),
		breakout.WithRand(breakout.NewSimpleRNG(seed)),
		tui.SaveRuns(store, "", logger),
	}
	if !flagMute {
		speaker := audio.Open(logger)
		defer speaker.Close()
		opts = append(opts, breakout.WithSounds(speaker))
	}

	game, err := breakout.New(cfg, opts...)
	if err != nil {
		return err
	}
	logger.Info("game started", "levels", game.LevelCount(), "seed", seed)

	return tui.Run(game, rc)
}
