package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Model is the Bubble Tea model that hosts one breakout game.
type Model struct {
	game      *breakout.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	holds     *HoldTracker
	lastTick  time.Time
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *breakout.Game, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		holds:     &HoldTracker{},
	}
}

// SaveRuns returns a game option that records every finished run in store
// under the given player name. Save errors are logged and otherwise ignored.
func SaveRuns(store *storage.Store, player string, logger *log.Logger) breakout.Option {
	return breakout.WithRunHandler(func(r breakout.RunResult) {
		if store == nil {
			return
		}
		_, err := store.SaveRun(storage.Run{
			LevelID:   r.LevelID,
			LevelName: r.LevelName,
			Player:    player,
			Won:       r.Won,
			LivesLeft: r.LivesLeft,
			Bricks:    r.Bricks,
			PowerUps:  r.PowerUps,
			Elapsed:   r.Elapsed,
		})
		if err != nil && logger != nil {
			logger.Warn("run not saved", "level", r.LevelID, "err", err)
		}
	})
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	k, isQuit := m.keyMapper.MapKey(msg)
	if isQuit || (k == core.KeyEscape && m.game.State() == breakout.StateWin) {
		m.quitting = true
		return m, tea.Quit
	}
	m.holds.Press(k, now, m.game.Keys())
	return m, nil
}

// handleTick advances the simulation by the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	m.game.ProcessInput(dt)
	m.game.Update(dt)
	m.holds.Expire(now, m.game.Keys())

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".breakout", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.CurrentLevel().ID, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game *breakout.Game, cfg core.RuntimeConfig) error {
	model := NewModel(game, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
