package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func newTestModel(t *testing.T, opts ...breakout.Option) Model {
	t.Helper()
	game, err := breakout.New(config.DefaultBreakoutConfig(), opts...)
	if err != nil {
		t.Fatalf("breakout.New: %v", err)
	}
	return NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
}

func TestModelStartsGame(t *testing.T) {
	m := newTestModel(t)
	now := time.Unix(1000, 0)

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}, now)
	m = next.(Model)
	next, cmd := m.handleTick(now.Add(16 * time.Millisecond))
	m = next.(Model)

	if m.game.State() != breakout.StateActive {
		t.Errorf("state = %v, want active", m.game.State())
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.handleKey(runes("q"), time.Now())
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelEscapeOnlyQuitsFromWin(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEsc}, time.Now())
	if next.(Model).IsQuitting() {
		t.Error("esc in the menu should not quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "Press ENTER to start") {
		t.Errorf("view missing menu text:\n%s", view)
	}
	if got := strings.Count(view, "\n") + 1; got != 20 {
		t.Errorf("view has %d rows, want 20", got)
	}
}

func TestSaveRunsRecordsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultBreakoutConfig()
	cfg.Gameplay.Lives = 1
	game, err := breakout.New(cfg, SaveRuns(store, "alice", nil))
	if err != nil {
		t.Fatal(err)
	}

	game.Keys().Press(core.KeyEnter)
	game.ProcessInput(0)
	game.Ball().Collider.Stuck = false
	game.Ball().Position[1] = 1300
	game.Update(0.001)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if runs[0].Player != "alice" || runs[0].Won || runs[0].LevelID != "standard" {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestFrameDelta(t *testing.T) {
	base := time.Unix(1000, 0)
	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want float32
	}{
		{"first tick", time.Time{}, base, 1.0 / 60},
		{"normal", base, base.Add(20 * time.Millisecond), 0.02},
		{"stall", base, base.Add(time.Second), 0.05},
		{"clock backwards", base, base.Add(-time.Second), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := frameDelta(tt.last, tt.now, 60)
			if d := got - tt.want; d > 1e-6 || d < -1e-6 {
				t.Errorf("frameDelta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "hello")
	s.SetColored(6, 0, '#', core.NewRGB(1, 0, 0))
	s.SetColored(7, 0, '#', core.NewRGB(1, 0, 0))

	out := RenderScreen(s)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "##") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("rendered output should have 2 rows: %q", out)
	}
}
