package breakout

import (
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// fixedRand returns the same roll every time, reduced into range.
type fixedRand int

func (r fixedRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r) % n
}

// scriptedRand replays rolls in order, then repeats the last one.
type scriptedRand struct {
	rolls []int
	calls int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.rolls) == 0 {
		return 0
	}
	i := min(r.calls, len(r.rolls)-1)
	r.calls++
	return r.rolls[i] % n
}

// recordingSounds keeps every sound played.
type recordingSounds struct {
	played []Sound
}

func (s *recordingSounds) Play(snd Sound) {
	s.played = append(s.played, snd)
}

func (s *recordingSounds) count(snd Sound) int {
	n := 0
	for _, p := range s.played {
		if p == snd {
			n++
		}
	}
	return n
}

// memLevel returns an in-memory level source holding grid.
func memLevel(id, grid string) (LevelSource, fstest.MapFS) {
	fsys := fstest.MapFS{id + ".lvl": &fstest.MapFile{Data: []byte(grid)}}
	return LevelSource{ID: id, Name: id, FS: fsys, Path: id + ".lvl"}, fsys
}

// newTestGame creates a game on the default config over the given grids,
// with no power-up spawns unless opts override the random source.
func newTestGame(t *testing.T, cfg config.BreakoutConfig, grids []string, opts ...Option) *Game {
	t.Helper()
	srcs := make([]LevelSource, len(grids))
	for i, grid := range grids {
		srcs[i], _ = memLevel(string(rune('a'+i)), grid)
	}
	all := append([]Option{WithLevelSources(srcs...), WithRand(fixedRand(1))}, opts...)
	g, err := New(cfg, all...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// startGame moves a fresh game from menu to active.
func startGame(t *testing.T, g *Game) {
	t.Helper()
	g.Keys().Press(core.KeyEnter)
	g.ProcessInput(0)
	g.Keys().Release(core.KeyEnter)
	if g.State() != StateActive {
		t.Fatalf("state = %v, want active", g.State())
	}
}

// placeBall frees the ball and puts its center at (cx, cy).
func placeBall(g *Game, cx, cy float32, vel mgl32.Vec2) {
	r := g.ball.Radius()
	g.ball.Collider.Stuck = false
	g.ball.Position = mgl32.Vec2{cx - r, cy - r}
	g.ball.Velocity = vel
}

func approx(a, b float32) bool {
	return mgl32.Abs(a-b) < 1e-2
}
