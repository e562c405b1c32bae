package breakout

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// State is the phase of a game session.
type State int

const (
	StateMenu   State = iota // level select, waiting for start
	StateActive              // ball in play
	StateWin                 // level cleared, waiting for acknowledgement
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateActive:
		return "active"
	case StateWin:
		return "win"
	default:
		return "?"
	}
}

// RunResult describes a finished run: a cleared level or the last life lost.
type RunResult struct {
	LevelID   string
	LevelName string
	Won       bool
	LivesLeft int
	Bricks    int           // destructible bricks destroyed
	PowerUps  int           // power-ups collected
	Elapsed   time.Duration // simulated time spent active
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for diagnostics. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSounds sets the audio sink. The default is silent.
func WithSounds(s SoundPlayer) Option {
	return func(g *Game) {
		if s != nil {
			g.sounds = s
		}
	}
}

// WithRand sets the random source for power-up spawns and particles.
func WithRand(r RandSource) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithLevelSources overrides the level set named by the config.
func WithLevelSources(srcs ...LevelSource) Option {
	return func(g *Game) {
		g.sources = srcs
	}
}

// WithRunHandler registers fn to be called whenever a run finishes.
func WithRunHandler(fn func(RunResult)) Option {
	return func(g *Game) {
		g.onRun = fn
	}
}

// settings are the config values the simulation reads every frame.
type settings struct {
	playerSize        mgl32.Vec2
	playerSpeed       float32
	ballRadius        float32
	ballVelocity      mgl32.Vec2
	paddleStrength    float32
	lives             int
	shakeSeconds      float32
	particlesPerFrame int
	levelHeight       float32
}

// Game owns every entity of a session and advances it frame by frame. It is
// not safe for concurrent use; the host calls ProcessInput, Update and
// Render from one goroutine.
type Game struct {
	state State
	keys  core.KeyState

	width  float32
	height float32
	levels []*Level
	level  int
	lives  int

	player    *Entity
	ball      *Entity
	powerups  *PowerUpManager
	particles *ParticlePool
	effects   PostEffects

	settings settings
	sources  []LevelSource
	logger   *log.Logger
	sounds   SoundPlayer
	rng      RandSource
	onRun    func(RunResult)

	run     RunResult // stats of the run in progress
	elapsed float32   // total simulated seconds
}

// New creates a game in the menu state. Levels that fail to load are logged
// and skipped; New fails only when none load or the config is invalid.
func New(cfg config.BreakoutConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pcfg, err := powerUpConfigFrom(cfg.PowerUps)
	if err != nil {
		return nil, err
	}

	g := &Game{
		state:  StateMenu,
		width:  float32(cfg.World.Width),
		height: float32(cfg.World.Height),
		settings: settings{
			playerSize:        mgl32.Vec2{float32(cfg.Player.Width), float32(cfg.Player.Height)},
			playerSpeed:       float32(cfg.Player.Speed),
			ballRadius:        float32(cfg.Ball.Radius),
			ballVelocity:      mgl32.Vec2{float32(cfg.Ball.Velocity.X()), float32(cfg.Ball.Velocity.Y())},
			paddleStrength:    float32(cfg.Ball.PaddleStrength),
			lives:             cfg.Gameplay.Lives,
			shakeSeconds:      float32(cfg.Gameplay.ShakeSeconds),
			particlesPerFrame: cfg.Gameplay.Particles.PerFrame,
			levelHeight:       float32(cfg.World.Height * cfg.World.LevelHeightRatio),
		},
		logger: log.New(io.Discard),
		sounds: NopSounds{},
		rng:    NewSimpleRNG(0),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.sources == nil {
		g.sources = levelSourcesFrom(cfg.Levels)
	}
	var loadErrs []error
	for _, src := range g.sources {
		if err := g.LoadLevel(src); err != nil {
			loadErrs = append(loadErrs, err)
		}
	}
	if len(g.levels) == 0 {
		if len(loadErrs) == 0 {
			return nil, errors.New("breakout: no levels configured")
		}
		return nil, fmt.Errorf("breakout: no playable levels: %w", errors.Join(loadErrs...))
	}

	g.lives = g.settings.lives
	g.powerups = NewPowerUpManager(g.rng, pcfg)
	pc := DefaultParticleConfig()
	pc.Amount = cfg.Gameplay.Particles.Amount
	pc.PerFrame = cfg.Gameplay.Particles.PerFrame
	g.particles = NewParticlePool(pc, g.rng)

	player := NewEntity(g.playerStart(), g.settings.playerSize, SpritePaddle, mgl32.Vec2{})
	g.player = &player
	g.ball = NewBall(g.ballStart(), g.settings.ballRadius, g.settings.ballVelocity)

	return g, nil
}

// powerUpConfigFrom converts the YAML power-up section. Types the config
// leaves out never spawn.
func powerUpConfigFrom(c config.BreakoutPowerUps) (PowerUpConfig, error) {
	pcfg := DefaultPowerUpConfig()
	pcfg.Rules = [PowerUpCount]PowerUpRule{}
	for name, rule := range c.Types {
		t, err := ParsePowerUpType(name)
		if err != nil {
			return PowerUpConfig{}, fmt.Errorf("config: powerups.types: %w", err)
		}
		pcfg.Rules[t] = PowerUpRule{Chance: rule.Chance, Duration: float32(rule.Duration)}
	}
	pcfg.Size = mgl32.Vec2{float32(c.Size.X()), float32(c.Size.Y())}
	pcfg.FallSpeed = float32(c.FallSpeed)
	pcfg.SpeedFactor = float32(c.SpeedFactor)
	pcfg.PadIncrease = float32(c.PadIncrease)
	return pcfg, nil
}

func levelSourcesFrom(files []string) []LevelSource {
	if len(files) == 0 {
		return BuiltinLevelSources()
	}
	srcs := make([]LevelSource, len(files))
	for i, f := range files {
		srcs[i] = FileLevelSource(f)
	}
	return srcs
}

// LoadLevel loads src and appends it to the level set. On failure nothing is
// installed and the error is returned.
func (g *Game) LoadLevel(src LevelSource) error {
	l, err := LoadLevel(src, g.width, g.settings.levelHeight)
	if err != nil {
		g.logger.Warn("level not loaded", "source", src, "err", err)
		return err
	}
	g.levels = append(g.levels, l)
	g.logger.Debug("level loaded", "id", l.ID, "bricks", len(l.Bricks))
	return nil
}

func (g *Game) playerStart() mgl32.Vec2 {
	size := g.settings.playerSize
	return mgl32.Vec2{g.width/2 - size.X()/2, g.height - size.Y()}
}

// ballStart rests the ball on top of the paddle, centered.
func (g *Game) ballStart() mgl32.Vec2 {
	r := g.settings.ballRadius
	return g.player.Position.Add(mgl32.Vec2{g.player.Size.X()/2 - r, -r * 2})
}

// State returns the current phase.
func (g *Game) State() State {
	return g.state
}

// Keys returns the key state the host feeds.
func (g *Game) Keys() *core.KeyState {
	return &g.keys
}

// Lives returns the lives left.
func (g *Game) Lives() int {
	return g.lives
}

// LevelIndex returns the index of the selected level.
func (g *Game) LevelIndex() int {
	return g.level
}

// LevelCount returns the number of loaded levels.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// CurrentLevel returns the selected level.
func (g *Game) CurrentLevel() *Level {
	return g.levels[g.level]
}

// Player returns the paddle.
func (g *Game) Player() *Entity {
	return g.player
}

// Ball returns the ball.
func (g *Game) Ball() *Entity {
	return g.ball
}

// PowerUps returns the live power-up collection.
func (g *Game) PowerUps() []*Entity {
	return g.powerups.PowerUps
}

// Effects returns the post-processing switches.
func (g *Game) Effects() PostEffects {
	return g.effects
}

// WorldSize returns the play area in world units.
func (g *Game) WorldSize() (float32, float32) {
	return g.width, g.height
}

// SelectLevel selects level i, wrapping around the level set.
func (g *Game) SelectLevel(i int) {
	n := len(g.levels)
	g.level = ((i % n) + n) % n
}

func (g *Game) setState(s State) {
	if s == g.state {
		return
	}
	g.logger.Debug("state change", "from", g.state, "to", s)
	if g.state == StateMenu && s == StateActive {
		l := g.CurrentLevel()
		g.lives = g.settings.lives
		g.run = RunResult{LevelID: l.ID, LevelName: l.Name}
	}
	g.state = s
}

// ProcessInput applies held keys and one-shot key presses for this frame.
func (g *Game) ProcessInput(dt float32) {
	switch g.state {
	case StateMenu:
		if g.keys.TakeEdge(core.KeyEnter) {
			g.setState(StateActive)
			return
		}
		if g.keys.TakeEdge(core.KeyW) {
			g.SelectLevel(g.level + 1)
		}
		if g.keys.TakeEdge(core.KeyS) {
			g.SelectLevel(g.level - 1)
		}

	case StateWin:
		if g.keys.TakeEdge(core.KeyEnter) {
			g.effects.SetChaos(false)
			g.setState(StateMenu)
		}

	case StateActive:
		step := g.settings.playerSpeed * dt
		var dx float32
		if g.keys.Down(core.KeyA) {
			dx -= step
		}
		if g.keys.Down(core.KeyD) {
			dx += step
		}
		if dx != 0 {
			g.movePaddle(dx)
		}
		if g.keys.Down(core.KeySpace) {
			g.ball.Collider.Stuck = false
		}
	}
}

// movePaddle shifts the paddle within the play area, dragging a stuck ball
// along by the same amount.
func (g *Game) movePaddle(dx float32) {
	maxX := max(g.width-g.player.Size.X(), 0)
	x := mgl32.Clamp(g.player.Position.X()+dx, 0, maxX)
	moved := x - g.player.Position.X()
	g.player.Position[0] = x
	if g.ball.Stuck() {
		g.ball.Position[0] += moved
	}
}

// Update advances the simulation by dt seconds.
func (g *Game) Update(dt float32) {
	g.elapsed += dt
	if g.state == StateActive {
		g.run.Elapsed += time.Duration(float64(dt) * float64(time.Second))
	}

	g.ball.MoveBall(dt, g.width)
	g.doCollisions()

	r := g.ball.Radius()
	g.particles.Update(dt, g.ball, g.settings.particlesPerFrame, mgl32.Vec2{r / 2, r / 2})
	g.powerups.Update(dt, g.targets())
	g.effects.Update(dt)

	if g.ball.Position.Y() >= g.height {
		g.lives--
		g.logger.Info("life lost", "lives", g.lives)
		if g.lives <= 0 {
			g.lives = 0
			g.finishRun(false)
			g.ResetLevel()
			g.setState(StateMenu)
		}
		g.ResetPlayer()
	}

	if g.state == StateActive && g.CurrentLevel().IsCompleted() {
		g.finishRun(true)
		g.ResetLevel()
		g.ResetPlayer()
		g.effects.SetChaos(true)
		g.setState(StateWin)
	}
}

func (g *Game) targets() EffectTargets {
	return EffectTargets{Ball: g.ball, Paddle: g.player, Effects: &g.effects, WorldWidth: g.width}
}

// doCollisions resolves the ball against every live brick in storage order,
// collects power-ups, then bounces the ball off the paddle.
func (g *Game) doCollisions() {
	level := g.CurrentLevel()
	for i := range level.Bricks {
		box := &level.Bricks[i]
		if box.Destroyed {
			continue
		}
		hit, ok := CheckBallCollision(g.ball, box)
		if !ok {
			continue
		}

		if box.Solid {
			g.effects.StartShake(g.settings.shakeSeconds)
			g.sounds.Play(SoundSolid)
		} else {
			box.Destroyed = true
			g.run.Bricks++
			g.powerups.Spawn(box.Position)
			g.sounds.Play(SoundBleep)
		}

		if g.ball.Collider.PassThrough && !box.Solid {
			continue
		}
		ResolveBrickCollision(g.ball, hit)
	}

	for _, t := range g.powerups.Collect(g.targets(), g.height) {
		g.run.PowerUps++
		g.sounds.Play(SoundPowerUp)
		g.logger.Debug("power-up collected", "type", t)
	}

	if g.ball.Stuck() {
		return
	}
	if _, ok := CheckBallCollision(g.ball, g.player); ok {
		ResolvePaddleCollision(g.ball, g.player, g.settings.ballVelocity.X(), g.settings.paddleStrength)
		g.sounds.Play(SoundPaddle)
	}
}

// ResetLevel reloads the current level from its source. If the source can
// no longer be read the bricks are rebuilt from the grid held in memory.
func (g *Game) ResetLevel() {
	l := g.CurrentLevel()
	if l.Source.FS != nil {
		fresh, err := LoadLevel(l.Source, l.Width, l.Height)
		if err == nil {
			g.levels[g.level] = fresh
			return
		}
		g.logger.Warn("level reload failed, rebuilding from memory", "source", l.Source, "err", err)
	}
	l.Reset()
}

// ResetPlayer puts the paddle and ball back at their starting positions and
// clears every modifier and power-up.
func (g *Game) ResetPlayer() {
	g.player.Size = g.settings.playerSize
	g.player.Position = g.playerStart()
	g.player.Color = core.White

	g.ball.ResetBall(g.ballStart(), g.settings.ballVelocity)
	g.ball.Color = core.White

	g.effects.SetConfuse(false)
	g.effects.SetChaos(false)
	g.powerups.Reset()
}

func (g *Game) finishRun(won bool) {
	g.run.Won = won
	g.run.LivesLeft = g.lives
	g.logger.Info("run finished",
		"level", g.run.LevelID,
		"won", won,
		"lives", g.lives,
		"bricks", g.run.Bricks,
		"elapsed", g.run.Elapsed.Round(time.Millisecond),
	)
	if g.onRun != nil {
		g.onRun(g.run)
	}
}
