package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	BrickGlyph      = '█'
	SolidBrickGlyph = '▓'
	PaddleGlyph     = '▀'
	BallGlyph       = '●'
	ParticleGlyph   = '·'
	BorderHoriz     = '─'
)

var powerUpGlyphs = [PowerUpCount]rune{
	PowerUpSpeed:           'S',
	PowerUpSticky:          'T',
	PowerUpPassThrough:     'P',
	PowerUpPadSizeIncrease: '+',
	PowerUpConfuse:         '?',
	PowerUpChaos:           '!',
}

// Glyph returns the rune a falling power-up is drawn with.
func (t PowerUpType) Glyph() rune {
	if t < 0 || t >= PowerUpCount {
		return '*'
	}
	return powerUpGlyphs[t]
}

// Minimum screen size the renderer can lay the play area out on.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// hudRows is the number of rows above the play area.
const hudRows = 2

// Render draws the current game state to the screen. It only reads state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	area := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	if g.effects.Shake {
		area.X++
	}
	vp := core.NewViewport(g.width, g.height, area)

	g.renderBricks(dst, vp)
	g.renderParticles(dst, vp)
	g.renderPowerUps(dst, vp)
	g.renderEntity(dst, vp, g.player, PaddleGlyph)
	g.renderEntity(dst, vp, g.ball, BallGlyph)

	g.postProcess(dst, core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows))

	g.renderHUD(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderEntity(dst *core.Screen, vp core.Viewport, e *Entity, glyph rune) {
	dst.FillRect(vp.Project(e.Position.X(), e.Position.Y(), e.Size.X(), e.Size.Y()), glyph, e.Color)
}

func (g *Game) renderBricks(dst *core.Screen, vp core.Viewport) {
	level := g.CurrentLevel()
	for i := range level.Bricks {
		brick := &level.Bricks[i]
		if brick.Destroyed {
			continue
		}
		glyph := BrickGlyph
		if brick.Solid {
			glyph = SolidBrickGlyph
		}
		g.renderEntity(dst, vp, brick, glyph)
	}
}

func (g *Game) renderParticles(dst *core.Screen, vp core.Viewport) {
	for _, p := range g.particles.Particles() {
		if !p.Alive() || p.Alpha <= 0 {
			continue
		}
		x, y := vp.Point(p.Position.X(), p.Position.Y())
		if !vp.Cells.Intersects(core.NewRect(x, y, 1, 1)) {
			continue
		}
		dst.SetColored(x, y, ParticleGlyph, p.Color.Scale(p.Alpha))
	}
}

func (g *Game) renderPowerUps(dst *core.Screen, vp core.Viewport) {
	for _, p := range g.powerups.PowerUps {
		if p.Destroyed {
			continue
		}
		g.renderEntity(dst, vp, p, p.PowerUp.Type.Glyph())
	}
}

// postProcess applies the screen-space effects to the play area: confuse
// flips it on both axes and inverts colours, chaos cycles colour channels.
func (g *Game) postProcess(dst *core.Screen, area core.Rect) {
	if g.effects.Confuse {
		cells := make([]core.Cell, 0, area.W*area.H)
		for y := area.Y; y < area.Bottom(); y++ {
			for x := area.X; x < area.Right(); x++ {
				cells = append(cells, dst.GetCell(x, y))
			}
		}
		i := len(cells) - 1
		for y := area.Y; y < area.Bottom(); y++ {
			for x := area.X; x < area.Right(); x++ {
				c := cells[i]
				i--
				if c.Tinted {
					dst.SetColored(x, y, c.Rune, c.Color.Invert())
				} else {
					dst.Set(x, y, c.Rune)
				}
			}
		}
	}

	if g.effects.Chaos {
		phase := int(g.elapsed*6) % 3
		for y := area.Y; y < area.Bottom(); y++ {
			for x := area.X; x < area.Right(); x++ {
				c := dst.GetCell(x, y)
				if !c.Tinted {
					continue
				}
				dst.SetColored(x, y, c.Rune, rotateChannels(c.Color, phase+x+y))
			}
		}
	}
}

func rotateChannels(c core.RGB, n int) core.RGB {
	switch n % 3 {
	case 1:
		return core.NewRGB(c.G, c.B, c.R)
	case 2:
		return core.NewRGB(c.B, c.R, c.G)
	default:
		return c
	}
}

// renderHUD draws lives, level and active power-ups.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Lives: %d", g.lives))

	level := g.CurrentLevel()
	levelText := fmt.Sprintf("Level %d/%d: %s", g.level+1, len(g.levels), level.Name)
	dst.DrawText(dst.Width()-len([]rune(levelText))-1, 0, levelText)

	if effects := g.effectsString(); effects != "" {
		dst.DrawText(1, 1, effects)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
}

// effectsString lists timed effects in force with their seconds left.
func (g *Game) effectsString() string {
	result := ""
	for t := PowerUpType(0); t < PowerUpCount; t++ {
		if g.powerups.ActiveCount(t) == 0 || t.Instantaneous() {
			continue
		}
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%s(%.0f)", t, g.powerups.Remaining(t))
	}
	return result
}

// renderOverlay draws state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateMenu:
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid, "Press ENTER to start")
		dst.DrawTextCentered(mid+1, "Press W or S to select level")
		dst.DrawTextCentered(mid+3, fmt.Sprintf("< %s >", g.CurrentLevel().Name))

	case StateActive:
		if g.ball.Stuck() {
			dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
		}

	case StateWin:
		g.drawCenteredBox(dst, "You WON!!!", "Press ENTER to retry or ESC to quit")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
