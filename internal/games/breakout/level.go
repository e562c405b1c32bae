// Package breakout implements the simulation core of a ball-and-paddle brick
// breaker: entities, levels, collision, power-ups and the game state machine.
package breakout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Tile codes in a level grid.
const (
	TileEmpty = 0 // no brick
	TileSolid = 1 // indestructible brick
	// Codes >= 2 are destructible bricks tinted by tileColors.
)

// ErrMalformedLevel is returned when a tile grid cannot be parsed or is not
// rectangular.
var ErrMalformedLevel = errors.New("malformed level")

// tileColors maps destructible tile codes to their tint. Codes without an
// entry are drawn white.
var tileColors = map[int]core.RGB{
	2: core.NewRGB(0.2, 0.6, 1.0),
	3: core.NewRGB(0.0, 0.7, 0.0),
	4: core.NewRGB(0.8, 0.8, 0.4),
	5: core.NewRGB(1.0, 0.5, 0.0),
}

var solidColor = core.NewRGB(0.8, 0.8, 0.7)

// Level is an ordered set of bricks built from a tile grid.
type Level struct {
	ID     string
	Name   string
	Tiles  [][]int // source grid [row][col], kept for rebuilding
	Width  float32 // play area covered by the grid
	Height float32
	Bricks []Entity
	Source LevelSource // where the grid was loaded from; zero for in-memory levels
}

// NewLevel validates the tile grid and lays its bricks out over a
// width x height area.
func NewLevel(id, name string, tiles [][]int, width, height float32) (*Level, error) {
	if err := validateTiles(tiles); err != nil {
		return nil, err
	}
	l := &Level{
		ID:     id,
		Name:   name,
		Tiles:  tiles,
		Width:  width,
		Height: height,
	}
	l.build()
	return l, nil
}

// build recreates every brick from the tile grid. Brick geometry tiles the
// level area without gaps or overlaps.
func (l *Level) build() {
	rows := len(l.Tiles)
	cols := len(l.Tiles[0])
	unitW := l.Width / float32(cols)
	unitH := l.Height / float32(rows)
	size := mgl32.Vec2{unitW, unitH}

	l.Bricks = l.Bricks[:0]
	for y, row := range l.Tiles {
		for x, tile := range row {
			if tile == TileEmpty {
				continue
			}
			pos := mgl32.Vec2{unitW * float32(x), unitH * float32(y)}
			if tile == TileSolid {
				brick := NewEntity(pos, size, SpriteBlockSolid, mgl32.Vec2{})
				brick.Color = solidColor
				brick.Solid = true
				l.Bricks = append(l.Bricks, brick)
				continue
			}
			brick := NewEntity(pos, size, SpriteBlock, mgl32.Vec2{})
			if c, ok := tileColors[tile]; ok {
				brick.Color = c
			}
			l.Bricks = append(l.Bricks, brick)
		}
	}
}

// Reset restores every brick to its initial, undestroyed state from the
// retained tile grid.
func (l *Level) Reset() {
	l.build()
}

// Clone creates a deep copy of the level.
func (l *Level) Clone() *Level {
	clone := &Level{
		ID:     l.ID,
		Name:   l.Name,
		Tiles:  make([][]int, len(l.Tiles)),
		Width:  l.Width,
		Height: l.Height,
		Bricks: make([]Entity, len(l.Bricks)),
		Source: l.Source,
	}
	for i, row := range l.Tiles {
		clone.Tiles[i] = append([]int(nil), row...)
	}
	copy(clone.Bricks, l.Bricks)
	return clone
}

// IsCompleted reports whether every destructible brick has been destroyed.
// Solid bricks never count.
func (l *Level) IsCompleted() bool {
	for i := range l.Bricks {
		if !l.Bricks[i].Solid && !l.Bricks[i].Destroyed {
			return false
		}
	}
	return true
}

// CountAlive returns the number of destructible bricks still standing.
func (l *Level) CountAlive() int {
	count := 0
	for i := range l.Bricks {
		if !l.Bricks[i].Solid && !l.Bricks[i].Destroyed {
			count++
		}
	}
	return count
}

// ParseTiles reads a grid of whitespace-separated non-negative integers, one
// row per line. Blank lines are skipped.
func ParseTiles(r io.Reader) ([][]int, error) {
	var tiles [][]int
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tiles = append(tiles, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading tiles: %w", err)
	}
	if err := validateTiles(tiles); err != nil {
		return nil, err
	}
	return tiles, nil
}

func parseRow(fields []string) ([]int, error) {
	row := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad tile %q", ErrMalformedLevel, f)
		}
		row[i] = n
	}
	return row, nil
}

func validateTiles(tiles [][]int) error {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return fmt.Errorf("%w: empty grid", ErrMalformedLevel)
	}
	cols := len(tiles[0])
	for i, row := range tiles {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrMalformedLevel, i+1, len(row), cols)
		}
		for _, tile := range row {
			if tile < 0 {
				return fmt.Errorf("%w: negative tile %d in row %d", ErrMalformedLevel, tile, i+1)
			}
		}
	}
	return nil
}
