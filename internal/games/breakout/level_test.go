package breakout

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseTiles(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][]int
		wantErr bool
	}{
		{"simple", "1 2\n3 0\n", [][]int{{1, 2}, {3, 0}}, false},
		{"blank lines ignored", "\n1 1 1\n\n2 2 2\n\n", [][]int{{1, 1, 1}, {2, 2, 2}}, false},
		{"extra whitespace", "  1\t 2 \n 3 4", [][]int{{1, 2}, {3, 4}}, false},
		{"ragged rows", "1 1 1\n1 1\n", nil, true},
		{"negative tile", "1 -2\n", nil, true},
		{"not a number", "1 x\n", nil, true},
		{"empty", "", nil, true},
		{"only blank lines", "\n\n  \n", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTiles(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !errors.Is(err, ErrMalformedLevel) {
					t.Errorf("error %v should wrap ErrMalformedLevel", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("rows = %d, want %d", len(got), len(tt.want))
			}
			for y := range tt.want {
				for x := range tt.want[y] {
					if got[y][x] != tt.want[y][x] {
						t.Errorf("tile[%d][%d] = %d, want %d", y, x, got[y][x], tt.want[y][x])
					}
				}
			}
		})
	}
}

func TestNewLevelRejectsNegativeTiles(t *testing.T) {
	if _, err := NewLevel("x", "x", [][]int{{1, -1}}, 100, 100); !errors.Is(err, ErrMalformedLevel) {
		t.Errorf("err = %v, want ErrMalformedLevel", err)
	}
}

func TestLevelGeometryTilesArea(t *testing.T) {
	tiles := [][]int{
		{1, 2, 0, 3},
		{0, 4, 5, 1},
	}
	l, err := NewLevel("geo", "Geometry", tiles, 800, 300)
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}
	if len(l.Bricks) != 6 {
		t.Fatalf("bricks = %d, want 6", len(l.Bricks))
	}

	var area float32
	for i := range l.Bricks {
		b := &l.Bricks[i]
		if b.Size.X() != 200 || b.Size.Y() != 150 {
			t.Errorf("brick %d size = %v, want [200 150]", i, b.Size)
		}
		area += b.Size.X() * b.Size.Y()
		for j := i + 1; j < len(l.Bricks); j++ {
			o := &l.Bricks[j]
			if b.Position.X() < o.Position.X()+o.Size.X() && o.Position.X() < b.Position.X()+b.Size.X() &&
				b.Position.Y() < o.Position.Y()+o.Size.Y() && o.Position.Y() < b.Position.Y()+b.Size.Y() {
				t.Errorf("bricks %d and %d overlap", i, j)
			}
		}
	}
	if area != 6*200*150 {
		t.Errorf("covered area = %v, want %v", area, 6*200*150)
	}

	first := l.Bricks[0]
	if !first.Solid || first.Position.X() != 0 || first.Position.Y() != 0 {
		t.Errorf("first brick = %+v, want solid at origin", first)
	}
	last := l.Bricks[len(l.Bricks)-1]
	if !last.Solid || last.Position.X() != 600 || last.Position.Y() != 150 {
		t.Errorf("last brick = %+v, want solid at (600,150)", last)
	}
	if l.Bricks[1].Color != tileColors[2] {
		t.Errorf("tile 2 color = %v, want %v", l.Bricks[1].Color, tileColors[2])
	}
}

func TestLevelIsCompleted(t *testing.T) {
	l, err := NewLevel("c", "c", [][]int{{1, 2, 3}}, 300, 100)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		destroyed []bool // per brick: solid, 2, 3
		want      bool
	}{
		{"fresh", []bool{false, false, false}, false},
		{"one left", []bool{false, true, false}, false},
		{"all destructible gone", []bool{false, true, true}, true},
		{"solid flag ignored", []bool{true, true, true}, true},
		{"only solid destroyed", []bool{true, false, false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, d := range tt.destroyed {
				l.Bricks[i].Destroyed = d
			}
			if got := l.IsCompleted(); got != tt.want {
				t.Errorf("IsCompleted = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelOnlySolidIsCompleted(t *testing.T) {
	l, err := NewLevel("s", "s", [][]int{{1, 1}, {0, 1}}, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !l.IsCompleted() {
		t.Error("a level with only solid bricks is already complete")
	}
}

func TestLevelResetAndClone(t *testing.T) {
	l, err := NewLevel("r", "r", [][]int{{2, 2}, {1, 3}}, 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	clone := l.Clone()

	for i := range l.Bricks {
		l.Bricks[i].Destroyed = true
	}
	l.Tiles[0][0] = 5

	if clone.CountAlive() != 3 {
		t.Errorf("clone alive = %d, want 3", clone.CountAlive())
	}
	if clone.Tiles[0][0] != 2 {
		t.Error("clone shares tile storage with the original")
	}

	l.Reset()
	if l.CountAlive() != 3 {
		t.Errorf("alive after reset = %d, want 3", l.CountAlive())
	}
}

func TestBuiltinLevelsLoad(t *testing.T) {
	for _, src := range BuiltinLevelSources() {
		t.Run(src.ID, func(t *testing.T) {
			l, err := LoadLevel(src, 2200, 600)
			if err != nil {
				t.Fatalf("LoadLevel: %v", err)
			}
			if l.CountAlive() == 0 {
				t.Error("level has no destructible bricks")
			}
			if l.IsCompleted() {
				t.Error("fresh level should not be completed")
			}
			if l.Source != src {
				t.Error("level should remember its source")
			}
		})
	}
}

func TestLoadLevelYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"arena.yaml": &fstest.MapFile{Data: []byte(`
id: arena
name: Arena
rows:
  - "1 1 1"
  - "2 0 2"
`)},
	}
	l, err := LoadLevel(LevelSource{ID: "file", FS: fsys, Path: "arena.yaml"}, 300, 200)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if l.ID != "arena" || l.Name != "Arena" {
		t.Errorf("id/name = %q/%q, want arena/Arena", l.ID, l.Name)
	}
	if len(l.Bricks) != 5 || l.CountAlive() != 2 {
		t.Errorf("bricks = %d alive = %d, want 5 and 2", len(l.Bricks), l.CountAlive())
	}
}

func TestLoadLevelErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"ragged.lvl": &fstest.MapFile{Data: []byte("1 1\n1\n")},
		"bad.yaml":   &fstest.MapFile{Data: []byte("rows: [1, [2]")},
	}

	tests := []struct {
		name string
		src  LevelSource
	}{
		{"missing file", LevelSource{FS: fsys, Path: "nope.lvl"}},
		{"ragged", LevelSource{FS: fsys, Path: "ragged.lvl"}},
		{"bad yaml", LevelSource{FS: fsys, Path: "bad.yaml"}},
		{"no filesystem", LevelSource{Path: "x.lvl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := LoadLevel(tt.src, 100, 100)
			if err == nil {
				t.Fatal("expected error")
			}
			if l != nil {
				t.Error("no level should be returned on error")
			}
		})
	}
}

func TestFileLevelSource(t *testing.T) {
	src := FileLevelSource("/tmp/levels/castle.lvl")
	if src.ID != "castle" || src.Path != "castle.lvl" {
		t.Errorf("source = %+v", src)
	}
}
