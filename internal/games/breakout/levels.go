package breakout

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.lvl
var builtinLevels embed.FS

// LevelSource names where a level's tile grid lives so it can be reloaded
// after the bricks have been destroyed.
type LevelSource struct {
	ID   string
	Name string
	FS   fs.FS
	Path string // slash-separated path inside FS
}

// String returns the source path for diagnostics.
func (s LevelSource) String() string {
	return s.Path
}

// BuiltinLevelSources returns the embedded level set in play order.
func BuiltinLevelSources() []LevelSource {
	return []LevelSource{
		{ID: "standard", Name: "Standard", FS: builtinLevels, Path: "levels/one.lvl"},
		{ID: "gaps", Name: "A few small gaps", FS: builtinLevels, Path: "levels/two.lvl"},
		{ID: "invader", Name: "Space invader", FS: builtinLevels, Path: "levels/three.lvl"},
		{ID: "galore", Name: "Bounce galore", FS: builtinLevels, Path: "levels/four.lvl"},
	}
}

// FileLevelSource returns a source for a level file on disk.
func FileLevelSource(file string) LevelSource {
	base := filepath.Base(file)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	return LevelSource{
		ID:   id,
		Name: id,
		FS:   os.DirFS(filepath.Dir(file)),
		Path: base,
	}
}

// yamlLevel is the YAML level layout. Each row is a whitespace-separated
// string of tile codes, the same as one line of a .lvl file.
type yamlLevel struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// LoadLevel reads and parses the level behind src, scaling it to a
// width x height area. Nothing is returned on error.
func LoadLevel(src LevelSource, width, height float32) (*Level, error) {
	if src.FS == nil {
		return nil, fmt.Errorf("loading level %s: no filesystem", src)
	}
	data, err := fs.ReadFile(src.FS, src.Path)
	if err != nil {
		return nil, fmt.Errorf("reading level %s: %w", src, err)
	}

	id, name := src.ID, src.Name
	var tiles [][]int

	switch strings.ToLower(path.Ext(src.Path)) {
	case ".yaml", ".yml":
		var yl yamlLevel
		if err := yaml.Unmarshal(data, &yl); err != nil {
			return nil, fmt.Errorf("parsing level %s: %w", src, err)
		}
		tiles, err = ParseTiles(strings.NewReader(strings.Join(yl.Rows, "\n")))
		if yl.ID != "" {
			id = yl.ID
		}
		if yl.Name != "" {
			name = yl.Name
		}
	default:
		tiles, err = ParseTiles(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing level %s: %w", src, err)
	}

	l, err := NewLevel(id, name, tiles, width, height)
	if err != nil {
		return nil, fmt.Errorf("building level %s: %w", src, err)
	}
	l.Source = src
	return l, nil
}
