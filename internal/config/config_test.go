package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	want := DefaultBreakoutConfig()

	if cfg.World != want.World {
		t.Errorf("world = %+v, want %+v", cfg.World, want.World)
	}
	if cfg.Player != want.Player {
		t.Errorf("player = %+v, want %+v", cfg.Player, want.Player)
	}
	if cfg.Ball != want.Ball {
		t.Errorf("ball = %+v, want %+v", cfg.Ball, want.Ball)
	}
	if cfg.Gameplay != want.Gameplay {
		t.Errorf("gameplay = %+v, want %+v", cfg.Gameplay, want.Gameplay)
	}
	if len(cfg.PowerUps.Types) != len(want.PowerUps.Types) {
		t.Fatalf("power-up types = %d, want %d", len(cfg.PowerUps.Types), len(want.PowerUps.Types))
	}
	for name, rule := range want.PowerUps.Types {
		if cfg.PowerUps.Types[name] != rule {
			t.Errorf("powerups.types.%s = %+v, want %+v", name, cfg.PowerUps.Types[name], rule)
		}
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultBreakoutConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
		want   string
	}{
		{"zero width", func(c *BreakoutConfig) { c.World.Width = 0 }, "world size"},
		{"ratio above one", func(c *BreakoutConfig) { c.World.LevelHeightRatio = 1.5 }, "level_height_ratio"},
		{"negative radius", func(c *BreakoutConfig) { c.Ball.Radius = -1 }, "ball.radius"},
		{"no lives", func(c *BreakoutConfig) { c.Gameplay.Lives = 0 }, "gameplay.lives"},
		{"negative chance", func(c *BreakoutConfig) {
			c.PowerUps.Types["chaos"] = PowerUpRule{Chance: -1}
		}, "powerups.types.chaos.chance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadBreakoutCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	data := "gameplay:\n  lives: 7\nball:\n  velocity: [100, -200]\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBreakout(path)
	if err != nil {
		t.Fatalf("LoadBreakout: %v", err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("lives = %d, want 7", cfg.Gameplay.Lives)
	}
	if cfg.Ball.Velocity != (Vec2{100, -200}) {
		t.Errorf("velocity = %v, want [100 -200]", cfg.Ball.Velocity)
	}
	// Unset values keep their defaults.
	if cfg.Ball.Radius != 25 {
		t.Errorf("radius = %g, want default 25", cfg.Ball.Radius)
	}
	if cfg.PowerUps.Types["sticky"].Duration != 20 {
		t.Errorf("sticky duration = %g, want default 20", cfg.PowerUps.Types["sticky"].Duration)
	}
}

func TestLoadBreakoutCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBreakout(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("gameplay:\n  lives: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBreakout(invalid); err == nil {
		t.Error("expected error for invalid values")
	}
}

func TestApplyBreakoutPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		wantLives int
		wantWidth float64
		wantVY    float64
	}{
		{DifficultyEasy, 5, 260, -760},
		{DifficultyNormal, 3, 200, -950},
		{DifficultyHard, 2, 150, -1187.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			ApplyBreakoutPreset(&cfg, tt.preset)
			if cfg.Gameplay.Lives != tt.wantLives {
				t.Errorf("lives = %d, want %d", cfg.Gameplay.Lives, tt.wantLives)
			}
			if cfg.Player.Width != tt.wantWidth {
				t.Errorf("width = %g, want %g", cfg.Player.Width, tt.wantWidth)
			}
			if cfg.Ball.Velocity.Y() != tt.wantVY {
				t.Errorf("vy = %g, want %g", cfg.Ball.Velocity.Y(), tt.wantVY)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "Normal", "HARD"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) = %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
