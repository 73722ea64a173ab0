package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pitch.Width != 20 || cfg.Pitch.Height != 15 {
		t.Fatalf("expected 20x15 pitch, got %vx%v", cfg.Pitch.Width, cfg.Pitch.Height)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match.yaml")
	raw := "match:\n  seed: 99\nplayer:\n  max_shooting_force: 5.5\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Match.Seed != 99 {
		t.Fatalf("expected seed=99, got %d", cfg.Match.Seed)
	}
	if cfg.Player.MaxShootingForce != 5.5 {
		t.Fatalf("expected max_shooting_force=5.5, got %v", cfg.Player.MaxShootingForce)
	}
	// Untouched fields keep their defaults.
	if cfg.Player.MaxPassingForce != 3 {
		t.Fatalf("expected default max_passing_force=3, got %v", cfg.Player.MaxPassingForce)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match.yaml")
	if err := os.WriteFile(path, []byte("match:\n  seed: 99\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SOCCER_MATCH_SEED", "7")
	t.Setenv("SOCCER_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Match.Seed != 7 {
		t.Fatalf("env should win over yaml: expected seed=7, got %d", cfg.Match.Seed)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.Log.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Ball.Friction = 0.5
	cfg.Player.ChancePotShot = 2
	cfg.Match.TicksPerSecond = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"ball.friction", "player.chance_pot_shot", "ticks_per_second"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestValidate_RegionGridTooSmall(t *testing.T) {
	cfg := Default()
	cfg.Pitch.RegionCols = 3
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for a region grid that cannot hold the home-region tables")
	}
}

func TestTickDuration(t *testing.T) {
	cfg := Default()
	if got := cfg.TickDuration(); got != 1.0/60 {
		t.Fatalf("expected 1/60, got %v", got)
	}
}
