package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/maplib"
	"github.com/charmbracelet/log"
)

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.BlockSize != 20 || len(cfg.Game.Levels) != 5 {
		t.Errorf("Expected defaults, got block %d and %d levels", cfg.Game.BlockSize, len(cfg.Game.Levels))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected the file to be created: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if again.Game.Variant != cfg.Game.Variant || again.HighScore != cfg.HighScore {
		t.Errorf("Reloaded config differs: %+v vs %+v", again.HighScore, cfg.HighScore)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.json")
	raw := `{
  "game": {"variant": "classic", "width": 400, "height": 300},
  "high_score": {"backend": "sqlite", "path": "runs.db"},
  "log": {"level": "debug"}
}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.Variant != game.VariantClassic || cfg.Game.Width != 400 || cfg.Game.Height != 300 {
		t.Errorf("Game overrides lost: %+v", cfg.Game)
	}
	if cfg.Game.BlockSize != 20 || cfg.Game.FoodPoints != 1 {
		t.Errorf("Unset fields should keep their defaults: %+v", cfg.Game)
	}
	if cfg.HighScore.Backend != "sqlite" || cfg.LogLevel() != log.DebugLevel {
		t.Errorf("Unexpected overrides %+v %v", cfg.HighScore, cfg.LogLevel())
	}
	if !cfg.Audio.Enabled {
		t.Error("Audio default lost")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"misaligned", `{"game": {"variant": "classic", "width": 410}}`},
		{"backend", `{"high_score": {"backend": "redis"}}`},
		{"level", `{"log": {"level": "loud"}}`},
		{"scale", `{"window": {"scale": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snake.json")
			if err := os.WriteFile(path, []byte(tt.raw), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestGameErrorsKeepTheirSentinel(t *testing.T) {
	cfg := Default()
	cfg.Game.BlockSize = 0
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) || !errors.Is(err, game.ErrInvalidConfig) {
		t.Errorf("Expected both sentinels, got %v", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestLevelLayoutNamesInJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.json")
	raw := `{"game": {"levels": [{"width": 400, "height": 400, "layout": "maze"}]}}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Game.Levels) != 1 || cfg.Game.Levels[0].Layout != maplib.LayoutMaze {
		t.Errorf("Unexpected levels %+v", cfg.Game.Levels)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SNAKE_AUDIO_ENABLED", "false")
	t.Setenv("SNAKE_MASTER_VOLUME", "150")
	t.Setenv("SNAKE_LOG_LEVEL", "warn")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.Audio.Volume.Master != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", cfg.Audio.Volume.Master)
	}
	if cfg.LogLevel() != log.WarnLevel {
		t.Errorf("Expected warn level, got %v", cfg.LogLevel())
	}
}
