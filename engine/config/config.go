package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/1siamBot/snake/engine/audio"
	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/highscore"
	"github.com/charmbracelet/log"
)

// DefaultPath is where the frontends look for their settings
const DefaultPath = "snake.json"

var ErrInvalid = errors.New("invalid configuration")

type HighScoreConfig struct {
	Backend string `json:"backend"` // "file" or "sqlite"
	Path    string `json:"path"`
}

type AudioConfig struct {
	Enabled bool         `json:"enabled"`
	Volume  audio.Volume `json:"volume"`
}

type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"` // terminal frontend only; empty discards
}

type WindowConfig struct {
	Title string  `json:"title"`
	Scale float64 `json:"scale"`
}

// Config holds everything read from the settings file
type Config struct {
	Game      game.Config     `json:"game"`
	HighScore HighScoreConfig `json:"high_score"`
	Audio     AudioConfig     `json:"audio"`
	Log       LogConfig       `json:"log"`
	Window    WindowConfig    `json:"window"`
}

func Default() Config {
	return Config{
		Game: game.DefaultConfig(),
		HighScore: HighScoreConfig{
			Backend: highscore.BackendFile,
			Path:    "highscore.txt",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  audio.DefaultVolume(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Window: WindowConfig{
			Title: "Snake",
			Scale: 1,
		},
	}
}

// Load reads the settings at path on top of the defaults. A missing file is
// created with the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return cfg, fmt.Errorf("create %s: %w", path, err)
		}
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ApplyEnv overrides audio and logging settings from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SNAKE_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	// 0-100
	if v := os.Getenv("SNAKE_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audio.Volume.Master = min(max(float64(n)/100, 0), 1)
		}
	}
	if v := os.Getenv("SNAKE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate reports the first problem found, wrapped in ErrInvalid
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.HighScore.Backend {
	case highscore.BackendFile, highscore.BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown high score backend %q", ErrInvalid, c.HighScore.Backend)
	}
	if c.HighScore.Path == "" {
		return fmt.Errorf("%w: empty high score path", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("%w: window scale must be positive", ErrInvalid)
	}
	return nil
}

// LogLevel returns the parsed log level, info when unset
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
