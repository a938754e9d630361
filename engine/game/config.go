package game

import (
	"errors"
	"fmt"

	"github.com/1siamBot/snake/engine/maplib"
)

// ErrInvalidConfig is wrapped by every Config validation failure
var ErrInvalidConfig = errors.New("invalid game config")

// Variant selects between the single-field game and the level campaign
type Variant uint8

const (
	VariantClassic Variant = iota
	VariantLevels
)

func (v Variant) String() string {
	if v == VariantLevels {
		return "levels"
	}
	return "classic"
}

// MarshalText implements encoding.TextMarshaler
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (v *Variant) UnmarshalText(b []byte) error {
	switch string(b) {
	case "classic":
		*v = VariantClassic
	case "levels":
		*v = VariantLevels
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, string(b))
	}
	return nil
}

// Level describes one entry of the level table
type Level struct {
	Width      int               `json:"width"`  // pixels
	Height     int               `json:"height"` // pixels
	Layout     maplib.LayoutKind `json:"layout"`
	LayoutFile string            `json:"layout_file,omitempty"` // overrides Layout and size
}

// Config carries every tuning constant of the simulation
type Config struct {
	Variant   Variant `json:"variant"`
	BlockSize int     `json:"block_size"`

	// Classic variant field size in pixels
	Width  int `json:"width"`
	Height int `json:"height"`

	// Leveled variant
	Levels []Level           `json:"levels"`
	Maze   maplib.MazeParams `json:"maze"`

	// Tick rate, in ticks per second
	BaseRate         float64 `json:"base_rate"`
	ScoreRateFactor  float64 `json:"score_rate_factor"`
	LevelRateStep    float64 `json:"level_rate_step"`
	LengthRateFactor float64 `json:"length_rate_factor"`
	RateCap          float64 `json:"rate_cap"`

	FoodPoints      int `json:"food_points"`
	SpecialPoints   int `json:"special_points"`
	SpecialEvery    int `json:"special_every"`    // score multiple that triggers a special food
	SpecialLifetime int `json:"special_lifetime"` // ticks before an uneaten special food expires
	SpecialMargin   int `json:"special_margin"`   // no special food this close to capacity

	PlacementAttempts int `json:"placement_attempts"`
}

// DefaultLevels is the five level campaign
func DefaultLevels() []Level {
	kinds := []maplib.LayoutKind{
		maplib.LayoutOpen,
		maplib.LayoutPillars,
		maplib.LayoutBars,
		maplib.LayoutBox,
		maplib.LayoutMaze,
	}
	levels := make([]Level, len(kinds))
	for i, k := range kinds {
		size := 400 + 100*i
		levels[i] = Level{Width: size, Height: size, Layout: k}
	}
	return levels
}

// DefaultConfig returns the leveled game with the stock tuning
func DefaultConfig() Config {
	return Config{
		Variant:           VariantLevels,
		BlockSize:         20,
		Width:             640,
		Height:            480,
		Levels:            DefaultLevels(),
		Maze:              maplib.DefaultMaze,
		BaseRate:          8,
		ScoreRateFactor:   0.5,
		LevelRateStep:     2,
		LengthRateFactor:  0.1,
		RateCap:           25,
		FoodPoints:        1,
		SpecialPoints:     3,
		SpecialEvery:      10,
		SpecialLifetime:   100,
		SpecialMargin:     5,
		PlacementAttempts: 64,
	}
}

// Validate checks the numeric constraints of the config. Layout files are
// checked when the simulation loads them.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.BlockSize <= 0 {
		return invalid("block size must be positive, got %d", c.BlockSize)
	}
	if c.BaseRate <= 0 {
		return invalid("base rate must be positive, got %v", c.BaseRate)
	}
	if c.Variant == VariantLevels && c.RateCap <= 0 {
		return invalid("rate cap must be positive, got %v", c.RateCap)
	}
	if c.SpecialEvery <= 0 {
		return invalid("special_every must be positive, got %d", c.SpecialEvery)
	}
	if c.SpecialLifetime <= 0 {
		return invalid("special_lifetime must be positive, got %d", c.SpecialLifetime)
	}
	if c.FoodPoints < 0 || c.SpecialPoints < 0 {
		return invalid("points must not be negative")
	}

	switch c.Variant {
	case VariantClassic:
		return c.validateField(c.Width, c.Height)
	case VariantLevels:
		if len(c.Levels) == 0 {
			return invalid("level table is empty")
		}
		for i, lv := range c.Levels {
			if lv.LayoutFile != "" {
				continue
			}
			if err := c.validateField(lv.Width, lv.Height); err != nil {
				return fmt.Errorf("level %d: %w", i+1, err)
			}
		}
		return nil
	}
	return invalid("unknown variant %d", c.Variant)
}

func (c Config) validateField(w, h int) error {
	if w%c.BlockSize != 0 || h%c.BlockSize != 0 {
		return fmt.Errorf("%w: field %dx%d not aligned to block size %d", ErrInvalidConfig, w, h, c.BlockSize)
	}
	// The snake spawns three cells wide at the centre
	if w/c.BlockSize < 4 || h/c.BlockSize < 2 {
		return fmt.Errorf("%w: field %dx%d too small", ErrInvalidConfig, w, h)
	}
	return nil
}

// Layouts resolves the level table into wall layouts, one per level. The
// classic variant has a single open layout.
func (c Config) Layouts() ([]*maplib.Layout, error) {
	if c.Variant == VariantClassic {
		return []*maplib.Layout{
			maplib.NewLayout("classic", c.Width/c.BlockSize, c.Height/c.BlockSize),
		}, nil
	}

	layouts := make([]*maplib.Layout, 0, len(c.Levels))
	for i, lv := range c.Levels {
		var l *maplib.Layout
		if lv.LayoutFile != "" {
			var err error
			l, err = maplib.LoadJSON(lv.LayoutFile)
			if err != nil {
				return nil, fmt.Errorf("level %d: %w", i+1, err)
			}
			if l.Cols < 4 || l.Rows < 2 {
				return nil, fmt.Errorf("%w: level %d layout too small", ErrInvalidConfig, i+1)
			}
		} else {
			l = maplib.Generate(lv.Layout, lv.Width/c.BlockSize, lv.Height/c.BlockSize, c.Maze)
		}

		// Walls must leave room for the spawning snake
		sp := l.SpawnPoint()
		for dx := 0; dx < 3; dx++ {
			if l.IsWall(sp.X-dx, sp.Y) {
				return nil, fmt.Errorf("%w: level %d has a wall on the spawn cells", ErrInvalidConfig, i+1)
			}
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}
