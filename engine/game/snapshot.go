package game

import (
	"math"
	"slices"
	"time"
)

// Snapshot is a read-only copy of the state handed to renderers
type Snapshot struct {
	Width     int
	Height    int
	BlockSize int

	Snake []Cell // head first
	Walls []Cell

	Food         Cell
	HasFood      bool
	Special      Cell
	HasSpecial   bool
	SpecialPulse float64 // 0..1

	Score     int
	HighScore int
	Elapsed   time.Duration // filled in by the loop that owns the clock

	Variant     Variant
	Level       int
	MaxLevel    int
	FillPercent float64
	Status      Status
	Tick        uint64
}

// Snapshot copies the current state
func (s *Simulation) Snapshot() Snapshot {
	var pulse float64
	if s.hasSpecial {
		pulse = math.Abs(math.Sin(float64(s.specialAge) * 0.15))
	}

	return Snapshot{
		Width:        s.width,
		Height:       s.height,
		BlockSize:    s.cfg.BlockSize,
		Snake:        slices.Clone(s.snake),
		Walls:        slices.Clone(s.wallCells),
		Food:         s.food,
		HasFood:      s.hasFood,
		Special:      s.special,
		HasSpecial:   s.hasSpecial,
		SpecialPulse: pulse,
		Score:        s.score,
		HighScore:    s.highScore,
		Variant:      s.cfg.Variant,
		Level:        s.level,
		MaxLevel:     len(s.layouts),
		FillPercent:  float64(len(s.snake)) / float64(s.MaxCapacity()) * 100,
		Status:       s.status,
		Tick:         s.ticks,
	}
}

// Head returns the head cell of the snapshot snake
func (snap Snapshot) Head() Cell {
	return snap.Snake[0]
}

// Cols returns the grid width in cells
func (snap Snapshot) Cols() int {
	return snap.Width / snap.BlockSize
}

// Rows returns the grid height in cells
func (snap Snapshot) Rows() int {
	return snap.Height / snap.BlockSize
}
