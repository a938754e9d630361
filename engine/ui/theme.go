// Package ui holds the palette and HUD text shared by the frontends.
package ui

import (
	"image/color"
	"math"
)

var (
	Background   = color.RGBA{0, 0, 0, 255}
	GridColor    = color.RGBA{15, 15, 25, 255}
	WallColor    = color.RGBA{80, 80, 100, 255}
	WallBorder   = color.RGBA{40, 40, 60, 255}
	FoodColor    = color.RGBA{255, 80, 80, 255}
	SpecialColor = color.RGBA{255, 255, 0, 255}
	HUDFill      = color.RGBA{10, 10, 20, 150}
	HUDLine      = color.RGBA{50, 50, 100, 255}
	TextColor    = color.RGBA{255, 255, 255, 255}
	HintColor    = color.RGBA{150, 150, 150, 255}
	LossColor    = color.RGBA{200, 0, 0, 255}
)

// LevelColors is the snake colour per level: neon blue, green, purple,
// orange, gold
var LevelColors = []color.RGBA{
	{0, 180, 255, 255},
	{0, 255, 120, 255},
	{160, 80, 255, 255},
	{255, 140, 60, 255},
	{255, 215, 0, 255},
}

// LevelColor returns the snake colour for a 1-based level. Levels past the
// table keep the last colour.
func LevelColor(level int) color.RGBA {
	i := min(max(level-1, 0), len(LevelColors)-1)
	return LevelColors[i]
}

// FadeColor dims base along the body: full at the head, toward 20% at the tail
func FadeColor(base color.RGBA, i, length int) color.RGBA {
	if length <= 0 {
		return base
	}
	f := 1 - float64(i)/float64(length)*0.8
	return color.RGBA{
		R: uint8(float64(base.R) * f),
		G: uint8(float64(base.G) * f),
		B: uint8(float64(base.B) * f),
		A: base.A,
	}
}

// WithAlpha returns c with a new alpha
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// SpecialSize returns the drawn size of the special food and its offset from
// the cell origin. The pulse grows it up to 50%.
func SpecialSize(block int, pulse float64) (size, offset int) {
	size = int(float64(block) * (1 + math.Abs(pulse)*0.5))
	return size, (size - block) / 2
}
