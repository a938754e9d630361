// Package tui is the terminal frontend: it draws snapshots on a tcell
// screen and turns key events into commands.
package tui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/ui"
	"github.com/gdamore/tcell/v2"
)

// CellWidth is the number of terminal columns per grid cell
const CellWidth = 2

// fieldTop is the first screen row of the field, row 0 holds the HUD
const fieldTop = 1

const (
	glyphBlock = '█'
	glyphFood  = '●'
	glyphStar  = '★'
	glyphWall  = '▓'
)

// Renderer draws snapshots on a tcell screen
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Size returns the terminal size needed to show snap in full
func Size(snap game.Snapshot) (w, h int) {
	return snap.Cols() * CellWidth, snap.Rows() + fieldTop
}

// ScreenPos maps a field cell to its leftmost terminal column and row
func ScreenPos(c game.Cell, block int) (x, y int) {
	return c.X / block * CellWidth, c.Y/block + fieldTop
}

func style(fg color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(fg)).Background(tcell.ColorBlack)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(snap game.Snapshot, state core.LoopState) {
	r.screen.Clear()
	if state == core.StateVictory {
		r.drawVictory(snap)
		r.screen.Show()
		return
	}

	r.drawBorder(snap)
	for _, c := range snap.Walls {
		r.fill(c, snap.BlockSize, glyphWall, style(ui.WallColor))
	}
	if snap.HasFood {
		r.fill(snap.Food, snap.BlockSize, glyphFood, style(ui.FoodColor))
	}
	if snap.HasSpecial {
		r.fill(snap.Special, snap.BlockSize, glyphStar, style(ui.SpecialColor))
	}
	base := ui.LevelColor(snap.Level)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		r.fill(snap.Snake[i], snap.BlockSize, glyphBlock, style(ui.FadeColor(base, i, len(snap.Snake))))
	}
	r.drawHUD(snap)

	w, h := Size(snap)
	cx, cy := w/2, fieldTop+(h-fieldTop)/2
	switch state {
	case core.StatePaused:
		r.centered("PAUSED", cx, cy, style(ui.SpecialColor).Bold(true))
	case core.StateLevelHold:
		r.centered(fmt.Sprintf("LEVEL %d", snap.Level), cx, cy, style(base).Bold(true))
	case core.StateGameOver:
		r.centered("GAME OVER", cx, cy-1, style(ui.LossColor).Bold(true))
		r.centered(fmt.Sprintf("Final Score: %d", snap.Score), cx, cy+1, style(ui.TextColor))
		if snap.Score > 0 && snap.Score >= snap.HighScore {
			r.centered("New high score!", cx, cy+2, style(ui.SpecialColor))
		}
	}
	r.screen.Show()
}

func (r *Renderer) fill(c game.Cell, block int, glyph rune, st tcell.Style) {
	x, y := ScreenPos(c, block)
	for i := 0; i < CellWidth; i++ {
		r.screen.SetContent(x+i, y, glyph, nil, st)
	}
}

// drawBorder shades the empty field so its extent is visible
func (r *Renderer) drawBorder(snap game.Snapshot) {
	w, h := Size(snap)
	st := style(ui.GridColor)
	for y := fieldTop; y < h; y++ {
		for x := 0; x < w; x += CellWidth {
			r.screen.SetContent(x, y, '·', nil, st)
		}
	}
}

func (r *Renderer) drawHUD(snap game.Snapshot) {
	w, _ := Size(snap)
	st := tcell.StyleDefault.Foreground(rgb(ui.TextColor)).Background(rgb(ui.HUDLine))
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, st)
	}
	left := ui.ScoreLine(snap) + "  " + ui.HighScoreLine(snap)
	r.text(left, 1, 0, st)
	right := ui.FillLine(snap) + "  " + ui.FormatElapsed(snap.Elapsed)
	// narrow fields only get the left half
	if x := w - len(right) - 1; x > len(left)+2 {
		r.text(right, x, 0, st)
	}
}

func (r *Renderer) drawVictory(snap game.Snapshot) {
	w, h := Size(snap)
	cx, cy := w/2, h/2
	r.centered("VICTORY!", cx, cy-3, style(ui.LevelColors[len(ui.LevelColors)-1]).Bold(true))
	r.centered(fmt.Sprintf("Final Score: %d", snap.Score), cx, cy-1, style(ui.TextColor))
	r.centered("Total Time: "+ui.FormatElapsed(snap.Elapsed), cx, cy, style(ui.TextColor))
	r.centered("Press SPACE to Restart", cx, cy+2, style(ui.HintColor))
}

func (r *Renderer) text(s string, x, y int, st tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, st)
		x++
	}
}

func (r *Renderer) centered(s string, cx, y int, st tcell.Style) {
	r.text(s, cx-len([]rune(s))/2, y, st)
}
