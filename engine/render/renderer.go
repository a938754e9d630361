package render

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Renderer draws snapshots with ebiten
type Renderer struct {
	face text.Face
}

func NewRenderer() *Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Draw renders one frame
func (r *Renderer) Draw(screen *ebiten.Image, snap game.Snapshot, state core.LoopState) {
	if state == core.StateVictory {
		r.drawVictory(screen, snap)
		return
	}

	screen.Fill(ui.Background)
	r.drawGrid(screen, snap)
	r.drawWalls(screen, snap)
	r.drawSnake(screen, snap)
	r.drawFood(screen, snap)
	r.drawHUD(screen, snap)

	cx, cy := float64(snap.Width)/2, float64(snap.Height)/2
	switch state {
	case core.StatePaused:
		r.drawCentered(screen, "PAUSED", cx, cy, 2, ui.SpecialColor)
	case core.StateLevelHold:
		r.drawCentered(screen, fmt.Sprintf("LEVEL %d", snap.Level), cx, cy, 3, ui.LevelColor(snap.Level))
	case core.StateGameOver:
		r.drawGameOver(screen, snap)
	}
}

func (r *Renderer) drawGrid(screen *ebiten.Image, snap game.Snapshot) {
	w, h := float32(snap.Width), float32(snap.Height)
	for x := 0; x < snap.Width; x += snap.BlockSize {
		vector.StrokeLine(screen, float32(x), 0, float32(x), h, 1, ui.GridColor, false)
	}
	for y := 0; y < snap.Height; y += snap.BlockSize {
		vector.StrokeLine(screen, 0, float32(y), w, float32(y), 1, ui.GridColor, false)
	}
}

func (r *Renderer) drawWalls(screen *ebiten.Image, snap game.Snapshot) {
	bs := float32(snap.BlockSize)
	for _, c := range snap.Walls {
		vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), bs, bs, ui.WallColor, false)
		vector.StrokeRect(screen, float32(c.X)+1, float32(c.Y)+1, bs-2, bs-2, 2, ui.WallBorder, false)
	}
}

func (r *Renderer) drawSnake(screen *ebiten.Image, snap game.Snapshot) {
	base := ui.LevelColor(snap.Level)
	bs := float32(snap.BlockSize)
	// Tail first so the head glow lands on top
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		c := snap.Snake[i]
		if i == 0 {
			drawGlowRect(screen, float32(c.X), float32(c.Y), bs, 8, base)
			continue
		}
		vector.DrawFilledRect(screen, float32(c.X)+1, float32(c.Y)+1, bs-2, bs-2, ui.FadeColor(base, i, len(snap.Snake)), true)
	}
}

func (r *Renderer) drawFood(screen *ebiten.Image, snap game.Snapshot) {
	bs := float32(snap.BlockSize)
	if snap.HasFood {
		drawGlowRect(screen, float32(snap.Food.X), float32(snap.Food.Y), bs, 6, ui.FoodColor)
	}
	if snap.HasSpecial {
		size, off := ui.SpecialSize(snap.BlockSize, snap.SpecialPulse)
		drawGlowRect(screen, float32(snap.Special.X-off), float32(snap.Special.Y-off), float32(size), 10, ui.SpecialColor)
	}
}

// drawGlowRect draws a square with a translucent halo around it
func drawGlowRect(screen *ebiten.Image, x, y, size, glow float32, clr color.RGBA) {
	vector.DrawFilledRect(screen, x-glow/2, y-glow/2, size+glow, size+glow, ui.WithAlpha(clr, 60), true)
	vector.DrawFilledRect(screen, x, y, size, size, clr, true)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	w := float32(snap.Width)
	vector.DrawFilledRect(screen, 0, 0, w, ui.HUDHeight, ui.HUDFill, false)
	vector.StrokeLine(screen, 0, ui.HUDHeight, w, ui.HUDHeight, 1, ui.HUDLine, false)

	r.drawText(screen, ui.ScoreLine(snap), 10, 8, 1, ui.TextColor)
	r.drawText(screen, ui.HighScoreLine(snap), 10, 24, 1, ui.HintColor)
	r.drawText(screen, ui.FillLine(snap), float64(snap.Width)/2-50, 8, 1, ui.LevelColor(snap.Level))
	r.drawText(screen, ui.FormatElapsed(snap.Elapsed), float64(snap.Width)-70, 8, 1, ui.TextColor)
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, snap game.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(snap.Width), float32(snap.Height), color.RGBA{0, 0, 0, 160}, false)
	cx, cy := float64(snap.Width)/2, float64(snap.Height)/2
	r.drawCentered(screen, "GAME OVER", cx, cy-40, 3, ui.LossColor)
	r.drawCentered(screen, fmt.Sprintf("Final Score: %d", snap.Score), cx, cy+10, 1, ui.TextColor)
	if snap.Score > 0 && snap.Score >= snap.HighScore {
		r.drawCentered(screen, "New high score!", cx, cy+30, 1, ui.SpecialColor)
	}
}

func (r *Renderer) drawVictory(screen *ebiten.Image, snap game.Snapshot) {
	screen.Fill(ui.Background)
	cx, cy := float64(snap.Width)/2, float64(snap.Height)/2
	r.drawCentered(screen, "VICTORY!", cx, cy-80, 3, ui.LevelColors[len(ui.LevelColors)-1])
	r.drawCentered(screen, fmt.Sprintf("Final Score: %d", snap.Score), cx, cy-20, 1, ui.TextColor)
	r.drawCentered(screen, "Total Time: "+ui.FormatElapsed(snap.Elapsed), cx, cy+10, 1, ui.TextColor)
	r.drawCentered(screen, "Press SPACE to Restart", cx, cy+60, 1, ui.HintColor)
}

func (r *Renderer) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

// drawCentered draws s horizontally centred on cx
func (r *Renderer) drawCentered(screen *ebiten.Image, s string, cx, y, scale float64, clr color.Color) {
	w := text.Advance(s, r.face) * scale
	r.drawText(screen, s, cx-w/2, y, scale, clr)
}
