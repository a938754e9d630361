package editor

import (
	"github.com/1siamBot/snake/engine/maplib"
	"github.com/1siamBot/snake/engine/ui"
	"github.com/fogleman/gg"
)

// Preview draws a layout the way the game shows it at level start: grid,
// walls and the spawned snake.
func Preview(l *maplib.Layout, block, level int) *gg.Context {
	w, h := l.Cols*block, l.Rows*block
	dc := gg.NewContext(w, h)
	dc.SetColor(ui.Background)
	dc.Clear()

	dc.SetColor(ui.GridColor)
	dc.SetLineWidth(1)
	for x := 0; x <= w; x += block {
		dc.DrawLine(float64(x), 0, float64(x), float64(h))
	}
	for y := 0; y <= h; y += block {
		dc.DrawLine(0, float64(y), float64(w), float64(y))
	}
	dc.Stroke()

	bs := float64(block)
	for _, p := range l.Walls {
		x, y := float64(p.X*block), float64(p.Y*block)
		dc.DrawRectangle(x, y, bs, bs)
		dc.SetColor(ui.WallColor)
		dc.Fill()
		dc.DrawRectangle(x+1, y+1, bs-2, bs-2)
		dc.SetColor(ui.WallBorder)
		dc.SetLineWidth(2)
		dc.Stroke()
	}

	sp := l.SpawnPoint()
	base := ui.LevelColor(level)
	for i := 0; i < 3; i++ {
		x, y := float64((sp.X-i)*block), float64(sp.Y*block)
		dc.DrawRectangle(x+1, y+1, bs-2, bs-2)
		dc.SetColor(ui.FadeColor(base, i, 3))
		dc.Fill()
	}
	return dc
}

// ExportPNG writes the preview of the current layout to path
func (e *Editor) ExportPNG(path string, block, level int) error {
	return Preview(e.Layout, block, level).SavePNG(path)
}
