package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/1siamBot/snake/editor"
	"github.com/1siamBot/snake/engine/maplib"
	"github.com/1siamBot/snake/engine/ui"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const sidebarWidth = 200

var stockKinds = []maplib.LayoutKind{
	maplib.LayoutOpen,
	maplib.LayoutPillars,
	maplib.LayoutBars,
	maplib.LayoutBox,
	maplib.LayoutMaze,
}

type EditorApp struct {
	editor *editor.Editor
	logger *log.Logger
	block  int

	hoverX, hoverY int
	dragging       bool
	dragX, dragY   int
	status         string
}

func NewEditorApp(e *editor.Editor, block int, logger *log.Logger) *EditorApp {
	return &EditorApp{editor: e, block: block, logger: logger}
}

func (a *EditorApp) fieldSize() (int, int) {
	return a.editor.Layout.Cols * a.block, a.editor.Layout.Rows * a.block
}

func (a *EditorApp) Update() error {
	mx, my := ebiten.CursorPosition()
	a.hoverX, a.hoverY = mx/a.block, my/a.block
	fw, _ := a.fieldSize()
	inField := mx < fw && a.editor.Layout.InBounds(a.hoverX, a.hoverY)

	// Stock layouts as a starting point
	for i, kind := range stockKinds {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			a.editor.Generate(kind, maplib.DefaultMaze)
			a.status = "generated " + kind.String()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		a.editor.Tool = editor.ToolWall
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) && !ebiten.IsKeyPressed(ebiten.KeyControl) {
		a.editor.Tool = editor.ToolErase
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.editor.ShowGrid = !a.editor.ShowGrid
	}

	if inField && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if err := a.editor.Paint(a.hoverX, a.hoverY); errors.Is(err, editor.ErrSpawnCell) {
			a.status = "spawn row is reserved"
		}
	}

	// Right drag fills a rectangle
	if inField && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.dragging = true
		a.dragX, a.dragY = a.hoverX, a.hoverY
	}
	if a.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		a.dragging = false
		a.editor.Fill(a.dragX, a.dragY, a.hoverX, a.hoverY)
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		if shift {
			a.editor.Redo()
		} else {
			a.editor.Undo()
		}
	}

	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := a.editor.SaveLayout(""); err != nil {
			a.logger.Error("save failed", "err", err)
			a.status = "save failed"
		} else {
			a.logger.Info("saved", "path", a.editor.FilePath, "walls", a.editor.Layout.WallCount())
			a.status = "saved " + a.editor.FilePath
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyE) {
		path := strings.TrimSuffix(a.editor.FilePath, ".json")
		if path == "" {
			path = a.editor.Layout.Name
		}
		path += ".png"
		if err := a.editor.ExportPNG(path, a.block, 1); err != nil {
			a.logger.Error("export failed", "err", err)
			a.status = "export failed"
		} else {
			a.logger.Info("exported", "path", path)
			a.status = "exported " + path
		}
	}

	return nil
}

func (a *EditorApp) Draw(screen *ebiten.Image) {
	screen.Fill(ui.Background)
	l := a.editor.Layout
	fw, fh := a.fieldSize()
	bs := float32(a.block)

	if a.editor.ShowGrid {
		for x := 0; x <= fw; x += a.block {
			vector.StrokeLine(screen, float32(x), 0, float32(x), float32(fh), 1, ui.GridColor, false)
		}
		for y := 0; y <= fh; y += a.block {
			vector.StrokeLine(screen, 0, float32(y), float32(fw), float32(y), 1, ui.GridColor, false)
		}
	}

	for _, p := range l.Walls {
		x, y := float32(p.X*a.block), float32(p.Y*a.block)
		vector.DrawFilledRect(screen, x, y, bs, bs, ui.WallColor, false)
		vector.StrokeRect(screen, x+1, y+1, bs-2, bs-2, 2, ui.WallBorder, false)
	}

	// Reserved spawn row
	sp := l.SpawnPoint()
	for dx := -2; dx <= 1; dx++ {
		x, y := float32((sp.X+dx)*a.block), float32(sp.Y*a.block)
		vector.StrokeRect(screen, x+2, y+2, bs-4, bs-4, 1, ui.WithAlpha(ui.LevelColor(1), 160), false)
	}

	if a.dragging {
		x1, x2 := min(a.dragX, a.hoverX), max(a.dragX, a.hoverX)
		y1, y2 := min(a.dragY, a.hoverY), max(a.dragY, a.hoverY)
		vector.StrokeRect(screen, float32(x1*a.block), float32(y1*a.block),
			float32((x2-x1+1)*a.block), float32((y2-y1+1)*a.block), 2, ui.SpecialColor, false)
	} else if l.InBounds(a.hoverX, a.hoverY) {
		vector.StrokeRect(screen, float32(a.hoverX*a.block), float32(a.hoverY*a.block), bs, bs, 2, ui.WithAlpha(ui.SpecialColor, 150), false)
	}

	a.drawSidebar(screen, fw, fh)
}

func (a *EditorApp) drawSidebar(screen *ebiten.Image, fw, fh int) {
	sx := float32(fw)
	vector.DrawFilledRect(screen, sx, 0, sidebarWidth, float32(fh), ui.HUDFill, false)

	x, y := fw+10, 10
	lines := []string{
		"=== LAYOUT ===",
		fmt.Sprintf("%s %dx%d", a.editor.Layout.Name, a.editor.Layout.Cols, a.editor.Layout.Rows),
		fmt.Sprintf("walls: %d", a.editor.Layout.WallCount()),
		fmt.Sprintf("cell: (%d,%d)", a.hoverX, a.hoverY),
		fmt.Sprintf("tool: %s", a.editor.Tool),
		"",
		"[1-5] stock layout",
		"[W] wall  [E] erase",
		"[RMB drag] fill",
		"[G] grid",
		"[Ctrl+Z] undo",
		"[Ctrl+Shift+Z] redo",
		"[Ctrl+S] save",
		"[Ctrl+E] export PNG",
	}
	for _, s := range lines {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		y += 18
	}

	if a.editor.Modified {
		ebitenutil.DebugPrintAt(screen, "* MODIFIED *", x, y+10)
	}
	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, a.status, x, fh-20)
	}
}

func (a *EditorApp) Layout(_, _ int) (int, int) {
	fw, fh := a.fieldSize()
	return fw + sidebarWidth, max(fh, 300)
}

func main() {
	cols := flag.Int("cols", 20, "columns of a new layout")
	rows := flag.Int("rows", 20, "rows of a new layout")
	block := flag.Int("block", 20, "cell size in pixels")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "editor",
	})

	e := editor.NewEditor(*cols, *rows)
	// Load file from command line if provided
	if path := flag.Arg(0); path != "" {
		if err := e.LoadLayout(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Fatal("could not load layout", "path", path, "err", err)
			}
			e.FilePath = path
			logger.Info("new layout", "path", path)
		}
	}

	app := NewEditorApp(e, *block, logger)
	w, h := app.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Snake Layout Editor")

	if err := ebiten.RunGame(app); err != nil {
		logger.Fatal("editor exited", "err", err)
	}
}
