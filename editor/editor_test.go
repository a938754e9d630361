package editor

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/maplib"
	"github.com/1siamBot/snake/engine/ui"
)

func TestPaintUndoRedo(t *testing.T) {
	e := NewEditor(10, 10)
	if err := e.Paint(1, 1); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}
	e.Paint(1, 1)
	if len(e.UndoStack) != 1 {
		t.Errorf("Expected a repeated paint to be a no-op, got %d undo steps", len(e.UndoStack))
	}

	e.Tool = ToolErase
	e.Paint(1, 1)
	if e.Layout.IsWall(1, 1) {
		t.Fatal("Expected erase to clear the wall")
	}

	e.Undo()
	if !e.Layout.IsWall(1, 1) {
		t.Error("Undo of erase should restore the wall")
	}
	e.Undo()
	if e.Layout.IsWall(1, 1) {
		t.Error("Undo of paint should clear the wall")
	}
	e.Redo()
	if !e.Layout.IsWall(1, 1) {
		t.Error("Redo should repaint the wall")
	}
	if !e.Modified {
		t.Error("Expected the layout to be modified")
	}
}

func TestSpawnRowIsReserved(t *testing.T) {
	e := NewEditor(10, 10)
	// spawn head at (5,5), body to (3,5)
	for _, x := range []int{3, 4, 5, 6} {
		if err := e.Paint(x, 5); !errors.Is(err, ErrSpawnCell) {
			t.Errorf("Expected ErrSpawnCell at (%d,5), got %v", x, err)
		}
	}
	if err := e.Paint(7, 5); err != nil {
		t.Errorf("Expected (7,5) to be paintable, got %v", err)
	}
}

func TestFillIsOneStep(t *testing.T) {
	e := NewEditor(10, 10)
	e.Fill(6, 4, 2, 6)
	// 5x3 block minus the 4 spawn cells at y=5
	if got := e.Layout.WallCount(); got != 11 {
		t.Errorf("Expected 11 walls, got %d", got)
	}
	if len(e.UndoStack) != 1 {
		t.Errorf("Expected 1 undo step, got %d", len(e.UndoStack))
	}
	e.Undo()
	if e.Layout.WallCount() != 0 {
		t.Errorf("Expected undo to clear the fill, got %d walls", e.Layout.WallCount())
	}
}

func TestSaveLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	e := NewEditor(8, 6)
	e.Paint(0, 0)
	e.Paint(7, 5)
	if err := e.SaveLayout(path); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}
	if e.Modified || e.FilePath != path {
		t.Errorf("Expected a clean editor bound to %s", path)
	}

	other := NewEditor(1, 1)
	if err := other.LoadLayout(path); err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if other.Layout.Cols != 8 || other.Layout.Rows != 6 || other.Layout.WallCount() != 2 {
		t.Errorf("Unexpected layout %+v", other.Layout)
	}
}

func TestGenerateBase(t *testing.T) {
	e := NewEditor(25, 25)
	e.Paint(0, 0)
	e.Generate(maplib.LayoutPillars, maplib.DefaultMaze)
	if e.Layout.WallCount() != 4 || len(e.UndoStack) != 0 {
		t.Errorf("Expected a fresh pillar layout, got %d walls and %d undo steps", e.Layout.WallCount(), len(e.UndoStack))
	}
}

func TestExportPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.png")
	e := NewEditor(10, 8)
	e.Paint(0, 0)
	if err := e.ExportPNG(path, 20, 1); err != nil {
		t.Fatalf("ExportPNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 160 {
		t.Errorf("Expected 200x160, got %dx%d", b.Dx(), b.Dy())
	}

	// middle of the wall cell
	r, g, b, _ := img.At(10, 10).RGBA()
	if uint8(r>>8) != ui.WallColor.R || uint8(g>>8) != ui.WallColor.G || uint8(b>>8) != ui.WallColor.B {
		t.Errorf("Expected wall colour at (10,10), got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestExportLevels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := game.DefaultConfig()
	table, err := ExportLevels(cfg, dir, true)
	if err != nil {
		t.Fatalf("ExportLevels failed: %v", err)
	}
	if len(table) != 5 {
		t.Fatalf("Expected 5 levels, got %d", len(table))
	}
	for i, lv := range table {
		size := 400 + 100*i
		if lv.Width != size || lv.Height != size {
			t.Errorf("level %d: expected %d, got %dx%d", i+1, size, lv.Width, lv.Height)
		}
		if _, err := os.Stat(filepath.Join(dir, fmt.Sprintf("level-%d.png", i+1))); err != nil {
			t.Errorf("level %d: missing preview: %v", i+1, err)
		}
	}

	// The exported table loads back into an equivalent game
	cfg.Levels = table
	orig, err := game.DefaultConfig().Layouts()
	if err != nil {
		t.Fatal(err)
	}
	again, err := cfg.Layouts()
	if err != nil {
		t.Fatalf("Layouts from exported files failed: %v", err)
	}
	for i := range orig {
		if orig[i].WallCount() != again[i].WallCount() {
			t.Errorf("level %d: expected %d walls, got %d", i+1, orig[i].WallCount(), again[i].WallCount())
		}
	}
}
