package maplib

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestAddWallIgnoresDuplicatesAndOutOfBounds(t *testing.T) {
	l := NewLayout("t", 4, 3)
	if !l.AddWall(1, 1) {
		t.Fatal("Expected first wall to be added")
	}
	if l.AddWall(1, 1) {
		t.Error("Duplicate wall added")
	}
	if l.AddWall(4, 0) || l.AddWall(-1, 2) {
		t.Error("Out-of-bounds wall added")
	}
	if l.WallCount() != 1 || l.Capacity() != 11 {
		t.Errorf("Expected 1 wall and capacity 11, got %d and %d", l.WallCount(), l.Capacity())
	}
	if !l.IsWall(1, 1) || l.IsWall(0, 0) {
		t.Error("IsWall disagrees with AddWall")
	}
}

func TestRemoveWall(t *testing.T) {
	l := NewLayout("t", 4, 3)
	l.AddWall(0, 0)
	l.AddWall(1, 0)
	l.AddWall(2, 0)
	if !l.RemoveWall(1, 0) {
		t.Fatal("Expected the wall to be removed")
	}
	if l.RemoveWall(1, 0) {
		t.Error("Removed the same wall twice")
	}
	if l.IsWall(1, 0) || l.WallCount() != 2 {
		t.Errorf("Expected 2 walls without (1,0), got %v", l.Walls)
	}
	if l.Walls[0] != (Point{0, 0}) || l.Walls[1] != (Point{2, 0}) {
		t.Errorf("Expected order to be kept, got %v", l.Walls)
	}
}

func TestGenerateCounts(t *testing.T) {
	tests := []struct {
		kind  LayoutKind
		cells int
		walls int
	}{
		{LayoutOpen, 20, 0},
		{LayoutPillars, 25, 4},
		{LayoutBars, 30, 44},
		{LayoutBox, 35, 36},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			l := Generate(tt.kind, tt.cells, tt.cells, DefaultMaze)
			if l.WallCount() != tt.walls {
				t.Errorf("Expected %d walls, got %d", tt.walls, l.WallCount())
			}
			if l.Capacity() != tt.cells*tt.cells-tt.walls {
				t.Errorf("Capacity mismatch: %d", l.Capacity())
			}
		})
	}
}

func TestPillarPositions(t *testing.T) {
	l := Generate(LayoutPillars, 25, 25, DefaultMaze)
	for _, p := range []Point{{5, 5}, {5, 19}, {19, 5}, {19, 19}} {
		if !l.IsWall(p.X, p.Y) {
			t.Errorf("Expected pillar at %v", p)
		}
	}
}

func TestBarsRows(t *testing.T) {
	l := Generate(LayoutBars, 30, 30, DefaultMaze)
	for _, w := range l.Walls {
		if w.Y != 10 && w.Y != 20 {
			t.Errorf("Bar wall on unexpected row %d", w.Y)
		}
		if w.X < 4 || w.X >= 26 {
			t.Errorf("Bar wall outside the inset: %v", w)
		}
	}
}

func TestBoxIsHollow(t *testing.T) {
	l := Generate(LayoutBox, 35, 35, DefaultMaze)
	c := l.SpawnPoint()
	for x := c.X - 4; x < c.X+4; x++ {
		for y := c.Y - 4; y < c.Y+4; y++ {
			if l.IsWall(x, y) {
				t.Errorf("Wall inside the box at (%d,%d)", x, y)
			}
		}
	}
}

func TestMazeIsDeterministic(t *testing.T) {
	a := Generate(LayoutMaze, 40, 40, DefaultMaze)
	b := Generate(LayoutMaze, 40, 40, DefaultMaze)

	if a.WallCount() == 0 {
		t.Fatal("Expected the maze to have walls")
	}
	if a.WallCount() != b.WallCount() {
		t.Fatalf("Same seed produced %d and %d walls", a.WallCount(), b.WallCount())
	}
	for i := range a.Walls {
		if a.Walls[i] != b.Walls[i] {
			t.Fatalf("Wall %d differs: %v vs %v", i, a.Walls[i], b.Walls[i])
		}
	}
	if a.WallCount()%2 != 0 {
		t.Errorf("Expected two-cell segments, got %d walls", a.WallCount())
	}

	other := DefaultMaze
	other.Seed = 7
	c := Generate(LayoutMaze, 40, 40, other)
	same := c.WallCount() == a.WallCount()
	if same {
		for i := range a.Walls {
			if a.Walls[i] != c.Walls[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Different seeds produced the same maze")
	}
}

func TestMazeKeepsSpawnClear(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		p := MazeParams{Seed: seed, Density: 0.9, Clear: 4}
		l := Generate(LayoutMaze, 40, 40, p)
		sp := l.SpawnPoint()
		for _, w := range l.Walls {
			if abs(w.X-sp.X) <= 4 && abs(w.Y-sp.Y) <= 4 {
				t.Fatalf("seed %d: wall %v inside the spawn square", seed, w)
			}
		}
	}
}

func TestLayoutJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.json")
	l := Generate(LayoutBox, 20, 20, DefaultMaze)
	if err := l.SaveJSON(path); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	got, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if got.Cols != 20 || got.Rows != 20 || got.WallCount() != l.WallCount() {
		t.Errorf("Expected 20x20 with %d walls, got %dx%d with %d", l.WallCount(), got.Cols, got.Rows, got.WallCount())
	}
	for _, w := range l.Walls {
		if !got.IsWall(w.X, w.Y) {
			t.Errorf("Wall %v lost in round trip", w)
		}
	}
}

func TestLoadJSONDropsBadWalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	raw := map[string]any{
		"name":  "bad",
		"cols":  3,
		"rows":  3,
		"walls": []map[string]int{{"x": 1, "y": 1}, {"x": 1, "y": 1}, {"x": 9, "y": 9}},
	}
	data, _ := json.Marshal(raw)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	l, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if l.WallCount() != 1 {
		t.Errorf("Expected 1 wall after cleanup, got %d", l.WallCount())
	}

	if err := os.WriteFile(path, []byte(`{"cols":0,"rows":3}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJSON(path); err == nil {
		t.Error("Expected an error for a zero-sized layout")
	}
}

func TestLayoutKindText(t *testing.T) {
	for kind, name := range layoutNames {
		b, err := kind.MarshalText()
		if err != nil || string(b) != name {
			t.Errorf("MarshalText(%d) = %q, %v", kind, b, err)
		}
		var back LayoutKind
		if err := back.UnmarshalText(b); err != nil || back != kind {
			t.Errorf("UnmarshalText(%q) = %v, %v", b, back, err)
		}
	}
	var k LayoutKind
	if err := k.UnmarshalText([]byte("spiral")); err == nil {
		t.Error("Expected an error for an unknown kind")
	}
}
