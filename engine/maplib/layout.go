package maplib

import (
	"encoding/json"
	"fmt"
	"os"
)

// Point is a grid coordinate in cell units
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Layout is the wall arrangement of one level
type Layout struct {
	Name  string  `json:"name"`
	Cols  int     `json:"cols"`
	Rows  int     `json:"rows"`
	Walls []Point `json:"walls"`

	wallSet map[Point]struct{}
}

// NewLayout creates an open layout with no walls
func NewLayout(name string, cols, rows int) *Layout {
	return &Layout{
		Name:    name,
		Cols:    cols,
		Rows:    rows,
		wallSet: make(map[Point]struct{}),
	}
}

// InBounds checks if cell coordinates are inside the layout
func (l *Layout) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Cols && y < l.Rows
}

// AddWall places a wall cell. Out-of-bounds and duplicate cells are ignored.
func (l *Layout) AddWall(x, y int) bool {
	if !l.InBounds(x, y) {
		return false
	}
	p := Point{x, y}
	if _, ok := l.wallSet[p]; ok {
		return false
	}
	l.wallSet[p] = struct{}{}
	l.Walls = append(l.Walls, p)
	return true
}

// RemoveWall clears a wall cell. It reports false when there was none.
func (l *Layout) RemoveWall(x, y int) bool {
	p := Point{x, y}
	if _, ok := l.wallSet[p]; !ok {
		return false
	}
	delete(l.wallSet, p)
	for i, w := range l.Walls {
		if w == p {
			l.Walls = append(l.Walls[:i], l.Walls[i+1:]...)
			break
		}
	}
	return true
}

// IsWall reports whether (x, y) holds a wall
func (l *Layout) IsWall(x, y int) bool {
	_, ok := l.wallSet[Point{x, y}]
	return ok
}

// WallCount returns the number of distinct wall cells
func (l *Layout) WallCount() int {
	return len(l.Walls)
}

// Capacity is the number of cells a snake can occupy
func (l *Layout) Capacity() int {
	return l.Cols*l.Rows - len(l.Walls)
}

// SpawnPoint returns the centre cell where the snake head starts
func (l *Layout) SpawnPoint() Point {
	return Point{l.Cols / 2, l.Rows / 2}
}

// SaveJSON saves the layout to a JSON file
func (l *Layout) SaveJSON(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads a layout from a JSON file
func LoadJSON(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw Layout
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", path, err)
	}
	if raw.Cols <= 0 || raw.Rows <= 0 {
		return nil, fmt.Errorf("layout %s: invalid size %dx%d", path, raw.Cols, raw.Rows)
	}

	// Rebuild through AddWall so the set and slice agree
	l := NewLayout(raw.Name, raw.Cols, raw.Rows)
	for _, w := range raw.Walls {
		l.AddWall(w.X, w.Y)
	}
	return l, nil
}
