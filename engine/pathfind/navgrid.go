package pathfind

import "github.com/1siamBot/snake/engine/game"

// NavGrid marks which cells of the playfield can be entered
type NavGrid struct {
	Width, Height int
	blocked       []bool
}

// NewNavGrid builds a grid from a snapshot. Walls and every snake segment,
// the tail included, are blocked.
func NewNavGrid(snap game.Snapshot) *NavGrid {
	ng := &NavGrid{
		Width:   snap.Cols(),
		Height:  snap.Rows(),
		blocked: make([]bool, snap.Cols()*snap.Rows()),
	}
	for _, w := range snap.Walls {
		p := CellPoint(w, snap.BlockSize)
		ng.SetBlocked(p.X, p.Y)
	}
	for _, c := range snap.Snake {
		p := CellPoint(c, snap.BlockSize)
		ng.SetBlocked(p.X, p.Y)
	}
	return ng
}

// InBounds reports whether (x,y) lies on the grid
func (ng *NavGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < ng.Width && y < ng.Height
}

// Passable checks if a cell can be entered
func (ng *NavGrid) Passable(x, y int) bool {
	return ng.InBounds(x, y) && !ng.blocked[y*ng.Width+x]
}

// SetBlocked marks a cell as blocked
func (ng *NavGrid) SetBlocked(x, y int) {
	if ng.InBounds(x, y) {
		ng.blocked[y*ng.Width+x] = true
	}
}

// SetOpen clears a blocked cell
func (ng *NavGrid) SetOpen(x, y int) {
	if ng.InBounds(x, y) {
		ng.blocked[y*ng.Width+x] = false
	}
}

// CellPoint converts a pixel cell to grid coordinates
func CellPoint(c game.Cell, block int) Point {
	return Point{c.X / block, c.Y / block}
}
