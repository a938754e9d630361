package maplib

import (
	"fmt"
	"math/rand/v2"
)

// LayoutKind selects a wall generator
type LayoutKind uint8

const (
	LayoutOpen LayoutKind = iota
	LayoutPillars
	LayoutBars
	LayoutBox
	LayoutMaze
)

var layoutNames = map[LayoutKind]string{
	LayoutOpen:    "open",
	LayoutPillars: "pillars",
	LayoutBars:    "bars",
	LayoutBox:     "box",
	LayoutMaze:    "maze",
}

func (k LayoutKind) String() string {
	if name, ok := layoutNames[k]; ok {
		return name
	}
	return fmt.Sprintf("layout(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler
func (k LayoutKind) MarshalText() ([]byte, error) {
	if _, ok := layoutNames[k]; !ok {
		return nil, fmt.Errorf("unknown layout kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *LayoutKind) UnmarshalText(b []byte) error {
	for kind, name := range layoutNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown layout kind %q", string(b))
}

// MazeParams tunes the seeded maze generator
type MazeParams struct {
	Seed    uint64  `json:"seed"`
	Density float64 `json:"density"` // probability of a segment at each even coordinate
	Clear   int     `json:"clear"`   // half-size of the wall-free square around the spawn cell
}

// DefaultMaze matches the classic level 5 maze
var DefaultMaze = MazeParams{Seed: 42, Density: 0.3, Clear: 4}

// Generate builds the walls for a layout kind on a cols x rows grid
func Generate(kind LayoutKind, cols, rows int, maze MazeParams) *Layout {
	l := NewLayout(kind.String(), cols, rows)

	switch kind {
	case LayoutOpen:
		// open field

	case LayoutPillars:
		// Four pillars inset from the corners
		for _, x := range []int{5, cols - 6} {
			for _, y := range []int{5, rows - 6} {
				l.AddWall(x, y)
			}
		}

	case LayoutBars:
		for _, y := range []int{rows / 3, (rows / 3) * 2} {
			for x := 4; x < cols-4; x++ {
				l.AddWall(x, y)
			}
		}

	case LayoutBox:
		// Hollow 10x10 ring around the centre
		cx, cy := cols/2, rows/2
		for x := cx - 5; x < cx+5; x++ {
			for y := cy - 5; y < cy+5; y++ {
				if x == cx-5 || x == cx+4 || y == cy-5 || y == cy+4 {
					l.AddWall(x, y)
				}
			}
		}

	case LayoutMaze:
		generateMaze(l, maze)
	}

	return l
}

// generateMaze uses its own generator so food placement randomness is untouched
func generateMaze(l *Layout, p MazeParams) {
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed))
	spawn := l.SpawnPoint()
	nearSpawn := func(x, y int) bool {
		return abs(x-spawn.X) <= p.Clear && abs(y-spawn.Y) <= p.Clear
	}

	for x := 0; x < l.Cols; x += 2 {
		for y := 0; y < l.Rows; y += 2 {
			// Draw every time so the sequence does not depend on skips
			if rng.Float64() >= p.Density {
				continue
			}
			if nearSpawn(x, y) || nearSpawn(x+1, y) {
				continue
			}
			l.AddWall(x, y)
			l.AddWall(x+1, y)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
