package pathfind

import (
	"container/heap"
	"slices"

	"github.com/1siamBot/snake/engine/game"
)

// Point represents a 2D integer coordinate
type Point struct{ X, Y int }

// Step returns the neighbouring point in direction d
func (p Point) Step(d game.Direction) Point {
	switch d {
	case game.Up:
		return Point{p.X, p.Y - 1}
	case game.Down:
		return Point{p.X, p.Y + 1}
	case game.Left:
		return Point{p.X - 1, p.Y}
	case game.Right:
		return Point{p.X + 1, p.Y}
	}
	return p
}

// Directions lists the four headings in a fixed order
var Directions = [4]game.Direction{game.Up, game.Down, game.Left, game.Right}

// FindPath finds a path from start to goal using A*. The start cell need not
// be passable, since it is usually the snake's own head.
func FindPath(ng *NavGrid, start, goal Point) []Point {
	if !ng.Passable(goal.X, goal.Y) {
		return nil
	}

	open := &openSet{{at: start, cost: 0, est: start.Manhattan(goal)}}
	parent := map[Point]Point{}
	best := map[Point]int{start: 0}

	for open.Len() > 0 {
		e := heap.Pop(open).(entry)
		if e.at == goal {
			return walkBack(parent, start, goal)
		}
		if e.cost > best[e.at] {
			continue
		}
		for _, d := range Directions {
			next := e.at.Step(d)
			if !ng.Passable(next.X, next.Y) {
				continue
			}
			cost := e.cost + 1
			if known, seen := best[next]; seen && known <= cost {
				continue
			}
			best[next] = cost
			parent[next] = e.at
			heap.Push(open, entry{at: next, cost: cost, est: cost + next.Manhattan(goal)})
		}
	}
	return nil
}

// DirectionTo returns the heading that moves from a to the adjacent point b
func DirectionTo(a, b Point) (game.Direction, bool) {
	for _, d := range Directions {
		if a.Step(d) == b {
			return d, true
		}
	}
	return 0, false
}

// Manhattan is the grid distance between p and q
func (p Point) Manhattan(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// walkBack follows parent links from goal to start
func walkBack(parent map[Point]Point, start, goal Point) []Point {
	path := []Point{goal}
	for at := goal; at != start; {
		at = parent[at]
		path = append(path, at)
	}
	slices.Reverse(path)
	return path
}

// entry is a frontier cell. Ties on est prefer the cell furthest from start.
type entry struct {
	at        Point
	cost, est int
}

type openSet []entry

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].est == o[j].est {
		return o[i].cost > o[j].cost
	}
	return o[i].est < o[j].est
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(entry)) }

func (o *openSet) Pop() any {
	last := (*o)[len(*o)-1]
	*o = (*o)[:len(*o)-1]
	return last
}
