// Package ai steers the snake for demo and attract modes.
package ai

import (
	"fmt"

	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/pathfind"
)

// Difficulty controls how carefully the autopilot plays
type Difficulty int

const (
	// DiffEasy takes the shortest path to food without looking ahead
	DiffEasy Difficulty = iota
	// DiffMedium only takes a path that leaves room for the whole body
	DiffMedium
	// DiffHard also chases its own tail while no safe path exists
	DiffHard
)

func (d Difficulty) String() string {
	switch d {
	case DiffEasy:
		return "easy"
	case DiffHard:
		return "hard"
	}
	return "medium"
}

// ParseDifficulty accepts the names printed by String
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DiffEasy, nil
	case "", "medium":
		return DiffMedium, nil
	case "hard":
		return DiffHard, nil
	}
	return DiffMedium, fmt.Errorf("unknown difficulty %q", s)
}

// Autopilot is a core.InputSource that plays the game
type Autopilot struct {
	Difficulty Difficulty
}

func NewAutopilot(diff Difficulty) *Autopilot {
	return &Autopilot{Difficulty: diff}
}

// Poll implements core.InputSource
func (a *Autopilot) Poll(snap game.Snapshot) []core.Command {
	if snap.Status != game.StatusRunning || len(snap.Snake) < 2 {
		return nil
	}
	d, ok := a.Decide(snap)
	if !ok || d == heading(snap) {
		return nil
	}
	return []core.Command{core.Steer(d)}
}

// Decide picks the next heading. It reports false when every neighbour is blocked.
func (a *Autopilot) Decide(snap game.Snapshot) (game.Direction, bool) {
	bs := snap.BlockSize
	ng := pathfind.NewNavGrid(snap)
	head := pathfind.CellPoint(snap.Head(), bs)

	var targets []pathfind.Point
	if snap.HasSpecial {
		targets = append(targets, pathfind.CellPoint(snap.Special, bs))
	}
	if snap.HasFood {
		targets = append(targets, pathfind.CellPoint(snap.Food, bs))
	}

	for _, t := range targets {
		path := pathfind.FindPath(ng, head, t)
		if len(path) < 2 {
			continue
		}
		if a.Difficulty > DiffEasy && pathfind.NewDistanceField(ng, path[1]).Reachable() < len(snap.Snake) {
			continue
		}
		if d, ok := pathfind.DirectionTo(head, path[1]); ok {
			return d, true
		}
	}

	best, bestArea := a.openest(ng, head)
	if a.Difficulty == DiffHard && bestArea < len(snap.Snake) {
		if d, ok := followTail(ng, head, snap); ok {
			return d, true
		}
	}
	return best, bestArea >= 0
}

// openest returns the neighbour with the most reachable cells behind it
func (a *Autopilot) openest(ng *pathfind.NavGrid, head pathfind.Point) (game.Direction, int) {
	best, bestArea := game.Direction(0), -1
	for _, d := range pathfind.Directions {
		np := head.Step(d)
		if !ng.Passable(np.X, np.Y) {
			continue
		}
		if area := pathfind.NewDistanceField(ng, np).Reachable(); area > bestArea {
			best, bestArea = d, area
		}
	}
	return best, bestArea
}

// followTail heads for the tail cell, which is vacated as the snake moves
func followTail(ng *pathfind.NavGrid, head pathfind.Point, snap game.Snapshot) (game.Direction, bool) {
	tail := pathfind.CellPoint(snap.Snake[len(snap.Snake)-1], snap.BlockSize)
	ng.SetOpen(tail.X, tail.Y)
	path := pathfind.FindPath(ng, head, tail)
	ng.SetBlocked(tail.X, tail.Y)
	if len(path) < 2 {
		return 0, false
	}
	return pathfind.DirectionTo(head, path[1])
}

func heading(snap game.Snapshot) game.Direction {
	h, n := snap.Snake[0], snap.Snake[1]
	switch {
	case h.X > n.X:
		return game.Right
	case h.X < n.X:
		return game.Left
	case h.Y > n.Y:
		return game.Down
	}
	return game.Up
}
