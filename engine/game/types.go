package game

import "fmt"

// Cell is a grid-aligned position in pixels
type Cell struct {
	X, Y int
}

// Step returns the neighbouring cell one block away in direction d
func (c Cell) Step(d Direction, block int) Cell {
	switch d {
	case Up:
		return Cell{c.X, c.Y - block}
	case Down:
		return Cell{c.X, c.Y + block}
	case Left:
		return Cell{c.X - block, c.Y}
	case Right:
		return Cell{c.X + block, c.Y}
	}
	return c
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is the heading of the snake
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Valid reports whether d is one of the four headings
func (d Direction) Valid() bool {
	return d <= Right
}

// Status represents the simulation state machine
type Status uint8

const (
	StatusRunning Status = iota
	StatusPaused
	StatusLost
	StatusWon
)

// Terminal is true for Lost and Won
func (s Status) Terminal() bool {
	return s == StatusLost || s == StatusWon
}

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusLost:
		return "lost"
	case StatusWon:
		return "won"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Event is something observable that happened during a tick
type Event uint8

const (
	EvtFoodEaten Event = iota
	EvtSpecialEaten
	EvtSpecialSpawned
	EvtSpecialExpired
	EvtLevelUp
	EvtGameOver
	EvtGameWon
	EvtRestart
)

func (e Event) String() string {
	names := [...]string{
		EvtFoodEaten:      "food_eaten",
		EvtSpecialEaten:   "special_eaten",
		EvtSpecialSpawned: "special_spawned",
		EvtSpecialExpired: "special_expired",
		EvtLevelUp:        "level_up",
		EvtGameOver:       "game_over",
		EvtGameWon:        "game_won",
		EvtRestart:        "restart",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

// Result describes the outcome of one Tick
type Result struct {
	Status       Status
	Grew         bool
	Events       []Event
	Rate         float64 // ticks per second for pacing the next tick
	NewHighScore bool
}
