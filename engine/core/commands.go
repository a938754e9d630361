package core

import (
	"fmt"

	"github.com/1siamBot/snake/engine/game"
)

// CommandType identifies a player command
type CommandType uint8

const (
	CmdDirection CommandType = iota
	CmdPauseToggle
	CmdRestart
	CmdQuit
)

func (t CommandType) String() string {
	switch t {
	case CmdDirection:
		return "direction"
	case CmdPauseToggle:
		return "pause"
	case CmdRestart:
		return "restart"
	case CmdQuit:
		return "quit"
	}
	return fmt.Sprintf("command(%d)", uint8(t))
}

// Command is a single player intent. Dir is only meaningful for CmdDirection.
type Command struct {
	Type CommandType
	Dir  game.Direction
}

// Steer builds a direction command
func Steer(d game.Direction) Command {
	return Command{Type: CmdDirection, Dir: d}
}

// InputSource yields the commands gathered since its last poll.
// Keyboards, terminals, the autopilot and replays all implement it.
type InputSource interface {
	Poll(snap game.Snapshot) []Command
}

// Script feeds commands pinned to simulation steps, such as a recorded replay
type Script interface {
	// Due returns the not yet delivered commands recorded at or before step
	Due(step uint64) []Command
}

// CommandRecorder receives every command the loop applies
type CommandRecorder interface {
	Record(step uint64, cmd Command) error
}

type onlySource struct {
	src   InputSource
	allow map[CommandType]bool
}

// Only wraps src so that it yields only the listed command types
func Only(src InputSource, types ...CommandType) InputSource {
	allow := make(map[CommandType]bool, len(types))
	for _, t := range types {
		allow[t] = true
	}
	return &onlySource{src: src, allow: allow}
}

func (o *onlySource) Poll(snap game.Snapshot) []Command {
	var out []Command
	for _, cmd := range o.src.Poll(snap) {
		if o.allow[cmd.Type] {
			out = append(out, cmd)
		}
	}
	return out
}
