package tui

import (
	"sync"

	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/gdamore/tcell/v2"
)

// CommandFor maps a key to a command. Arrows, wasd and hjkl steer.
func CommandFor(key tcell.Key, ch rune) (core.Command, bool) {
	switch key {
	case tcell.KeyUp:
		return core.Steer(game.Up), true
	case tcell.KeyDown:
		return core.Steer(game.Down), true
	case tcell.KeyLeft:
		return core.Steer(game.Left), true
	case tcell.KeyRight:
		return core.Steer(game.Right), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.Command{Type: core.CmdQuit}, true
	case tcell.KeyRune:
	default:
		return core.Command{}, false
	}

	switch ch {
	case 'w', 'W', 'k':
		return core.Steer(game.Up), true
	case 's', 'S', 'j':
		return core.Steer(game.Down), true
	case 'a', 'A', 'h':
		return core.Steer(game.Left), true
	case 'd', 'D', 'l':
		return core.Steer(game.Right), true
	case 'p', 'P':
		return core.Command{Type: core.CmdPauseToggle}, true
	case ' ':
		return core.Command{Type: core.CmdRestart}, true
	case 'q', 'Q':
		return core.Command{Type: core.CmdQuit}, true
	}
	return core.Command{}, false
}

// Keys buffers commands from terminal events until the loop polls them.
// Handle runs on the event goroutine, Poll on the loop goroutine.
type Keys struct {
	mu      sync.Mutex
	pending []core.Command
	resized bool
}

func NewKeys() *Keys {
	return &Keys{}
}

// Handle queues the command bound to ev, if any
func (k *Keys) Handle(ev tcell.Event) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if cmd, ok := CommandFor(ev.Key(), ev.Rune()); ok {
			k.pending = append(k.pending, cmd)
		}
	case *tcell.EventResize:
		k.resized = true
	}
}

// Poll implements core.InputSource
func (k *Keys) Poll(_ game.Snapshot) []core.Command {
	k.mu.Lock()
	defer k.mu.Unlock()
	cmds := k.pending
	k.pending = nil
	return cmds
}

// Resized reports and clears a pending resize
func (k *Keys) Resized() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	r := k.resized
	k.resized = false
	return r
}
