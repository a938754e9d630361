package input

import (
	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Binding maps a key to the command it issues
type Binding struct {
	Key ebiten.Key
	Cmd core.Command
}

// DefaultBindings covers arrows and WASD for steering, P to pause, Space to
// restart after a victory and Escape or Q to quit
func DefaultBindings() []Binding {
	return []Binding{
		{ebiten.KeyUp, core.Steer(game.Up)},
		{ebiten.KeyDown, core.Steer(game.Down)},
		{ebiten.KeyLeft, core.Steer(game.Left)},
		{ebiten.KeyRight, core.Steer(game.Right)},
		{ebiten.KeyW, core.Steer(game.Up)},
		{ebiten.KeyS, core.Steer(game.Down)},
		{ebiten.KeyA, core.Steer(game.Left)},
		{ebiten.KeyD, core.Steer(game.Right)},
		{ebiten.KeyP, core.Command{Type: core.CmdPauseToggle}},
		{ebiten.KeySpace, core.Command{Type: core.CmdRestart}},
		{ebiten.KeyEscape, core.Command{Type: core.CmdQuit}},
		{ebiten.KeyQ, core.Command{Type: core.CmdQuit}},
	}
}

// Keyboard turns the keys pressed this frame into commands
type Keyboard struct {
	Bindings []Binding

	appendJustPressed func([]ebiten.Key) []ebiten.Key
	keys              []ebiten.Key
}

func NewKeyboard(bindings []Binding) *Keyboard {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Keyboard{
		Bindings:          bindings,
		appendJustPressed: inpututil.AppendJustPressedKeys,
	}
}

// Poll should be called once per frame from ebiten's Update
func (k *Keyboard) Poll(_ game.Snapshot) []core.Command {
	k.keys = k.appendJustPressed(k.keys[:0])

	var cmds []core.Command
	for _, key := range k.keys {
		for _, b := range k.Bindings {
			if b.Key == key {
				cmds = append(cmds, b.Cmd)
			}
		}
	}
	return cmds
}
