package editor

import (
	"errors"

	"github.com/1siamBot/snake/engine/maplib"
)

// ErrSpawnCell is returned when a wall would cover the spawn row
var ErrSpawnCell = errors.New("cell is reserved for the snake spawn")

// Action represents an undoable wall toggle
type Action struct {
	X, Y  int
	Added bool
}

// Editor holds layout editor state
type Editor struct {
	Layout    *maplib.Layout
	Tool      EditorTool
	UndoStack [][]Action
	RedoStack [][]Action
	FilePath  string
	Modified  bool
	ShowGrid  bool
}

// EditorTool represents the current editor tool
type EditorTool int

const (
	ToolWall EditorTool = iota
	ToolErase
)

func (t EditorTool) String() string {
	if t == ToolErase {
		return "erase"
	}
	return "wall"
}

// NewEditor creates an editor on an open cols x rows layout
func NewEditor(cols, rows int) *Editor {
	return &Editor{
		Layout:   maplib.NewLayout("untitled", cols, rows),
		ShowGrid: true,
	}
}

// LoadLayout loads a layout file
func (e *Editor) LoadLayout(path string) error {
	l, err := maplib.LoadJSON(path)
	if err != nil {
		return err
	}
	e.Layout = l
	e.FilePath = path
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
	return nil
}

// SaveLayout saves the current layout, to FilePath when path is empty
func (e *Editor) SaveLayout(path string) error {
	if path == "" {
		path = e.FilePath
	}
	if path == "" {
		path = e.Layout.Name + ".json"
	}
	if err := e.Layout.SaveJSON(path); err != nil {
		return err
	}
	e.FilePath = path
	e.Modified = false
	return nil
}

// Reserved reports whether (x, y) is one of the cells the snake spawns on,
// plus the cell ahead of its head
func (e *Editor) Reserved(x, y int) bool {
	sp := e.Layout.SpawnPoint()
	return y == sp.Y && x >= sp.X-2 && x <= sp.X+1
}

// Paint applies the current tool at (x, y)
func (e *Editor) Paint(x, y int) error {
	if !e.Layout.InBounds(x, y) {
		return nil
	}
	var a Action
	switch e.Tool {
	case ToolWall:
		if e.Reserved(x, y) {
			return ErrSpawnCell
		}
		if !e.Layout.AddWall(x, y) {
			return nil
		}
		a = Action{X: x, Y: y, Added: true}
	case ToolErase:
		if !e.Layout.RemoveWall(x, y) {
			return nil
		}
		a = Action{X: x, Y: y}
	}
	e.UndoStack = append(e.UndoStack, []Action{a})
	e.RedoStack = nil
	e.Modified = true
	return nil
}

// Fill walls the rectangle between two corners as one undo step. Reserved
// cells are skipped.
func (e *Editor) Fill(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	var actions []Action
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if e.Reserved(x, y) {
				continue
			}
			if e.Layout.AddWall(x, y) {
				actions = append(actions, Action{X: x, Y: y, Added: true})
			}
		}
	}
	if len(actions) > 0 {
		e.UndoStack = append(e.UndoStack, actions)
		e.RedoStack = nil
		e.Modified = true
	}
}

func (e *Editor) apply(actions []Action, forward bool) {
	for _, a := range actions {
		if a.Added == forward {
			e.Layout.AddWall(a.X, a.Y)
		} else {
			e.Layout.RemoveWall(a.X, a.Y)
		}
	}
}

// Undo reverts the last action
func (e *Editor) Undo() {
	if len(e.UndoStack) == 0 {
		return
	}
	actions := e.UndoStack[len(e.UndoStack)-1]
	e.UndoStack = e.UndoStack[:len(e.UndoStack)-1]
	e.apply(actions, false)
	e.RedoStack = append(e.RedoStack, actions)
	e.Modified = true
}

// Redo re-applies the last undone action
func (e *Editor) Redo() {
	if len(e.RedoStack) == 0 {
		return
	}
	actions := e.RedoStack[len(e.RedoStack)-1]
	e.RedoStack = e.RedoStack[:len(e.RedoStack)-1]
	e.apply(actions, true)
	e.UndoStack = append(e.UndoStack, actions)
	e.Modified = true
}

// NewLayout starts over with an open layout
func (e *Editor) NewLayout(name string, cols, rows int) {
	e.Layout = maplib.NewLayout(name, cols, rows)
	e.FilePath = ""
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
}

// Generate replaces the layout with a stock one as an editing base
func (e *Editor) Generate(kind maplib.LayoutKind, maze maplib.MazeParams) {
	cols, rows := e.Layout.Cols, e.Layout.Rows
	e.NewLayout(kind.String(), cols, rows)
	e.Layout = maplib.Generate(kind, cols, rows, maze)
}
