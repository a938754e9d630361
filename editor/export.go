package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/1siamBot/snake/engine/game"
)

// ExportLevels writes every level of cfg to dir as a layout file and a PNG
// preview. The returned table points each level at its exported layout file
// so it can be pasted into a settings file and edited.
func ExportLevels(cfg game.Config, dir string, previews bool) ([]game.Level, error) {
	layouts, err := cfg.Layouts()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	table := make([]game.Level, len(layouts))
	for i, l := range layouts {
		n := i + 1
		base := filepath.Join(dir, fmt.Sprintf("level-%d", n))
		if err := l.SaveJSON(base + ".json"); err != nil {
			return nil, fmt.Errorf("level %d: %w", n, err)
		}
		if previews {
			if err := Preview(l, cfg.BlockSize, n).SavePNG(base + ".png"); err != nil {
				return nil, fmt.Errorf("level %d preview: %w", n, err)
			}
		}
		table[i] = game.Level{
			Width:      l.Cols * cfg.BlockSize,
			Height:     l.Rows * cfg.BlockSize,
			LayoutFile: base + ".json",
		}
		if i < len(cfg.Levels) {
			table[i].Layout = cfg.Levels[i].Layout
		}
	}
	return table, nil
}
