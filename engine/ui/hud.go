package ui

import (
	"fmt"
	"time"

	"github.com/1siamBot/snake/engine/game"
)

// HUDHeight is the height of the translucent bar over the top of the field
const HUDHeight = 40

// FormatElapsed renders a duration as mm:ss. Minutes keep counting past 99.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ScoreLine is the left HUD entry
func ScoreLine(snap game.Snapshot) string {
	if snap.Variant == game.VariantClassic {
		return fmt.Sprintf("Score: %d", snap.Score)
	}
	return fmt.Sprintf("Lvl %d | Score: %d", snap.Level, snap.Score)
}

// FillLine is the middle HUD entry
func FillLine(snap game.Snapshot) string {
	return fmt.Sprintf("Filled: %.2f%%", snap.FillPercent)
}

// HighScoreLine shows the best score seen so far
func HighScoreLine(snap game.Snapshot) string {
	return fmt.Sprintf("Best: %d", snap.HighScore)
}
