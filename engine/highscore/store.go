// Package highscore persists the best score between runs.
package highscore

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Run is the summary of one finished game
type Run struct {
	Score      int
	Level      int
	Elapsed    time.Duration
	Won        bool
	FinishedAt time.Time
}

// Store reads the high score baseline and records finished runs
type Store interface {
	// Load returns the stored high score, 0 when nothing usable is stored
	Load() (int, error)
	// Record persists a finished run if the backend keeps it
	Record(run Run) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates the store for a backend name
func Open(backend, path string, logger *log.Logger) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(path, logger), nil
	case BackendSQLite:
		return OpenSQLite(path, logger)
	}
	return nil, fmt.Errorf("unknown high score backend %q", backend)
}
