package highscore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// FileStore keeps the high score as a single integer in a text file
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore creates a store backed by path. The file is created on the
// first record.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Load returns the stored score. Missing, empty or malformed files read as 0.
func (s *FileStore) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || score < 0 {
		s.logger.Debug("ignoring malformed high score file", "path", s.path)
		return 0, nil
	}
	return score, nil
}

// Record writes the run score if it beats the stored one
func (s *FileStore) Record(run Run) error {
	best, err := s.Load()
	if err != nil {
		return err
	}
	if run.Score <= best {
		return nil
	}

	// Write then rename so a crash never leaves a truncated file
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".highscore-*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(strconv.Itoa(run.Score)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	s.logger.Info("new high score saved", "score", run.Score, "path", s.path)
	return nil
}

// Close is a no-op for files
func (s *FileStore) Close() error { return nil }
