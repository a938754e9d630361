package highscore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const createRunsTableSQL = `
CREATE TABLE IF NOT EXISTS Runs (
    ID INTEGER PRIMARY KEY AUTOINCREMENT,
    Score INTEGER NOT NULL,
    Level INTEGER NOT NULL,
    ElapsedMs INTEGER NOT NULL,
    Won INTEGER NOT NULL,
    FinishedAt TIMESTAMP NOT NULL
);
`

const createRunsIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_runs_score ON Runs (Score DESC);
`

// SQLiteStore keeps every finished run; the high score is the best of them
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (or creates) the run history database at path
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	for _, stmt := range []string{createRunsTableSQL, createRunsIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init %s: %w", path, err)
		}
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Load returns the best recorded score
func (s *SQLiteStore) Load() (int, error) {
	var best int
	err := s.db.QueryRow("SELECT COALESCE(MAX(Score), 0) FROM Runs").Scan(&best)
	if err != nil {
		return 0, err
	}
	return best, nil
}

// Record appends the run to the history
func (s *SQLiteStore) Record(run Run) error {
	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	_, err := s.db.Exec(
		"INSERT INTO Runs (Score, Level, ElapsedMs, Won, FinishedAt) VALUES (?, ?, ?, ?, ?)",
		run.Score, run.Level, run.Elapsed.Milliseconds(), run.Won, finished.UTC(),
	)
	if err != nil {
		return err
	}
	s.logger.Debug("run recorded", "score", run.Score, "level", run.Level)
	return nil
}

// Top returns the n best runs, best first
func (s *SQLiteStore) Top(n int) ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT Score, Level, ElapsedMs, Won, FinishedAt FROM Runs ORDER BY Score DESC, ID ASC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		if err := rows.Scan(&r.Score, &r.Level, &ms, &r.Won, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
