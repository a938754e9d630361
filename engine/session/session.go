// Package session wires a simulation, its loop and the persistence around it
// for one frontend run.
package session

import (
	"fmt"
	"math/rand/v2"

	"github.com/1siamBot/snake/engine/config"
	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/highscore"
	"github.com/1siamBot/snake/engine/replay"
	"github.com/charmbracelet/log"
)

// seedMix derives the second PCG word from the first
const seedMix = 0x9e3779b97f4a7c15

// Options selects what a session runs
type Options struct {
	Config config.Config
	Logger *log.Logger
	Clock  core.Clock

	// Seed for food placement, zero picks one at random
	Seed uint64

	// Driver steers the snake before every tick, usually an autopilot.
	// It is ignored during playback.
	Driver core.InputSource

	RecordPath string
	ReplayPath string

	// Input is the frontend's own key source. During playback only its quit
	// command is honoured.
	Input core.InputSource
}

// Session is one game from start to exit
type Session struct {
	Loop   *core.GameLoop
	Header replay.Header

	logger   *log.Logger
	input    core.InputSource
	store    highscore.Store
	recorder *replay.Recorder
	player   *replay.Player
	replayed bool
}

// New builds the session. The caller must Close it.
func New(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	cfg := opts.Config

	s := &Session{logger: logger, input: opts.Input}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s.Header = replay.Header{Variant: cfg.Game.Variant, Seed1: seed, Seed2: seed ^ seedMix}

	if opts.ReplayPath != "" {
		rep, err := replay.Load(opts.ReplayPath)
		if err != nil {
			return nil, fmt.Errorf("load replay: %w", err)
		}
		s.Header = rep.Header
		cfg.Game.Variant = rep.Header.Variant
		s.player = rep.Player()
		if s.input != nil {
			s.input = core.Only(s.input, core.CmdQuit)
		}
		logger.Info("replaying", "path", opts.ReplayPath, "commands", len(rep.Entries), "variant", rep.Header.Variant)
	}

	store, err := highscore.Open(cfg.HighScore.Backend, cfg.HighScore.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("open high scores: %w", err)
	}
	s.store = store

	best, err := store.Load()
	if err != nil {
		logger.Warn("could not read high score", "err", err)
		best = 0
	}

	rng := rand.New(rand.NewPCG(s.Header.Seed1, s.Header.Seed2))
	sim, err := game.New(cfg.Game, rng, best)
	if err != nil {
		store.Close()
		return nil, err
	}

	lopts := core.LoopOptions{
		Clock:  opts.Clock,
		Logger: logger,
		Scores: store,
	}
	if s.player != nil {
		lopts.Script = s.player
	} else {
		lopts.Driver = opts.Driver
	}

	if opts.RecordPath != "" {
		rec, err := replay.NewRecorder(opts.RecordPath, s.Header)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("create replay: %w", err)
		}
		s.recorder = rec
		lopts.Recorder = rec
		logger.Info("recording", "path", opts.RecordPath)
	}

	s.Loop = core.NewGameLoop(sim, lopts)
	logger.Info("game started",
		"variant", cfg.Game.Variant,
		"seed", s.Header.Seed1,
		"high_score", best,
		"autopilot", lopts.Driver != nil,
	)
	return s, nil
}

// Frame polls frontend input and advances the loop by the time since the
// previous frame
func (s *Session) Frame() {
	if s.input != nil {
		s.Loop.Poll(s.input)
	}
	s.Loop.Update()

	if s.player != nil && !s.replayed && s.player.Finished() {
		s.replayed = true
		s.logger.Info("replay finished", "step", s.Loop.Steps(), "score", s.Loop.Sim.Score())
	}
}

// Done reports whether the frontend should exit
func (s *Session) Done() bool {
	return s.Loop.Done()
}

// Close flushes the recording and releases the score store
func (s *Session) Close() error {
	var firstErr error
	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			firstErr = fmt.Errorf("close replay: %w", err)
		}
	}

	if sq, ok := s.store.(*highscore.SQLiteStore); ok {
		if runs, err := sq.Top(5); err == nil {
			for i, r := range runs {
				s.logger.Info("top run", "rank", i+1, "score", r.Score, "level", r.Level, "won", r.Won)
			}
		}
	}
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
