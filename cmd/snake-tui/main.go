package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/1siamBot/snake/engine/ai"
	"github.com/1siamBot/snake/engine/audio"
	"github.com/1siamBot/snake/engine/config"
	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/session"
	"github.com/1siamBot/snake/engine/tui"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// newLogger writes to path, or nowhere when path is empty. The terminal
// belongs to the game so stderr is never used.
func newLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake-tui",
	})
	return logger, f, nil
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file, created with defaults when missing")
	seed := flag.Uint64("seed", 0, "food placement seed, 0 for random")
	variant := flag.String("variant", "", "override the configured variant: classic or levels")
	autopilot := flag.String("autopilot", "", "let the computer steer: easy, medium or hard")
	record := flag.String("record", "", "record the run to this replay file")
	replayPath := flag.String("replay", "", "play back a replay file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	if *variant != "" {
		var v game.Variant
		if err := v.UnmarshalText([]byte(*variant)); err != nil {
			fmt.Fprintf(os.Stderr, "Bad -variant: %v\n", err)
			os.Exit(2)
		}
		cfg.Game.Variant = v
	}

	var driver core.InputSource
	if *autopilot != "" {
		diff, err := ai.ParseDifficulty(*autopilot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad -autopilot: %v\n", err)
			os.Exit(2)
		}
		driver = ai.NewAutopilot(diff)
	}

	logger, logFile, err := newLogger(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.SetLevel(cfg.LogLevel())

	score, err := run(cfg, logger, session.Options{
		Seed:       *seed,
		Driver:     driver,
		RecordPath: *record,
		ReplayPath: *replayPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Final Score %d\n", score)
}

func run(cfg config.Config, logger *log.Logger, opts session.Options) (int, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return 0, err
	}
	if err := screen.Init(); err != nil {
		return 0, err
	}
	defer screen.Fini()

	keys := tui.NewKeys()
	opts.Config = cfg
	opts.Logger = logger
	opts.Input = keys

	s, err := session.New(opts)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	var sink audio.Sink = audio.Nop{}
	if cfg.Audio.Enabled {
		bm := audio.NewBeepManager(cfg.Audio.Volume)
		// Non-fatal, the game runs silent
		if err := bm.Initialize(); err != nil {
			logger.Warn("audio unavailable", "err", err)
		} else {
			sink = bm
		}
	}
	defer sink.Close()
	audio.Subscribe(s.Loop.Events, sink)

	renderer := tui.NewRenderer(screen)
	checkSize(screen, s.Loop.Snapshot(), logger)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	level := s.Loop.Sim.Level()
	for !s.Done() {
		select {
		case ev := <-eventChan:
			keys.Handle(ev)
		case <-ticker.C:
			s.Frame()
			snap := s.Loop.Snapshot()
			if keys.Resized() || snap.Level != level {
				level = snap.Level
				screen.Sync()
				checkSize(screen, snap, logger)
			}
			renderer.Draw(snap, s.Loop.State())
		}
	}
	return s.Loop.Sim.Score(), nil
}

func checkSize(screen tcell.Screen, snap game.Snapshot, logger *log.Logger) {
	w, h := screen.Size()
	if nw, nh := tui.Size(snap); w < nw || h < nh {
		logger.Warn("terminal too small, field is clipped", "have", fmt.Sprintf("%dx%d", w, h), "need", fmt.Sprintf("%dx%d", nw, nh))
	}
}
