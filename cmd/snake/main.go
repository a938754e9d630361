package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/1siamBot/snake/engine/ai"
	"github.com/1siamBot/snake/engine/audio"
	"github.com/1siamBot/snake/engine/config"
	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/input"
	"github.com/1siamBot/snake/engine/render"
	"github.com/1siamBot/snake/engine/session"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Game implements ebiten.Game
type Game struct {
	session  *session.Session
	renderer *render.Renderer
	viewport *render.Viewport
	logger   *log.Logger

	scale         float64 // configured, before fitting to the monitor
	width, height int
}

func NewGame(s *session.Session, scale float64, logger *log.Logger) *Game {
	g := &Game{
		session:  s,
		renderer: render.NewRenderer(),
		viewport: render.NewViewport(scale),
		logger:   logger,
		scale:    scale,
	}
	g.resize()
	return g
}

// resize fits the window to the current level
func (g *Game) resize() {
	snap := g.session.Loop.Snapshot()
	if snap.Width == g.width && snap.Height == g.height {
		return
	}
	g.width, g.height = snap.Width, snap.Height

	g.viewport.SetScale(g.scale)
	if m := ebiten.Monitor(); m != nil {
		mw, mh := m.Size()
		g.viewport.SetScale(g.viewport.FitScale(g.width, g.height, mw, mh))
	}
	ebiten.SetWindowSize(g.viewport.WindowSize(g.width, g.height))
	g.logger.Debug("window resized", "width", g.width, "height", g.height, "scale", g.viewport.Scale)
}

func (g *Game) Update() error {
	g.session.Frame()
	if g.session.Done() {
		return ebiten.Termination
	}
	g.resize()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session.Loop.Snapshot(), g.session.Loop.State())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "settings file, created with defaults when missing")
	seed := flag.Uint64("seed", 0, "food placement seed, 0 for random")
	variant := flag.String("variant", "", "override the configured variant: classic or levels")
	autopilot := flag.String("autopilot", "", "let the computer steer: easy, medium or hard")
	record := flag.String("record", "", "record the run to this replay file")
	replayPath := flag.String("replay", "", "play back a replay file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "snake",
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("could not load settings", "path", *configPath, "err", err)
	}
	logger.SetLevel(cfg.LogLevel())

	if *variant != "" {
		var v game.Variant
		if err := v.UnmarshalText([]byte(*variant)); err != nil {
			logger.Fatal("bad -variant", "err", err)
		}
		cfg.Game.Variant = v
	}

	var driver core.InputSource
	if *autopilot != "" {
		diff, err := ai.ParseDifficulty(*autopilot)
		if err != nil {
			logger.Fatal("bad -autopilot", "err", err)
		}
		driver = ai.NewAutopilot(diff)
	}

	s, err := session.New(session.Options{
		Config:     cfg,
		Logger:     logger,
		Seed:       *seed,
		Driver:     driver,
		RecordPath: *record,
		ReplayPath: *replayPath,
		Input:      input.NewKeyboard(nil),
	})
	if err != nil {
		logger.Fatal("could not start", "err", err)
	}

	var sink audio.Sink = audio.Nop{}
	if cfg.Audio.Enabled {
		sink = audio.NewEbitenManager(cfg.Audio.Volume, logger)
	}
	audio.Subscribe(s.Loop.Events, sink)

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(60)

	g := NewGame(s, cfg.Window.Scale, logger)
	runErr := ebiten.RunGame(g)

	sink.Close()
	if err := s.Close(); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		logger.Fatal("game exited", "err", runErr)
	}
	fmt.Printf("Final Score %d\n", s.Loop.Sim.Score())
}
