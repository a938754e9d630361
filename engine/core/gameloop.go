package core

import (
	"time"

	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/highscore"
	"github.com/charmbracelet/log"
)

// LoopState is what the frontends show, derived from the simulation status
// and the loop's own timers
type LoopState uint8

const (
	StatePlaying LoopState = iota
	StatePaused
	StateLevelHold
	StateGameOver
	StateVictory
)

const (
	DefaultLevelHold = 500 * time.Millisecond
	DefaultLostDelay = time.Second

	maxFrameTime = 250 * time.Millisecond
)

// Clock supplies wall time to the loop
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// LoopOptions configures a GameLoop. Zero values pick the defaults.
type LoopOptions struct {
	Clock  Clock
	Logger *log.Logger
	Scores highscore.Store

	// Driver is consulted before every tick, unlike frame input
	Driver   InputSource
	Recorder CommandRecorder
	Script   Script

	LevelHold time.Duration
	LostDelay time.Duration
}

// GameLoop paces the simulation in real time. The tick interval follows the
// rate reported by the last tick, so the snake speeds up as it grows.
type GameLoop struct {
	Sim    *game.Simulation
	Events *EventBus

	clock    Clock
	logger   *log.Logger
	scores   highscore.Store
	driver   InputSource
	recorder CommandRecorder
	script   Script

	levelHold time.Duration
	lostDelay time.Duration

	rate        float64
	accumulator time.Duration
	lastTime    time.Time
	elapsed     time.Duration
	holdUntil   time.Time
	endedAt     time.Time
	steps       uint64
	quit        bool
}

// NewGameLoop wraps sim in a real-time loop
func NewGameLoop(sim *game.Simulation, opts LoopOptions) *GameLoop {
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.LevelHold <= 0 {
		opts.LevelHold = DefaultLevelHold
	}
	if opts.LostDelay <= 0 {
		opts.LostDelay = DefaultLostDelay
	}

	return &GameLoop{
		Sim:       sim,
		Events:    NewEventBus(),
		clock:     opts.Clock,
		logger:    opts.Logger,
		scores:    opts.Scores,
		driver:    opts.Driver,
		recorder:  opts.Recorder,
		script:    opts.Script,
		levelHold: opts.LevelHold,
		lostDelay: opts.LostDelay,
		rate:      sim.TickRate(),
		lastTime:  opts.Clock.Now(),
	}
}

// Update should be called every render frame. It runs as many ticks as the
// time since the previous frame allows.
func (gl *GameLoop) Update() {
	now := gl.clock.Now()
	frameTime := now.Sub(gl.lastTime)
	gl.lastTime = now

	// Cap frame time to avoid spiral of death
	if frameTime > maxFrameTime {
		frameTime = maxFrameTime
	}
	if frameTime < 0 {
		frameTime = 0
	}

	gl.applyScripted()

	if gl.Sim.Status() != game.StatusRunning {
		gl.accumulator = 0
		return
	}
	gl.elapsed += frameTime
	if now.Before(gl.holdUntil) {
		return
	}

	gl.accumulator += frameTime
	for gl.accumulator >= gl.interval() {
		gl.accumulator -= gl.interval()

		gl.applyScripted()
		if gl.driver != nil {
			gl.Poll(gl.driver)
		}
		if gl.Sim.Status() != game.StatusRunning {
			gl.accumulator = 0
			return
		}

		res := gl.step(now)
		if res.Status != game.StatusRunning || now.Before(gl.holdUntil) {
			gl.accumulator = 0
			return
		}
	}
}

func (gl *GameLoop) step(now time.Time) game.Result {
	res := gl.Sim.Tick()
	gl.steps++
	gl.rate = res.Rate

	for _, e := range res.Events {
		gl.Events.Emit(Event{
			Type:  e,
			Tick:  gl.steps,
			Score: gl.Sim.Score(),
			Level: gl.Sim.Level(),
		})

		switch e {
		case game.EvtLevelUp:
			gl.holdUntil = now.Add(gl.levelHold)
			gl.logger.Info("level up", "level", gl.Sim.Level(), "score", gl.Sim.Score())
		case game.EvtGameOver, game.EvtGameWon:
			gl.finish(now, e == game.EvtGameWon)
		}
	}
	gl.Events.Dispatch()
	return res
}

func (gl *GameLoop) finish(now time.Time, won bool) {
	gl.endedAt = now
	run := highscore.Run{
		Score:      gl.Sim.Score(),
		Level:      gl.Sim.Level(),
		Elapsed:    gl.elapsed,
		Won:        won,
		FinishedAt: now,
	}

	if won {
		gl.logger.Info("victory", "score", run.Score, "elapsed", run.Elapsed.Round(time.Second))
	} else {
		gl.logger.Info("game over", "score", run.Score, "level", run.Level, "high_score", gl.Sim.HighScore())
	}

	if gl.scores == nil {
		return
	}
	if err := gl.scores.Record(run); err != nil {
		gl.logger.Warn("could not save high score", "err", err)
	}
}

// Apply executes one command against the simulation
func (gl *GameLoop) Apply(cmd Command) {
	if gl.recorder != nil {
		if err := gl.recorder.Record(gl.steps, cmd); err != nil {
			gl.logger.Warn("recording stopped", "err", err)
			gl.recorder = nil
		}
	}

	switch cmd.Type {
	case CmdDirection:
		gl.Sim.SetDirection(cmd.Dir)
	case CmdPauseToggle:
		gl.Sim.TogglePause()
		gl.logger.Debug("pause toggled", "status", gl.Sim.Status())
	case CmdRestart:
		if !gl.Sim.Restart() {
			return
		}
		gl.elapsed = 0
		gl.accumulator = 0
		gl.holdUntil = time.Time{}
		gl.endedAt = time.Time{}
		gl.rate = gl.Sim.TickRate()
		gl.Events.Emit(Event{Type: game.EvtRestart, Tick: gl.steps, Level: 1})
		gl.Events.Dispatch()
		gl.logger.Info("restarted")
	case CmdQuit:
		gl.quit = true
	}
}

// Poll drains src and applies its commands
func (gl *GameLoop) Poll(src InputSource) {
	for _, cmd := range src.Poll(gl.Snapshot()) {
		gl.Apply(cmd)
	}
}

func (gl *GameLoop) applyScripted() {
	if gl.script == nil {
		return
	}
	for _, cmd := range gl.script.Due(gl.steps) {
		gl.Apply(cmd)
	}
}

func (gl *GameLoop) interval() time.Duration {
	if gl.rate <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / gl.rate)
}

// State reports what the frontends should show
func (gl *GameLoop) State() LoopState {
	switch gl.Sim.Status() {
	case game.StatusPaused:
		return StatePaused
	case game.StatusLost:
		return StateGameOver
	case game.StatusWon:
		return StateVictory
	}
	if gl.clock.Now().Before(gl.holdUntil) {
		return StateLevelHold
	}
	return StatePlaying
}

// Done is true once the player quit or the loss screen has been shown long enough
func (gl *GameLoop) Done() bool {
	if gl.quit {
		return true
	}
	if gl.Sim.Status() != game.StatusLost || gl.endedAt.IsZero() {
		return false
	}
	return gl.clock.Now().Sub(gl.endedAt) >= gl.lostDelay
}

// Snapshot returns the simulation snapshot with the elapsed play time
func (gl *GameLoop) Snapshot() game.Snapshot {
	snap := gl.Sim.Snapshot()
	snap.Elapsed = gl.elapsed
	return snap
}

// Elapsed returns the play time of the current run. It stops while paused
// and once the run ended.
func (gl *GameLoop) Elapsed() time.Duration { return gl.elapsed }

// Steps returns the ticks executed since the loop started, across restarts
func (gl *GameLoop) Steps() uint64 { return gl.steps }

// Rate returns the current ticks per second
func (gl *GameLoop) Rate() float64 { return gl.rate }
