package core

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/1siamBot/snake/engine/game"
	"github.com/1siamBot/snake/engine/highscore"
	"github.com/charmbracelet/log"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type memStore struct{ runs []highscore.Run }

func (m *memStore) Load() (int, error) { return 0, nil }
func (m *memStore) Close() error       { return nil }

func (m *memStore) Record(run highscore.Run) error {
	m.runs = append(m.runs, run)
	return nil
}

type stepCommand struct {
	step uint64
	cmd  Command
}

type memRecorder struct{ got []stepCommand }

func (r *memRecorder) Record(step uint64, cmd Command) error {
	r.got = append(r.got, stepCommand{step, cmd})
	return nil
}

type fixedScript struct{ cmds []stepCommand }

func (s *fixedScript) Due(step uint64) []Command {
	var out []Command
	for len(s.cmds) > 0 && s.cmds[0].step <= step {
		out = append(out, s.cmds[0].cmd)
		s.cmds = s.cmds[1:]
	}
	return out
}

// cycleDriver walks the Hamiltonian cycle of a 4x2 field
type cycleDriver struct{}

func (cycleDriver) Poll(snap game.Snapshot) []Command {
	next := map[[2]int]game.Direction{
		{2, 1}: game.Right, {3, 1}: game.Up, {3, 0}: game.Left, {2, 0}: game.Left,
		{1, 0}: game.Left, {0, 0}: game.Down, {0, 1}: game.Right, {1, 1}: game.Right,
	}
	h := snap.Head()
	return []Command{Steer(next[[2]int{h.X / snap.BlockSize, h.Y / snap.BlockSize}])}
}

func newTestLoop(t *testing.T, cfg game.Config, opts LoopOptions) (*GameLoop, *fakeClock) {
	t.Helper()
	sim, err := game.New(cfg, rand.New(rand.NewPCG(3, 4)), 0)
	if err != nil {
		t.Fatalf("game.New failed: %v", err)
	}
	clk := &fakeClock{t: time.Unix(1000, 0)}
	opts.Clock = clk
	opts.Logger = log.New(io.Discard)
	return NewGameLoop(sim, opts), clk
}

func classicConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.Variant = game.VariantClassic
	cfg.Width = 400
	cfg.Height = 400
	return cfg
}

func twoTinyLevels() game.Config {
	cfg := game.DefaultConfig()
	cfg.Levels = []game.Level{{Width: 80, Height: 40}, {Width: 80, Height: 40}}
	return cfg
}

func advance(gl *GameLoop, clk *fakeClock, total time.Duration) {
	const frame = 10 * time.Millisecond
	for d := time.Duration(0); d < total; d += frame {
		clk.Advance(frame)
		gl.Update()
	}
}

func TestLoopPacesTicksByRate(t *testing.T) {
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{})

	advance(gl, clk, 120*time.Millisecond)
	if gl.Steps() != 0 {
		t.Fatalf("Expected no tick before 125ms, got %d", gl.Steps())
	}
	advance(gl, clk, 10*time.Millisecond)
	if gl.Steps() != 1 {
		t.Fatalf("Expected 1 tick at 130ms, got %d", gl.Steps())
	}
	if gl.Elapsed() != 130*time.Millisecond {
		t.Errorf("Expected elapsed 130ms, got %v", gl.Elapsed())
	}
}

func TestLoopCapsLongFrames(t *testing.T) {
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{})
	clk.Advance(10 * time.Second)
	gl.Update()
	if gl.Steps() != 2 {
		t.Errorf("Expected a 10s stall to run 2 ticks, got %d", gl.Steps())
	}
}

func TestPauseFreezesTicksAndElapsed(t *testing.T) {
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{})

	gl.Apply(Command{Type: CmdPauseToggle})
	advance(gl, clk, time.Second)
	if gl.Steps() != 0 || gl.Elapsed() != 0 {
		t.Fatalf("Expected frozen loop while paused, got %d steps and %v", gl.Steps(), gl.Elapsed())
	}
	if gl.State() != StatePaused {
		t.Errorf("Expected StatePaused, got %d", gl.State())
	}

	gl.Apply(Command{Type: CmdPauseToggle})
	advance(gl, clk, 130*time.Millisecond)
	if gl.Steps() != 1 {
		t.Errorf("Expected 1 tick after resuming, got %d", gl.Steps())
	}
	if gl.Elapsed() != 130*time.Millisecond {
		t.Errorf("Expected elapsed 130ms, got %v", gl.Elapsed())
	}
}

func TestLossRecordsRunAndDelaysExit(t *testing.T) {
	store := &memStore{}
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{Scores: store})

	gameOvers := 0
	gl.Events.On(game.EvtGameOver, func(e Event) { gameOvers++ })

	for i := 0; i < 1000 && gl.Sim.Status() == game.StatusRunning; i++ {
		clk.Advance(10 * time.Millisecond)
		gl.Update()
	}
	if gl.Sim.Status() != game.StatusLost {
		t.Fatalf("Expected the snake to hit the wall, status %v", gl.Sim.Status())
	}
	if gameOvers != 1 {
		t.Errorf("Expected 1 game over event, got %d", gameOvers)
	}
	if len(store.runs) != 1 || store.runs[0].Score != gl.Sim.Score() || store.runs[0].Won {
		t.Fatalf("Unexpected recorded runs: %+v", store.runs)
	}
	if gl.State() != StateGameOver {
		t.Errorf("Expected StateGameOver, got %d", gl.State())
	}

	frozen := gl.Elapsed()
	advance(gl, clk, 500*time.Millisecond)
	if gl.Done() {
		t.Error("Loop finished before the loss delay")
	}
	if gl.Elapsed() != frozen {
		t.Errorf("Elapsed moved after the loss: %v -> %v", frozen, gl.Elapsed())
	}
	advance(gl, clk, 600*time.Millisecond)
	if !gl.Done() {
		t.Error("Expected the loop to finish after the loss delay")
	}
}

func TestLevelHoldAndVictory(t *testing.T) {
	store := &memStore{}
	gl, clk := newTestLoop(t, twoTinyLevels(), LoopOptions{Scores: store, Driver: cycleDriver{}})

	levelUps, wins, restarts := 0, 0, 0
	gl.Events.On(game.EvtLevelUp, func(e Event) { levelUps++ })
	gl.Events.On(game.EvtGameWon, func(e Event) { wins++ })
	gl.Events.On(game.EvtRestart, func(e Event) { restarts++ })

	for i := 0; i < 20000 && levelUps == 0; i++ {
		clk.Advance(10 * time.Millisecond)
		gl.Update()
	}
	if levelUps != 1 || gl.Sim.Level() != 2 {
		t.Fatalf("Expected level 2 after one level up, got level %d (%d events)", gl.Sim.Level(), levelUps)
	}
	if gl.State() != StateLevelHold {
		t.Fatalf("Expected StateLevelHold, got %d", gl.State())
	}

	held := gl.Steps()
	advance(gl, clk, 400*time.Millisecond)
	if gl.Steps() != held {
		t.Fatalf("Ticks ran during the level hold: %d -> %d", held, gl.Steps())
	}
	advance(gl, clk, 800*time.Millisecond)
	if gl.Steps() == held {
		t.Fatal("Ticks did not resume after the level hold")
	}

	for i := 0; i < 20000 && wins == 0; i++ {
		clk.Advance(10 * time.Millisecond)
		gl.Update()
	}
	if gl.State() != StateVictory {
		t.Fatalf("Expected StateVictory, got %d", gl.State())
	}
	if gl.Sim.Score() != 10 {
		t.Errorf("Expected score 10 after filling both levels, got %d", gl.Sim.Score())
	}
	if len(store.runs) != 1 || !store.runs[0].Won {
		t.Errorf("Expected one winning run recorded, got %+v", store.runs)
	}

	advance(gl, clk, 2*time.Second)
	if gl.Done() {
		t.Error("Victory screen should wait for the player")
	}

	gl.Apply(Command{Type: CmdRestart})
	if restarts != 1 || gl.Sim.Level() != 1 || gl.Elapsed() != 0 {
		t.Errorf("Restart failed: restarts=%d level=%d elapsed=%v", restarts, gl.Sim.Level(), gl.Elapsed())
	}
	if gl.State() != StatePlaying {
		t.Errorf("Expected StatePlaying after restart, got %d", gl.State())
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{})
	advance(gl, clk, 260*time.Millisecond)
	before := gl.Elapsed()

	gl.Apply(Command{Type: CmdRestart})
	if gl.Elapsed() != before {
		t.Errorf("Restart during play reset the clock")
	}
}

func TestRecorderSeesSteps(t *testing.T) {
	rec := &memRecorder{}
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{Recorder: rec})

	gl.Apply(Steer(game.Up))
	advance(gl, clk, 130*time.Millisecond)
	gl.Apply(Command{Type: CmdPauseToggle})

	if len(rec.got) != 2 {
		t.Fatalf("Expected 2 recorded commands, got %d", len(rec.got))
	}
	if rec.got[0].step != 0 || rec.got[0].cmd != Steer(game.Up) {
		t.Errorf("Unexpected first record %+v", rec.got[0])
	}
	if rec.got[1].step != 1 || rec.got[1].cmd.Type != CmdPauseToggle {
		t.Errorf("Unexpected second record %+v", rec.got[1])
	}
}

func TestScriptAppliesAtStep(t *testing.T) {
	script := &fixedScript{cmds: []stepCommand{{2, Steer(game.Up)}}}
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{Script: script})

	for i := 0; i < 1000 && gl.Steps() < 3; i++ {
		clk.Advance(10 * time.Millisecond)
		gl.Update()
	}
	if got := gl.Sim.Head(); got != (game.Cell{X: 240, Y: 180}) {
		t.Errorf("Expected head (240,180), got %v", got)
	}
}

func TestQuit(t *testing.T) {
	gl, _ := newTestLoop(t, classicConfig(), LoopOptions{})
	if gl.Done() {
		t.Fatal("Fresh loop reports done")
	}
	gl.Apply(Command{Type: CmdQuit})
	if !gl.Done() {
		t.Error("Expected Done after quit")
	}
}

func TestSnapshotCarriesElapsed(t *testing.T) {
	gl, clk := newTestLoop(t, classicConfig(), LoopOptions{})
	advance(gl, clk, 50*time.Millisecond)
	if got := gl.Snapshot().Elapsed; got != 50*time.Millisecond {
		t.Errorf("Expected 50ms in snapshot, got %v", got)
	}
}
