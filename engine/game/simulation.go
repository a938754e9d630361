package game

import (
	"math"
	"math/rand/v2"

	"github.com/1siamBot/snake/engine/maplib"
)

// Simulation owns the complete game state and advances it one tick at a time.
// It is not safe for concurrent use; a single loop drives it.
type Simulation struct {
	cfg     Config
	rng     *rand.Rand
	layouts []*maplib.Layout

	// Level state
	level     int
	layout    *maplib.Layout
	wallCells []Cell
	width     int
	height    int

	snake   []Cell
	dir     Direction
	pending Direction

	food       Cell
	hasFood    bool
	special    Cell
	hasSpecial bool
	specialAge int

	score     int
	highScore int
	status    Status
	ticks     uint64
}

// New creates a simulation at level 1. rng drives food placement only; the
// maze uses its own seeded generator. highScore is the persisted baseline.
func New(cfg Config, rng *rand.Rand, highScore int) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layouts, err := cfg.Layouts()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if highScore < 0 {
		highScore = 0
	}

	s := &Simulation{
		cfg:       cfg,
		rng:       rng,
		layouts:   layouts,
		highScore: highScore,
	}
	s.reset()
	return s, nil
}

func (s *Simulation) reset() {
	s.score = 0
	s.ticks = 0
	s.status = StatusRunning
	s.loadLevel(1)
}

// loadLevel regenerates everything owned by a level. Score is untouched.
func (s *Simulation) loadLevel(n int) {
	bs := s.cfg.BlockSize
	s.level = n
	s.layout = s.layouts[n-1]
	s.width = s.layout.Cols * bs
	s.height = s.layout.Rows * bs

	s.wallCells = make([]Cell, len(s.layout.Walls))
	for i, w := range s.layout.Walls {
		s.wallCells[i] = Cell{w.X * bs, w.Y * bs}
	}

	sp := s.layout.SpawnPoint()
	head := Cell{sp.X * bs, sp.Y * bs}
	s.snake = []Cell{
		head,
		{head.X - bs, head.Y},
		{head.X - 2*bs, head.Y},
	}
	s.dir = Right
	s.pending = Right

	s.hasSpecial = false
	s.specialAge = 0
	s.hasFood = false
	s.placeFood()
}

// SetDirection queues a heading for the next tick. Reversals and requests
// outside the running state are ignored.
func (s *Simulation) SetDirection(d Direction) {
	if s.status != StatusRunning || !d.Valid() {
		return
	}
	if d == s.dir.Opposite() {
		return
	}
	s.pending = d
}

// TogglePause flips between running and paused
func (s *Simulation) TogglePause() {
	switch s.status {
	case StatusRunning:
		s.status = StatusPaused
	case StatusPaused:
		s.status = StatusRunning
	}
}

// Restart starts a fresh run after a victory. The high score is kept.
func (s *Simulation) Restart() bool {
	if s.status != StatusWon {
		return false
	}
	s.reset()
	return true
}

// Tick advances the game by one step
func (s *Simulation) Tick() Result {
	if s.status != StatusRunning {
		return Result{Status: s.status, Rate: s.TickRate()}
	}

	var res Result
	bs := s.cfg.BlockSize
	s.ticks++

	s.dir = s.pending
	head := s.snake[0].Step(s.dir, bs)
	s.snake = append(s.snake, Cell{})
	copy(s.snake[1:], s.snake)
	s.snake[0] = head

	// Bounds, then body, then walls. Food is only considered afterwards.
	if s.collides(head) {
		s.status = StatusLost
		res.Events = append(res.Events, EvtGameOver)
		res.NewHighScore = s.settleHighScore()
		res.Status = s.status
		res.Rate = s.TickRate()
		return res
	}

	switch {
	case s.hasFood && head == s.food:
		s.score += s.cfg.FoodPoints
		res.Grew = true
		res.Events = append(res.Events, EvtFoodEaten)
		s.hasFood = false
		if len(s.snake) < s.MaxCapacity() {
			s.placeFood()
		}
	case s.hasSpecial && head == s.special:
		s.score += s.cfg.SpecialPoints
		res.Grew = true
		res.Events = append(res.Events, EvtSpecialEaten)
		s.hasSpecial = false
		s.specialAge = 0
	default:
		s.snake = s.snake[:len(s.snake)-1]
	}

	if s.score > 0 && s.score%s.cfg.SpecialEvery == 0 && !s.hasSpecial && !res.Grew &&
		len(s.snake) < s.MaxCapacity()-s.cfg.SpecialMargin {
		if s.placeSpecial() {
			res.Events = append(res.Events, EvtSpecialSpawned)
		}
	}

	if s.hasSpecial {
		s.specialAge++
		if s.specialAge > s.cfg.SpecialLifetime {
			s.hasSpecial = false
			s.specialAge = 0
			res.Events = append(res.Events, EvtSpecialExpired)
		}
	}

	if s.cfg.Variant == VariantLevels && len(s.snake) >= s.MaxCapacity() {
		if s.level < len(s.layouts) {
			s.loadLevel(s.level + 1)
			res.Events = append(res.Events, EvtLevelUp)
		} else {
			s.status = StatusWon
			res.Events = append(res.Events, EvtGameWon)
			res.NewHighScore = s.settleHighScore()
		}
	}

	res.Status = s.status
	res.Rate = s.TickRate()
	return res
}

func (s *Simulation) collides(head Cell) bool {
	if head.X < 0 || head.X >= s.width || head.Y < 0 || head.Y >= s.height {
		return true
	}
	for _, c := range s.snake[1:] {
		if c == head {
			return true
		}
	}
	return s.isWall(head)
}

func (s *Simulation) isWall(c Cell) bool {
	bs := s.cfg.BlockSize
	return s.layout.IsWall(c.X/bs, c.Y/bs)
}

func (s *Simulation) settleHighScore() bool {
	if s.score > s.highScore {
		s.highScore = s.score
		return true
	}
	return false
}

// TickRate returns the ticks per second for the current state
func (s *Simulation) TickRate() float64 {
	if s.cfg.Variant == VariantClassic {
		return s.cfg.BaseRate + float64(s.score)*s.cfg.ScoreRateFactor
	}
	rate := s.cfg.BaseRate +
		float64(s.level-1)*s.cfg.LevelRateStep +
		float64(len(s.snake))*s.cfg.LengthRateFactor
	return math.Min(rate, s.cfg.RateCap)
}

// MaxCapacity is the number of non-wall cells of the current level
func (s *Simulation) MaxCapacity() int {
	return s.layout.Capacity()
}

// Status returns the current state machine status
func (s *Simulation) Status() Status { return s.status }

// Score returns the score of the current run
func (s *Simulation) Score() int { return s.score }

// HighScore returns the best score seen, including the current run once it ended
func (s *Simulation) HighScore() int { return s.highScore }

// Level returns the current level number, 1-based
func (s *Simulation) Level() int { return s.level }

// Direction returns the heading used by the last tick
func (s *Simulation) Direction() Direction { return s.dir }

// Head returns the head cell
func (s *Simulation) Head() Cell { return s.snake[0] }

// Len returns the snake length
func (s *Simulation) Len() int { return len(s.snake) }

// Ticks returns the number of ticks executed since the run started
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Config returns the configuration the simulation was built with
func (s *Simulation) Config() Config { return s.cfg }
