package audio

import (
	"time"

	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndEat          SoundID = "eat"
	SndSpecial      SoundID = "special"
	SndSpecialSpawn SoundID = "special_spawn"
	SndLevelUp      SoundID = "level_up"
	SndGameOver     SoundID = "game_over"
	SndVictory      SoundID = "victory"
)

// Tone is a synthesized effect: a decaying sine
type Tone struct {
	Freq     float64
	Duration time.Duration
	Decay    float64 // envelope e^(-Decay*t)
}

// Tones holds the effect for every sound
var Tones = map[SoundID]Tone{
	SndEat:          {Freq: 880, Duration: 100 * time.Millisecond, Decay: 3},
	SndSpecial:      {Freq: 1320, Duration: 120 * time.Millisecond, Decay: 3},
	SndSpecialSpawn: {Freq: 1100, Duration: 200 * time.Millisecond, Decay: 4},
	SndLevelUp:      {Freq: 660, Duration: 400 * time.Millisecond, Decay: 1.5},
	SndGameOver:     {Freq: 220, Duration: 500 * time.Millisecond, Decay: 2},
	SndVictory:      {Freq: 523.25, Duration: 700 * time.Millisecond, Decay: 1},
}

// Sink plays sound effects. Implementations never block the game loop.
type Sink interface {
	Play(id SoundID)
	Close() error
}

// Volume holds the mixer levels, each in [0,1]
type Volume struct {
	Master float64 `json:"master"`
	SFX    float64 `json:"sfx"`
}

func DefaultVolume() Volume {
	return Volume{Master: 1.0, SFX: 0.8}
}

// Gain returns the effective effect volume
func (v Volume) Gain() float64 {
	return clamp01(v.Master) * clamp01(v.SFX)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SoundFor maps a simulation event to its effect
func SoundFor(e game.Event) (SoundID, bool) {
	switch e {
	case game.EvtFoodEaten:
		return SndEat, true
	case game.EvtSpecialEaten:
		return SndSpecial, true
	case game.EvtSpecialSpawned:
		return SndSpecialSpawn, true
	case game.EvtLevelUp:
		return SndLevelUp, true
	case game.EvtGameOver:
		return SndGameOver, true
	case game.EvtGameWon:
		return SndVictory, true
	}
	return "", false
}

// Subscribe plays the matching effect for every audible event on bus
func Subscribe(bus *core.EventBus, sink Sink) {
	bus.OnAll(func(e core.Event) {
		if id, ok := SoundFor(e.Type); ok {
			sink.Play(id)
		}
	},
		game.EvtFoodEaten, game.EvtSpecialEaten, game.EvtSpecialSpawned,
		game.EvtLevelUp, game.EvtGameOver, game.EvtGameWon,
	)
}

// Nop discards everything. Used when audio is disabled or unavailable.
type Nop struct{}

func (Nop) Play(SoundID) {}
func (Nop) Close() error { return nil }
