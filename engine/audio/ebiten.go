package audio

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenSampleRate is the rate of the shared ebiten audio context
const EbitenSampleRate = 44100

// EbitenManager plays pre-rendered effects through ebiten's audio context.
// Only one may exist per process since ebiten allows a single context.
type EbitenManager struct {
	ctx     *audio.Context
	players map[SoundID]*audio.Player
	logger  *log.Logger
}

func NewEbitenManager(vol Volume, logger *log.Logger) *EbitenManager {
	if logger == nil {
		logger = log.Default()
	}
	ctx := audio.NewContext(EbitenSampleRate)
	m := &EbitenManager{
		ctx:     ctx,
		players: make(map[SoundID]*audio.Player, len(Tones)),
		logger:  logger,
	}
	for id, tone := range Tones {
		m.players[id] = ctx.NewPlayerFromBytes(PCM16(tone, EbitenSampleRate, vol.Gain()))
	}
	return m
}

// Play restarts the effect from the beginning
func (m *EbitenManager) Play(id SoundID) {
	p, ok := m.players[id]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		m.logger.Debug("rewind failed", "sound", id, "err", err)
		return
	}
	p.Play()
}

func (m *EbitenManager) Close() error {
	for _, p := range m.players {
		p.Pause()
	}
	return nil
}
