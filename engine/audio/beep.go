package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const beepSampleRate = beep.SampleRate(48000)

// BeepManager mixes effects onto the system speaker. The terminal frontend
// uses it since it has no ebiten context.
type BeepManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	initialized bool
}

func NewBeepManager(vol Volume) *BeepManager {
	return &BeepManager{
		mixer: &beep.Mixer{},
		gain:  vol.Gain(),
	}
}

// Initialize opens the speaker. It fails on machines without an audio device.
func (bm *BeepManager) Initialize() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.initialized {
		return nil
	}
	if err := speaker.Init(beepSampleRate, beepSampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(bm.mixer)
	bm.initialized = true
	return nil
}

// Play queues the effect on the mixer
func (bm *BeepManager) Play(id SoundID) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	tone, ok := Tones[id]
	if !bm.initialized || !ok {
		return
	}
	// Gain scales by 1+Gain
	s := &effects.Gain{Streamer: NewToneStreamer(tone, beepSampleRate), Gain: bm.gain - 1}

	speaker.Lock()
	bm.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer
func (bm *BeepManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if !bm.initialized {
		return nil
	}
	speaker.Lock()
	bm.mixer.Clear()
	speaker.Unlock()
	bm.initialized = false
	return nil
}
