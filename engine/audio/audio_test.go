package audio

import (
	"testing"
	"time"

	"github.com/1siamBot/snake/engine/core"
	"github.com/1siamBot/snake/engine/game"
	"github.com/gopxl/beep"
)

type recordingSink struct{ played []SoundID }

func (r *recordingSink) Play(id SoundID) { r.played = append(r.played, id) }
func (r *recordingSink) Close() error    { return nil }

func TestEveryAudibleEventHasATone(t *testing.T) {
	for _, e := range []game.Event{
		game.EvtFoodEaten, game.EvtSpecialEaten, game.EvtSpecialSpawned,
		game.EvtLevelUp, game.EvtGameOver, game.EvtGameWon,
	} {
		id, ok := SoundFor(e)
		if !ok {
			t.Errorf("Expected a sound for %v", e)
			continue
		}
		if _, ok := Tones[id]; !ok {
			t.Errorf("Sound %q has no tone", id)
		}
	}
	if _, ok := SoundFor(game.EvtSpecialExpired); ok {
		t.Error("Expiry should be silent")
	}
}

func TestSubscribePlaysOnDispatch(t *testing.T) {
	bus := core.NewEventBus()
	sink := &recordingSink{}
	Subscribe(bus, sink)

	bus.Emit(core.Event{Type: game.EvtFoodEaten})
	bus.Emit(core.Event{Type: game.EvtSpecialExpired})
	bus.Emit(core.Event{Type: game.EvtGameOver})
	bus.Dispatch()

	if len(sink.played) != 2 || sink.played[0] != SndEat || sink.played[1] != SndGameOver {
		t.Errorf("Unexpected sounds %v", sink.played)
	}
}

func TestToneStreamerIsFinite(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := Tone{Freq: 440, Duration: 10 * time.Millisecond, Decay: 3}
	s := NewToneStreamer(tone, rate)

	total := 0
	buf := make([][2]float64, 64)
	for i := 0; i < 100; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 {
				t.Fatalf("Sample out of range: %f", buf[j][0])
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if total != rate.N(tone.Duration) {
		t.Errorf("Expected %d samples, got %d", rate.N(tone.Duration), total)
	}
	if s.Err() != nil {
		t.Errorf("Expected no error, got %v", s.Err())
	}
}

func TestPCM16Length(t *testing.T) {
	buf := PCM16(Tone{Freq: 880, Duration: 100 * time.Millisecond, Decay: 3}, 44100, 1)
	if len(buf) != 4410*4 {
		t.Errorf("Expected %d bytes, got %d", 4410*4, len(buf))
	}

	silent := PCM16(Tone{Freq: 880, Duration: 10 * time.Millisecond}, 44100, 0)
	for i, b := range silent {
		if b != 0 {
			t.Fatalf("Expected silence at zero gain, byte %d = %d", i, b)
		}
	}
}

func TestVolumeGainClamps(t *testing.T) {
	if g := (Volume{Master: 2, SFX: 0.5}).Gain(); g != 0.5 {
		t.Errorf("Expected 0.5, got %f", g)
	}
	if g := (Volume{Master: -1, SFX: 1}).Gain(); g != 0 {
		t.Errorf("Expected 0, got %f", g)
	}
}

func TestBeepManagerSilentBeforeInit(t *testing.T) {
	bm := NewBeepManager(DefaultVolume())
	bm.Play(SndEat)
	if bm.mixer.Len() != 0 {
		t.Errorf("Expected empty mixer before Initialize, got %d", bm.mixer.Len())
	}
	if err := bm.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
