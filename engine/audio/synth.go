package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// sample returns the tone value at t seconds, in [-1,1]
func (t Tone) sample(sec float64) float64 {
	return math.Sin(2*math.Pi*t.Freq*sec) * math.Exp(-t.Decay*sec)
}

// PCM16 renders the tone as interleaved 16-bit little-endian stereo
func PCM16(t Tone, sampleRate int, gain float64) []byte {
	n := int(float64(sampleRate) * t.Duration.Seconds())
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := int16(t.sample(float64(i)/float64(sampleRate)) * 6000 * clamp01(gain))
		for ch := 0; ch < 2; ch++ {
			idx := i*4 + ch*2
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
		}
	}
	return buf
}

// toneStreamer plays a Tone through beep
type toneStreamer struct {
	tone     Tone
	rate     beep.SampleRate
	position int
	length   int
}

// NewToneStreamer returns a finite streamer for the tone
func NewToneStreamer(t Tone, rate beep.SampleRate) beep.Streamer {
	return &toneStreamer{
		tone:   t,
		rate:   rate,
		length: rate.N(t.Duration),
	}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		val := s.tone.sample(float64(s.position) / float64(s.rate))
		samples[i][0] = val
		samples[i][1] = val
		s.position++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }
