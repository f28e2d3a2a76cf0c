package sonify

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
)

const (
	BaseFrequency = 660.0 // Hz, pitch of a freshly emitted wavefront
	MasterGain    = 0.8
)

// Voice is one sounding wavefront. Key identifies the wavefront across frames
// so its oscillator phase stays continuous.
type Voice struct {
	Key       int
	Frequency float64
	Gain      float64
}

// VoicesFor maps wavefronts to voices: pitch falls as the radius grows and the
// gain follows the fade alpha.
func VoicesFor(waves []physics.WavefrontView) []Voice {
	voices := make([]Voice, len(waves))
	for i, w := range waves {
		voices[i] = Voice{
			Key:       w.EmittedAt,
			Frequency: BaseFrequency / (1 + w.Radius),
			Gain:      w.FadeAlpha,
		}
	}
	return voices
}

// Synth is a beep.Streamer that plays the current voice set as summed sines.
// SetVoices may be called while the speaker is streaming.
type Synth struct {
	sampleRate beep.SampleRate

	mu     sync.Mutex
	voices []Voice
	phases map[int]float64
}

func NewSynth(sampleRate beep.SampleRate) *Synth {
	return &Synth{
		sampleRate: sampleRate,
		phases:     map[int]float64{},
	}
}

// SetVoices replaces the sounding voices. Phases of voices that are gone are
// forgotten.
func (s *Synth) SetVoices(voices []Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.voices = append(s.voices[:0], voices...)
	live := make(map[int]bool, len(voices))
	for _, v := range voices {
		live[v.Key] = true
	}
	for key := range s.phases {
		if !live[key] {
			delete(s.phases, key)
		}
	}
}

func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range samples {
		var mix float64
		for _, v := range s.voices {
			phase := s.phases[v.Key]
			mix += v.Gain * math.Sin(phase)
			phase += 2 * math.Pi * v.Frequency / float64(s.sampleRate)
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
			s.phases[v.Key] = phase
		}
		mix = math.Max(-1, math.Min(1, mix*MasterGain))
		samples[i] = [2]float64{mix, mix}
	}
	return len(samples), true
}

func (s *Synth) Err() error { return nil }
