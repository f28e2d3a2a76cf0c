package sonify

import (
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Format returns the stereo 16-bit format used for audio output.
func Format(sampleRate int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
}

// Score plays a precomputed voice list per frame, one frame lasting
// 1/fps seconds. It ends after the last frame.
type Score struct {
	frames   [][]Voice
	perFrame int
	synth    *Synth

	pos     int
	current int
}

func NewScore(format beep.Format, fps int) *Score {
	return &Score{
		perFrame: format.SampleRate.N(time.Second) / fps,
		synth:    NewSynth(format.SampleRate),
		current:  -1,
	}
}

// Append adds the voices of the next frame.
func (s *Score) Append(voices []Voice) {
	s.frames = append(s.frames, voices)
}

// Len returns the total number of samples in the score.
func (s *Score) Len() int { return len(s.frames) * s.perFrame }

func (s *Score) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) && s.pos < s.Len() {
		frame := s.pos / s.perFrame
		if frame != s.current {
			s.synth.SetVoices(s.frames[frame])
			s.current = frame
		}
		chunk := min(len(samples)-n, (frame+1)*s.perFrame-s.pos)
		s.synth.Stream(samples[n : n+chunk])
		n += chunk
		s.pos += chunk
	}
	return n, n > 0
}

func (s *Score) Err() error { return nil }

// WriteWAV encodes the whole score as a WAV file.
func WriteWAV(w io.WriteSeeker, score *Score, format beep.Format) error {
	if score.Len() == 0 {
		return fmt.Errorf("empty score")
	}
	if err := wav.Encode(w, score, format); err != nil {
		return fmt.Errorf("error encoding wav: %w", err)
	}
	return nil
}
