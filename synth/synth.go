package synth

import (
	"math"

	"github.com/pkg/errors"
)

const (
	SampleRate = 44100
	BitDepth   = 16
	Channels   = 2

	FadeSeconds     = 0.01
	DefaultDuration = 1.5
)

var ErrInvalidSynthesisInput = errors.New("invalid synthesis input")

// Frame is one stereo sample pair.
type Frame [Channels]int16

// Buffer is 16-bit stereo PCM at SampleRate.
type Buffer struct {
	Frames []Frame
}

func (b *Buffer) Len() int { return len(b.Frames) }

func (b *Buffer) Seconds() float64 {
	return float64(len(b.Frames)) / SampleRate
}

// FadeSamples is the length of each linear fade ramp in frames.
func FadeSamples() int {
	return int(FadeSeconds * SampleRate)
}

// Frequency returns the equal-tempered frequency of a MIDI pitch, A4 = 69 = 440Hz.
func Frequency(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

// FadeGain is the envelope applied to frame i of an n-frame buffer: a ramp
// 0->1 over the first FadeSamples frames and 1->0 over the last.
func FadeGain(i, n int) float64 {
	fade := FadeSamples()
	gain := 1.0
	if i < fade {
		gain = float64(i) / float64(fade-1)
	}
	if k := i - (n - fade); k >= 0 {
		gain = math.Min(gain, 1-float64(k)/float64(fade-1))
	}
	return gain
}

// Synthesize renders pitches as equal-amplitude sine partials normalized by
// the number of pitches, shaped by FadeGain and quantized to int16 with both
// channels identical. The output depends only on the arguments.
func Synthesize(pitches []int, seconds float64) (*Buffer, error) {
	if len(pitches) == 0 {
		return nil, errors.Wrap(ErrInvalidSynthesisInput, "no pitches")
	}
	if !(seconds > 0) {
		return nil, errors.Wrapf(ErrInvalidSynthesisInput, "duration %v", seconds)
	}
	n := int(math.Round(SampleRate * seconds))
	if n < 2*FadeSamples() {
		return nil, errors.Wrapf(ErrInvalidSynthesisInput, "duration %vs shorter than fades", seconds)
	}

	steps := make([]float64, len(pitches))
	for i, p := range pitches {
		steps[i] = 2 * math.Pi * Frequency(p) / SampleRate
	}

	frames := make([]Frame, n)
	scale := 1 / float64(len(pitches))
	for i := range frames {
		var sum float64
		for _, step := range steps {
			sum += math.Sin(step * float64(i))
		}
		v := int16(sum * scale * FadeGain(i, n) * math.MaxInt16)
		frames[i] = Frame{v, v}
	}
	return &Buffer{Frames: frames}, nil
}
