package chord

import (
	"fmt"

	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/theory"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/exp/slices"
)

var ErrInvalidContext = errors.New("invalid context")

// Octaves outside this range push some chord tones past MIDI note 127.
const (
	MinOctave = 0
	MaxOctave = 6
)

func validOctave(octave int) error {
	if octave < MinOctave || octave > MaxOctave {
		return errors.Wrapf(ErrInvalidContext, "octave %d out of range", octave)
	}
	return nil
}

// Resolved is a chord with concrete pitches. It is recomputed on every
// trigger and never stored; history keeps the event derived from it.
type Resolved struct {
	DegreeIndex int
	Degree      string
	Quality     string
	Pitches     []int
}

func seventhInterval(quality theory.Quality) int {
	switch quality {
	case theory.Major:
		return 11
	case theory.Minor:
		return 10
	default:
		return 9
	}
}

// Resolve builds the chord rooted on degree (0-6) of the context's key and mode.
// Only tension 7 changes the pitches; other tensions are carried as metadata.
func Resolve(ctx model.MusicalContext, degree int) (Resolved, error) {
	if degree < 0 || degree >= theory.NumDegrees {
		return Resolved{}, errors.Wrapf(ErrInvalidContext, "degree index %d out of range", degree)
	}
	if !theory.IsKey(ctx.Tonic) {
		return Resolved{}, errors.Wrapf(ErrInvalidContext, "unknown tonic %q", ctx.Tonic)
	}
	if err := validOctave(ctx.OctaveBase); err != nil {
		return Resolved{}, err
	}
	intervals, ok := theory.Intervals(ctx.Mode)
	if !ok {
		return Resolved{}, errors.Wrapf(ErrInvalidContext, "unknown mode %q", ctx.Mode)
	}
	qualities, _ := theory.Qualities(ctx.Mode)

	root := theory.NoteToMidi(ctx.Tonic, ctx.OctaveBase) + intervals[degree]
	quality := qualities[degree]

	third, fifth := 4, 7
	if quality == theory.Minor || quality == theory.Diminished {
		third = 3
	}
	if quality == theory.Diminished {
		fifth = 6
	}
	pitches := []int{root, root + third, root + fifth}

	label := quality
	if ctx.Tensions.Has(7) {
		pitches = append(pitches, root+seventhInterval(quality))
		label += "7"
	}

	return Resolved{
		DegreeIndex: degree,
		Degree:      theory.DegreeNames[degree],
		Quality:     label,
		Pitches:     pitches,
	}, nil
}

// Validate checks every field of ctx against its vocabulary.
func Validate(ctx model.MusicalContext) error {
	if !theory.IsKey(ctx.Tonic) {
		return errors.Wrapf(ErrInvalidContext, "unknown tonic %q", ctx.Tonic)
	}
	if !theory.IsMode(ctx.Mode) {
		return errors.Wrapf(ErrInvalidContext, "unknown mode %q", ctx.Mode)
	}
	if err := validOctave(ctx.OctaveBase); err != nil {
		return err
	}
	if !slices.Contains(model.Voicings, ctx.Voicing) {
		return errors.Wrapf(ErrInvalidContext, "unknown voicing %q", ctx.Voicing)
	}
	if !slices.Contains(model.Inversions, ctx.Inversion) {
		return errors.Wrapf(ErrInvalidContext, "unknown inversion %q", ctx.Inversion)
	}
	for _, t := range ctx.Tensions {
		if !slices.Contains(model.TensionVocabulary, t) {
			return errors.Wrapf(ErrInvalidContext, "unsupported tension %d", t)
		}
	}
	return nil
}

// NoteNames returns the pitch-class name of every pitch, root first.
func (r Resolved) NoteNames() []string {
	res := make([]string, len(r.Pitches))
	for i, p := range r.Pitches {
		res[i] = midi.Note(uint8(p)).Name()
	}
	return res
}

// Name is a short human readable description, e.g. "V: G maj".
func (r Resolved) Name() string {
	if len(r.Pitches) == 0 {
		return r.Degree
	}
	return fmt.Sprintf("%s: %s %s", r.Degree, midi.Note(uint8(r.Pitches[0])).Name(), r.Quality)
}

// Event records r as it was triggered under ctx.
func (r Resolved) Event(ctx model.MusicalContext) model.ChordEvent {
	return model.ChordEvent{
		Degree:        r.Degree,
		Quality:       r.Quality,
		Tension:       model.NewTensions(ctx.Tensions...),
		Inversion:     ctx.Inversion,
		Voicing:       ctx.Voicing,
		DurationBeats: 1,
		Sustain:       false,
	}
}
