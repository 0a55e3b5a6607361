package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteToMidi(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(60, NoteToMidi("C", 4))
	assert.Equal(69, NoteToMidi("A", 4))
	assert.Equal(47, NoteToMidi("B", 2))
	assert.Equal(12, NoteToMidi("C", 0))
}

func TestTablesCoverEveryMode(t *testing.T) {
	for _, mode := range Modes {
		t.Run(mode, func(t *testing.T) {
			assert := assert.New(t)
			intervals, ok := Intervals(mode)
			assert.True(ok)
			assert.Equal(0, intervals[0])
			for i := 1; i < NumDegrees; i++ {
				assert.Greater(intervals[i], intervals[i-1])
				assert.Less(intervals[i], 12)
			}

			qualities, ok := Qualities(mode)
			assert.True(ok)
			dims := 0
			for _, q := range qualities {
				assert.Contains([]Quality{Major, Minor, Diminished}, q)
				if q == Diminished {
					dims++
				}
			}
			assert.Equal(1, dims)
		})
	}
}

// Each mode is a rotation of Ionian.
func TestModesAreRotations(t *testing.T) {
	ionian, _ := Intervals("Ionian")
	ionianQ, _ := Qualities("Ionian")
	for shift, mode := range Modes {
		intervals, _ := Intervals(mode)
		qualities, _ := Qualities(mode)
		for i := 0; i < NumDegrees; i++ {
			j := (i + shift) % NumDegrees
			want := (ionian[j] - ionian[shift] + 12) % 12
			assert.Equal(t, want, intervals[i], "%s degree %d", mode, i)
			assert.Equal(t, ionianQ[j], qualities[i], "%s degree %d", mode, i)
		}
	}
}

func TestVocabulary(t *testing.T) {
	assert := assert.New(t)
	assert.Len(Keys, 12)
	assert.Len(Modes, 7)
	assert.True(IsKey("Eb"))
	assert.False(IsKey("D#"))
	assert.True(IsMode("Locrian"))
	assert.False(IsMode("Ionic"))
	pc, ok := PitchClass("Bb")
	assert.True(ok)
	assert.Equal(10, pc)
}
