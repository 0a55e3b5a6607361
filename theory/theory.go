package theory

// Quality of a triad built on a scale degree.
type Quality = string

const (
	Major      Quality = "maj"
	Minor      Quality = "min"
	Diminished Quality = "dim"
)

const NumDegrees = 7

var Keys = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var Modes = []string{"Ionian", "Dorian", "Phrygian", "Lydian", "Mixolydian", "Aeolian", "Locrian"}

var DegreeNames = [NumDegrees]string{"I", "ii", "iii", "IV", "V", "vi", "vii°"}

var pitchClasses = map[string]int{
	"C": 0, "Db": 1, "D": 2, "Eb": 3, "E": 4, "F": 5,
	"Gb": 6, "G": 7, "Ab": 8, "A": 9, "Bb": 10, "B": 11,
}

var modeIntervals = map[string][NumDegrees]int{
	"Ionian":     {0, 2, 4, 5, 7, 9, 11},
	"Dorian":     {0, 2, 3, 5, 7, 9, 10},
	"Phrygian":   {0, 1, 3, 5, 7, 8, 10},
	"Lydian":     {0, 2, 4, 6, 7, 9, 11},
	"Mixolydian": {0, 2, 4, 5, 7, 9, 10},
	"Aeolian":    {0, 2, 3, 5, 7, 8, 10},
	"Locrian":    {0, 1, 3, 5, 6, 8, 10},
}

var modeQualities = map[string][NumDegrees]Quality{
	"Ionian":     {Major, Minor, Minor, Major, Major, Minor, Diminished},
	"Dorian":     {Minor, Minor, Major, Major, Minor, Diminished, Major},
	"Phrygian":   {Minor, Major, Major, Minor, Diminished, Major, Minor},
	"Lydian":     {Major, Major, Minor, Diminished, Major, Minor, Minor},
	"Mixolydian": {Major, Minor, Diminished, Major, Minor, Minor, Major},
	"Aeolian":    {Minor, Diminished, Major, Minor, Minor, Major, Major},
	"Locrian":    {Diminished, Major, Minor, Minor, Major, Major, Minor},
}

func IsKey(key string) bool {
	_, ok := pitchClasses[key]
	return ok
}

func IsMode(mode string) bool {
	_, ok := modeIntervals[mode]
	return ok
}

// PitchClass returns the semitone offset of key from C.
func PitchClass(key string) (int, bool) {
	pc, ok := pitchClasses[key]
	return pc, ok
}

// Intervals returns the semitone offsets from the tonic for each degree of mode.
func Intervals(mode string) ([NumDegrees]int, bool) {
	iv, ok := modeIntervals[mode]
	return iv, ok
}

// Qualities returns the triad quality born on each degree of mode.
func Qualities(mode string) ([NumDegrees]Quality, bool) {
	q, ok := modeQualities[mode]
	return q, ok
}

// NoteToMidi converts a key and octave to a MIDI note number, C4 = 60.
// The key must be a member of Keys.
func NoteToMidi(key string, octave int) int {
	return 12*(octave+1) + pitchClasses[key]
}
