package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	VoicingClosed    = "closed"
	VoicingDrop2     = "drop2"
	VoicingRootShell = "root_shell"
)

const (
	InversionRoot   = "root"
	InversionFirst  = "first"
	InversionSecond = "second"
	InversionThird  = "third"
)

var Voicings = []string{VoicingClosed, VoicingDrop2, VoicingRootShell}

var Inversions = []string{InversionRoot, InversionFirst, InversionSecond, InversionThird}

// TensionVocabulary lists the tensions a context may carry. Only 7 changes
// the resolved pitches; the others are carried through naming and history.
var TensionVocabulary = []int{7, 9, 11, 13}

// Tensions is a set of added intervals kept sorted and free of duplicates.
type Tensions []int

func NewTensions(ts ...int) Tensions {
	if len(ts) == 0 {
		return nil
	}
	res := make(Tensions, 0, len(ts))
	for _, t := range ts {
		if !slices.Contains(res, t) {
			res = append(res, t)
		}
	}
	slices.Sort(res)
	return res
}

func (t Tensions) Has(n int) bool {
	return slices.Contains(t, n)
}

// Toggle returns a copy of t with n added, or removed if already present.
func (t Tensions) Toggle(n int) Tensions {
	if !t.Has(n) {
		return NewTensions(append(t.clone(), n)...)
	}
	var res []int
	for _, v := range t {
		if v != n {
			res = append(res, v)
		}
	}
	return NewTensions(res...)
}

// String renders the set dash-joined in ascending order, "" when empty.
func (t Tensions) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "-")
}

func (t Tensions) clone() Tensions {
	if t == nil {
		return nil
	}
	return append(Tensions(nil), t...)
}

func (t Tensions) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(t))
}

func (t *Tensions) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = NewTensions(raw...)
	return nil
}

// MusicalContext is the key setting a chord is resolved against.
type MusicalContext struct {
	Tonic      string   `json:"tonic"`
	Mode       string   `json:"mode"`
	BPM        int      `json:"bpm"`
	OctaveBase int      `json:"octave_base"`
	Voicing    string   `json:"voicing"`
	Inversion  string   `json:"inversion"`
	Tensions   Tensions `json:"tensions"`
}

func DefaultContext() MusicalContext {
	return MusicalContext{
		Tonic:      "C",
		Mode:       "Ionian",
		BPM:        100,
		OctaveBase: 4,
		Voicing:    VoicingDrop2,
		Inversion:  InversionRoot,
	}
}

// Clone returns a copy that shares no memory with c.
func (c MusicalContext) Clone() MusicalContext {
	c.Tensions = c.Tensions.clone()
	return c
}
