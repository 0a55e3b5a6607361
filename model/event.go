package model

import (
	"time"

	"github.com/google/uuid"
)

// ChordEvent is one triggered chord as recorded in history.
type ChordEvent struct {
	Degree        string   `json:"degree"`
	Quality       string   `json:"quality"`
	Tension       Tensions `json:"tension"`
	Inversion     string   `json:"inversion"`
	Voicing       string   `json:"voicing"`
	DurationBeats float64  `json:"duration_beats"`
	Sustain       bool     `json:"sustain"`
}

type Progression struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	KeySetting *MusicalContext `json:"key_setting"`
	Events     []ChordEvent    `json:"events"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func NewProgression(ctx MusicalContext) *Progression {
	now := time.Now()
	ks := ctx.Clone()
	return &Progression{
		ID:         uuid.New().String(),
		Name:       "Untitled",
		KeySetting: &ks,
		Events:     []ChordEvent{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
