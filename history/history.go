package history

import "github.com/jsphweid/diatonicpad/model"

// Stack is a linear undo/redo log of triggered chords. Pushing after an
// undo drops the redo branch.
type Stack struct {
	events []model.ChordEvent
	cursor int
}

func New() *Stack {
	return &Stack{cursor: -1}
}

func (s *Stack) Push(evt model.ChordEvent) {
	s.events = append(s.events[:s.cursor+1], evt)
	s.cursor = len(s.events) - 1
}

func (s *Stack) Undo() bool {
	if s.cursor < 0 {
		return false
	}
	s.cursor--
	return true
}

func (s *Stack) Redo() bool {
	if s.cursor >= len(s.events)-1 {
		return false
	}
	s.cursor++
	return true
}

// CurrentEvents returns a copy of the events up to and including the cursor.
func (s *Stack) CurrentEvents() []model.ChordEvent {
	res := make([]model.ChordEvent, s.cursor+1)
	copy(res, s.events)
	return res
}

func (s *Stack) Clear() {
	s.events = nil
	s.cursor = -1
}

// Load replaces the history with events, placing the cursor on the last one.
func (s *Stack) Load(events []model.ChordEvent) {
	s.events = append([]model.ChordEvent(nil), events...)
	s.cursor = len(s.events) - 1
}

func (s *Stack) Cursor() int { return s.cursor }

// Len counts every stored event, including the redo branch.
func (s *Stack) Len() int { return len(s.events) }
