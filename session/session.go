package session

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/diatonicpad/chord"
	"github.com/jsphweid/diatonicpad/history"
	"github.com/jsphweid/diatonicpad/library"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/store"
	"github.com/jsphweid/diatonicpad/voice"
	"github.com/pkg/errors"
)

const timestampLayout = "20060102_150405"

type Options struct {
	Store     store.Store
	ExportDir string
	// Autosave, when positive, saves the current progression this long
	// after the last history change.
	Autosave time.Duration
}

// Session is the control layer for one performer: the active musical
// context, the sounding voices, the trigger history and the progression
// being edited. All methods are safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	ctx         model.MusicalContext
	pool        *voice.Pool
	history     *history.Stack
	progression *model.Progression
	lib         *library.Library
	store       store.Store
	exportDir   string
	autosave    func(f func())
	now         func() time.Time
}

func New(pool *voice.Pool, lib *library.Library, opts Options) *Session {
	ctx := model.DefaultContext()
	s := &Session{
		ctx:         ctx,
		pool:        pool,
		history:     history.New(),
		progression: model.NewProgression(ctx),
		lib:         lib,
		store:       opts.Store,
		exportDir:   opts.ExportDir,
		now:         time.Now,
	}
	if opts.Autosave > 0 && opts.Store != nil {
		s.autosave = debounce.New(opts.Autosave)
	}
	return s
}

// TriggerResult describes one pad press. Played is false when no sample could
// be found; the chord is still recorded.
type TriggerResult struct {
	Played    bool
	VoiceID   string
	AssetPath string
	Chord     chord.Resolved
	Event     model.ChordEvent
}

func (s *Session) Trigger(degree int, gain float64) (TriggerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := chord.Resolve(s.ctx, degree)
	if err != nil {
		return TriggerResult{}, err
	}
	res := TriggerResult{
		AssetPath: chord.AssetPath(s.ctx, r),
		Chord:     r,
		Event:     r.Event(s.ctx),
	}

	id, err := s.pool.Trigger(res.AssetPath, gain)
	switch {
	case errors.Is(err, voice.ErrNoAudioAvailable):
		log.Printf("Error: no audio samples available: %v", err)
	case err != nil:
		return TriggerResult{}, err
	default:
		res.Played = true
		res.VoiceID = id
	}

	s.history.Push(res.Event)
	s.historyChanged()
	return res, nil
}

// historyChanged must be called with s.mu held.
func (s *Session) historyChanged() {
	s.progression.Events = s.history.CurrentEvents()
	if s.autosave != nil {
		s.autosave(func() {
			if _, err := s.save(context.Background(), ""); err != nil {
				log.Printf("autosave failed: %v", err)
			}
		})
	}
}

func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.history.Undo() {
		return false
	}
	s.historyChanged()
	return true
}

func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.history.Redo() {
		return false
	}
	s.historyChanged()
	return true
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	s.historyChanged()
}

func (s *Session) Events() []model.ChordEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CurrentEvents()
}

func (s *Session) Context() model.MusicalContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Clone()
}

// SetContext replaces the whole musical context after validating it.
func (s *Session) SetContext(ctx model.MusicalContext) error {
	return s.Update(func(c *model.MusicalContext) { *c = ctx.Clone() })
}

// Update applies f to a copy of the context and keeps the result if valid.
func (s *Session) Update(f func(*model.MusicalContext)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.ctx.Clone()
	f(&next)
	next.Tensions = model.NewTensions(next.Tensions...)
	if err := chord.Validate(next); err != nil {
		return err
	}
	s.ctx = next
	return nil
}

func (s *Session) SetTonic(tonic string) error {
	return s.Update(func(c *model.MusicalContext) { c.Tonic = tonic })
}

func (s *Session) SetMode(mode string) error {
	return s.Update(func(c *model.MusicalContext) { c.Mode = mode })
}

func (s *Session) SetVoicing(voicing string) error {
	return s.Update(func(c *model.MusicalContext) { c.Voicing = voicing })
}

func (s *Session) SetInversion(inversion string) error {
	return s.Update(func(c *model.MusicalContext) { c.Inversion = inversion })
}

func (s *Session) SetOctave(octave int) error {
	return s.Update(func(c *model.MusicalContext) { c.OctaveBase = octave })
}

func (s *Session) ToggleTension(n int) error {
	return s.Update(func(c *model.MusicalContext) { c.Tensions = c.Tensions.Toggle(n) })
}

func (s *Session) Voices() []model.Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Active()
}

func (s *Session) StopVoice(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pool.Stop(id)
	return ok
}

func (s *Session) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.StopAll()
}

// Run applies playback completions to the pool until ctx is done.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case c := <-s.pool.Completions():
			s.mu.Lock()
			s.pool.Complete(c.VoiceID)
			s.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// Close stops every voice and closes the pool. The session must not be used
// afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.Close()
}

// Save stores the current progression. An empty name keeps the existing one,
// replacing the initial "Untitled" with a timestamped name.
func (s *Session) Save(ctx context.Context, name string) (*model.Progression, error) {
	if s.store == nil {
		return nil, errors.New("no progression store configured")
	}
	return s.save(ctx, name)
}

func (s *Session) save(ctx context.Context, name string) (*model.Progression, error) {
	s.mu.Lock()
	now := s.now()
	if name != "" {
		s.progression.Name = name
	} else if s.progression.Name == "Untitled" {
		s.progression.Name = "Progression_" + now.Format(timestampLayout)
	}
	ks := s.ctx.Clone()
	s.progression.KeySetting = &ks
	s.progression.Events = s.history.CurrentEvents()
	s.progression.UpdatedAt = now
	snapshot := *s.progression
	s.mu.Unlock()

	if err := s.store.Save(ctx, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Load replaces the context, history and progression with the stored
// progression id. The history cursor is placed on its last event.
func (s *Session) Load(ctx context.Context, id string) (*model.Progression, error) {
	if s.store == nil {
		return nil, errors.New("no progression store configured")
	}
	p, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, s.apply(p)
}

// LoadLatest loads the most recently created progression.
func (s *Session) LoadLatest(ctx context.Context) (*model.Progression, error) {
	if s.store == nil {
		return nil, errors.New("no progression store configured")
	}
	p, err := store.Latest(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return p, s.apply(p)
}

// Progressions lists every stored progression, oldest first.
func (s *Session) Progressions(ctx context.Context) ([]*model.Progression, error) {
	if s.store == nil {
		return nil, errors.New("no progression store configured")
	}
	return s.store.List(ctx)
}

func (s *Session) apply(p *model.Progression) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ctx.Clone()
	if p.KeySetting != nil {
		next = p.KeySetting.Clone()
	}
	if err := chord.Validate(next); err != nil {
		return errors.Wrapf(err, "progression %v", p.ID)
	}
	s.ctx = next
	s.history.Load(p.Events)
	loaded := *p
	loaded.Events = s.history.CurrentEvents()
	s.progression = &loaded
	return nil
}

func (s *Session) Progression() model.Progression {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *s.progression
	p.Events = s.history.CurrentEvents()
	return p
}

// Export writes the placeholder WAV export and returns its path.
func (s *Session) Export() (string, error) {
	dst := filepath.Join(s.exportDir, fmt.Sprintf("export_%s.wav", s.now().Format(timestampLayout)))
	if err := s.lib.Export(dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Status is a one-line summary of the session.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tensions := "none"
	if len(s.ctx.Tensions) > 0 {
		parts := make([]string, len(s.ctx.Tensions))
		for i, t := range s.ctx.Tensions {
			parts[i] = strconv.Itoa(t)
		}
		tensions = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Key: %s %s | Voicing: %s | Tensions: %s | Events: %d",
		s.ctx.Tonic, s.ctx.Mode, s.ctx.Voicing, tensions, s.history.Cursor()+1)
}
