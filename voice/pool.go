package voice

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/diatonicpad/chord"
	"github.com/jsphweid/diatonicpad/constants"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/util"
	"github.com/pkg/errors"
)

var ErrNoAudioAvailable = errors.New("no audio available")

type Assets interface {
	Exists(assetPath string) bool
}

// PlayRequest asks the platform to start playing an asset right away.
type PlayRequest struct {
	VoiceID   string
	AssetPath string
	Gain      float64

	// Done signals that playback ended, naturally or by Stop. It must not
	// block and may be called from any goroutine.
	Done func()
}

type Handle interface {
	Stop()
}

// Player is the platform playback primitive.
type Player interface {
	Play(req PlayRequest) (Handle, error)
}

// Completion reports that the platform finished playing a voice. Deliver it
// to Pool.Complete from the goroutine that owns the pool.
type Completion struct {
	VoiceID string
}

type entry struct {
	voice  model.Voice
	handle Handle
}

// Pool tracks the voices currently sounding. At most constants.MaxVoices
// play at once; triggering beyond that stops the oldest one.
//
// Pool is not safe for concurrent use. Completions arrive on a channel so
// the owner can apply them on its own goroutine.
type Pool struct {
	player      Player
	assets      Assets
	fallback    string
	capacity    int
	voices      []*entry
	completions chan Completion
	closed      chan struct{}
	closeOnce   sync.Once
	newID       func() string
}

type Option func(*Pool)

// WithFallback sets the asset played when a requested one is missing. It
// defaults to chord.DefaultAssetPath; an empty path disables the fallback.
func WithFallback(assetPath string) Option {
	return func(p *Pool) {
		p.fallback = assetPath
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(p *Pool) {
		p.newID = newID
	}
}

func NewPool(player Player, assets Assets, opts ...Option) *Pool {
	p := &Pool{
		player:      player,
		assets:      assets,
		fallback:    chord.DefaultAssetPath,
		capacity:    constants.MaxVoices,
		completions: make(chan Completion, 4*constants.MaxVoices),
		closed:      make(chan struct{}),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pool) Completions() <-chan Completion {
	return p.completions
}

// Trigger starts assetPath, or the fallback asset if it is missing, and
// returns the new voice id. Eviction of the oldest voice happens before
// Trigger returns.
func (p *Pool) Trigger(assetPath string, gain float64) (string, error) {
	path := assetPath
	if !p.assets.Exists(path) {
		log.Printf("Warning: audio file not found: %v", path)
		path = p.fallback
		if path == "" || !p.assets.Exists(path) {
			return "", errors.Wrapf(ErrNoAudioAvailable, "missing %v", assetPath)
		}
	}

	v := model.Voice{
		ID:        p.newID(),
		AssetPath: path,
		Gain:      util.Clamp(gain, 0, 1),
		State:     model.VoicePlaying,
	}
	h, err := p.player.Play(PlayRequest{
		VoiceID:   v.ID,
		AssetPath: v.AssetPath,
		Gain:      v.Gain,
		Done:      p.notifier(v.ID),
	})
	if err != nil {
		return "", errors.Wrapf(err, "playing %v", path)
	}

	p.voices = append(p.voices, &entry{voice: v, handle: h})
	for len(p.voices) > p.capacity {
		p.remove(0, model.VoiceStopped)
	}
	return v.ID, nil
}

func (p *Pool) notifier(id string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			c := Completion{VoiceID: id}
			select {
			case <-p.closed:
			case p.completions <- c:
			default:
				go func() {
					select {
					case p.completions <- c:
					case <-p.closed:
					}
				}()
			}
		})
	}
}

func (p *Pool) index(id string) int {
	for i, e := range p.voices {
		if e.voice.ID == id {
			return i
		}
	}
	return -1
}

func (p *Pool) remove(i int, state model.VoiceState) model.Voice {
	e := p.voices[i]
	p.voices = append(p.voices[:i], p.voices[i+1:]...)
	e.voice.State = state
	if state == model.VoiceStopped && e.handle != nil {
		e.handle.Stop()
	}
	return e.voice
}

// Stop halts a voice. Unknown or already finished ids are ignored.
func (p *Pool) Stop(id string) (model.Voice, bool) {
	i := p.index(id)
	if i < 0 {
		return model.Voice{}, false
	}
	return p.remove(i, model.VoiceStopped), true
}

// Complete applies a playback completion. Voices that were stopped or
// evicted earlier are ignored.
func (p *Pool) Complete(id string) (model.Voice, bool) {
	i := p.index(id)
	if i < 0 {
		return model.Voice{}, false
	}
	return p.remove(i, model.VoiceCompleted), true
}

func (p *Pool) StopAll() {
	for len(p.voices) > 0 {
		p.remove(0, model.VoiceStopped)
	}
}

// Close stops every voice and drops completions nobody has received yet,
// including any reported later. Call it once the completion reader is gone.
func (p *Pool) Close() {
	p.StopAll()
	p.closeOnce.Do(func() { close(p.closed) })
}

func (p *Pool) Len() int {
	return len(p.voices)
}

// Active returns the playing voices, oldest first.
func (p *Pool) Active() []model.Voice {
	res := make([]model.Voice, len(p.voices))
	for i, e := range p.voices {
		res[i] = e.voice
	}
	return res
}
