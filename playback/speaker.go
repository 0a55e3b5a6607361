package playback

import (
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/jsphweid/diatonicpad/synth"
	"github.com/jsphweid/diatonicpad/voice"
	"github.com/pkg/errors"
)

// Paths maps an asset path to a file on disk. *library.Library implements it.
type Paths interface {
	Path(assetPath string) string
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Speaker plays assets through the default audio device.
type Speaker struct {
	paths      Paths
	sampleRate beep.SampleRate
}

func NewSpeaker(paths Paths) (*Speaker, error) {
	sr := beep.SampleRate(synth.SampleRate)
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sr, sr.N(time.Second/20))
	})
	if speakerErr != nil {
		return nil, errors.Wrap(speakerErr, "initializing speaker")
	}
	return &Speaker{paths: paths, sampleRate: sr}, nil
}

type speakerHandle struct {
	ctrl *beep.Ctrl
}

// Stop detaches the stream; the sequence then runs its completion callback.
func (h *speakerHandle) Stop() {
	speaker.Lock()
	h.ctrl.Streamer = nil
	speaker.Unlock()
}

func (s *Speaker) Play(req voice.PlayRequest) (voice.Handle, error) {
	f, err := os.Open(s.paths.Path(req.AssetPath))
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "decoding %v", req.AssetPath)
	}

	var src beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		src = beep.Resample(4, format.SampleRate, s.sampleRate, streamer)
	}
	ctrl := &beep.Ctrl{Streamer: &effects.Gain{Streamer: src, Gain: req.Gain - 1}}

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		streamer.Close()
		req.Done()
	})))
	return &speakerHandle{ctrl: ctrl}, nil
}

// Close silences everything still playing.
func (s *Speaker) Close() {
	speaker.Clear()
}
