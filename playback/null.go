package playback

import (
	"bufio"
	"os"
	"time"

	"github.com/jsphweid/diatonicpad/synth"
	"github.com/jsphweid/diatonicpad/voice"
	"github.com/pkg/errors"
)

// Null plays nothing but reports completion after the asset's duration, for
// headless servers and machines without an audio device.
type Null struct {
	paths Paths
}

func NewNull(paths Paths) *Null {
	return &Null{paths: paths}
}

type nullHandle struct {
	timer *time.Timer
	done  func()
}

func (h *nullHandle) Stop() {
	if h.timer.Stop() {
		h.done()
	}
}

// Duration is the playback length of frames at the library sample rate.
func Duration(frames int) time.Duration {
	return time.Duration(frames) * time.Second / synth.SampleRate
}

// FileDuration reads the WAV header at path and returns its playback length.
func FileDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	frames, err := synth.ReadHeader(bufio.NewReader(f))
	if err != nil {
		return 0, errors.Wrap(err, path)
	}
	return Duration(frames), nil
}

func (n *Null) Play(req voice.PlayRequest) (voice.Handle, error) {
	d, err := FileDuration(n.paths.Path(req.AssetPath))
	if err != nil {
		return nil, err
	}
	t := time.AfterFunc(d, req.Done)
	return &nullHandle{timer: t, done: req.Done}, nil
}
