package library

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jsphweid/diatonicpad/chord"
	"github.com/jsphweid/diatonicpad/synth"
	"github.com/jsphweid/diatonicpad/util"
	"github.com/pkg/errors"
)

var ErrMissingAsset = errors.New("asset not found")

// Library is the on-disk sample library. Asset paths are slash separated and
// relative to Root, e.g. "audio/C_Ionian_I_maj_drop2_root__oct4.wav".
type Library struct {
	Root string
}

func New(root string) *Library {
	return &Library{Root: root}
}

func (l *Library) Path(assetPath string) string {
	return filepath.Join(l.Root, filepath.FromSlash(assetPath))
}

func (l *Library) Exists(assetPath string) bool {
	return util.FileExists(l.Path(assetPath))
}

// Write stores b at assetPath. An existing file is left alone unless
// overwrite is set; the returned bool reports whether a file was written.
// Files appear atomically so concurrent readers never see partial samples.
func (l *Library) Write(assetPath string, b *synth.Buffer, overwrite bool) (bool, error) {
	dst := l.Path(assetPath)
	if !overwrite && util.FileExists(dst) {
		return false, nil
	}
	if err := util.EnsureParentDir(dst); err != nil {
		return false, errors.Wrap(err, "creating asset dir")
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*.wav")
	if err != nil {
		return false, errors.Wrap(err, "creating temp asset")
	}
	defer os.Remove(tmp.Name())

	if _, err := b.WriteTo(tmp); err != nil {
		tmp.Close()
		return false, errors.Wrapf(err, "writing %v", assetPath)
	}
	if err := tmp.Close(); err != nil {
		return false, errors.Wrapf(err, "closing %v", assetPath)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return false, errors.Wrapf(err, "renaming into %v", assetPath)
	}
	return true, nil
}

func (l *Library) Read(assetPath string) (*synth.Buffer, error) {
	f, err := os.Open(l.Path(assetPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrMissingAsset, assetPath)
		}
		return nil, err
	}
	defer f.Close()
	return synth.DecodeWAV(f)
}

// List returns the asset paths of every sample in the audio directory.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Path(chord.AssetDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var res []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, chord.AssetExtension) {
			continue
		}
		res = append(res, path.Join(chord.AssetDir, name))
	}
	return res, nil
}

// Export writes a WAV rendition of a progression to dst.
// TODO: render the progression's events; this copies the default asset as a placeholder.
func (l *Library) Export(dst string) error {
	src, err := os.Open(l.Path(chord.DefaultAssetPath))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(ErrMissingAsset, chord.DefaultAssetPath)
		}
		return err
	}
	defer src.Close()

	if err := util.EnsureParentDir(dst); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "creating export")
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrap(err, "copying export")
	}
	return out.Close()
}
