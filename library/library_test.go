package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/diatonicpad/chord"
	"github.com/jsphweid/diatonicpad/synth"
	"github.com/stretchr/testify/assert"
)

func sample(t *testing.T) *synth.Buffer {
	b, err := synth.Synthesize([]int{60, 64, 67}, 0.05)
	assert.NoError(t, err)
	return b
}

func TestWriteThenRead(t *testing.T) {
	lib := New(t.TempDir())
	assert := assert.New(t)
	assert.False(lib.Exists(chord.DefaultAssetPath))

	written, err := lib.Write(chord.DefaultAssetPath, sample(t), false)
	assert.NoError(err)
	assert.True(written)
	assert.True(lib.Exists(chord.DefaultAssetPath))

	got, err := lib.Read(chord.DefaultAssetPath)
	assert.NoError(err)
	assert.Equal(sample(t).Frames, got.Frames)
}

func TestWriteSkipsExistingUnlessOverwrite(t *testing.T) {
	lib := New(t.TempDir())
	path := "audio/x.wav"
	_, err := lib.Write(path, sample(t), false)
	assert.NoError(t, err)

	written, err := lib.Write(path, sample(t), false)
	assert.NoError(t, err)
	assert.False(t, written)

	written, err = lib.Write(path, sample(t), true)
	assert.NoError(t, err)
	assert.True(t, written)
}

func TestListIgnoresStrayFiles(t *testing.T) {
	lib := New(t.TempDir())
	lib.Write("audio/b.wav", sample(t), false)
	lib.Write("audio/a.wav", sample(t), false)
	os.WriteFile(lib.Path("audio/notes.txt"), []byte("hi"), 0644)
	os.WriteFile(lib.Path("audio/.tmp-1.wav"), []byte("partial"), 0644)

	paths, err := lib.List()
	assert.NoError(t, err)
	assert.Equal(t, []string{"audio/a.wav", "audio/b.wav"}, paths)
}

func TestListEmptyLibrary(t *testing.T) {
	paths, err := New(t.TempDir()).List()
	assert.NoError(t, err)
	assert.Empty(t, paths)
}

func TestReadMissing(t *testing.T) {
	_, err := New(t.TempDir()).Read("audio/none.wav")
	assert.ErrorIs(t, err, ErrMissingAsset)
}

func TestExportCopiesDefaultAsset(t *testing.T) {
	lib := New(t.TempDir())
	dst := filepath.Join(t.TempDir(), "out", "export.wav")

	assert.ErrorIs(t, lib.Export(dst), ErrMissingAsset)

	lib.Write(chord.DefaultAssetPath, sample(t), false)
	assert.NoError(t, lib.Export(dst))

	want, _ := os.ReadFile(lib.Path(chord.DefaultAssetPath))
	got, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}
