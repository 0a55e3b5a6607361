package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)
	assert.Equal([]int{3, 4, 5}, cfg.Generate.Octaves)
	assert.Equal(StoreJSON, cfg.Store.Kind)
}

func TestLoadKeepsDefaultsForAbsentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"addr":":9000","autosaveMillis":250,"generate":{"octaves":[4]}}`), 0644)
	assert.NoError(t, err)

	cfg, err := Load(path)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(":9000", cfg.Addr)
	assert.Equal([]int{4}, cfg.Generate.Octaves)
	assert.Equal(1.5, cfg.Generate.Duration)
	assert.Equal(250*time.Millisecond, cfg.Autosave())
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Playback = PlaybackNull
	cfg.Store.Kind = StoreDynamoDB
	assert.NoError(t, cfg.Save(path))

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{"), 0644)
	_, err := Load(path)
	assert.Error(t, err)
}
