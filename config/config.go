package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jsphweid/diatonicpad/constants"
	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/synth"
	"github.com/pkg/errors"
)

const (
	StoreJSON     = "json"
	StoreDynamoDB = "dynamodb"

	PlaybackSpeaker = "speaker"
	PlaybackNull    = "null"
)

// GenerateConfig selects the parameter sweep of the sample generator.
type GenerateConfig struct {
	Octaves     []int    `json:"octaves"`
	Voicings    []string `json:"voicings"`
	Inversions  []string `json:"inversions"`
	TensionSets [][]int  `json:"tensionSets"`
	Duration    float64  `json:"duration"`
	Workers     int      `json:"workers,omitempty"`
	Overwrite   bool     `json:"overwrite,omitempty"`
}

type StoreConfig struct {
	Kind           string `json:"kind"`
	DynamoEndpoint string `json:"dynamoEndpoint,omitempty"`
	DynamoRegion   string `json:"dynamoRegion,omitempty"`
	DynamoTable    string `json:"dynamoTable,omitempty"`
}

type Config struct {
	AssetsDir      string         `json:"assetsDir"`
	DataFile       string         `json:"dataFile"`
	ExportDir      string         `json:"exportDir"`
	Addr           string         `json:"addr"`
	Playback       string         `json:"playback"`
	AutosaveMillis int            `json:"autosaveMillis,omitempty"`
	Store          StoreConfig    `json:"store"`
	Generate       GenerateConfig `json:"generate"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		AssetsDir: constants.GetAssetsDir(),
		DataFile:  constants.GetDataFile(),
		ExportDir: constants.GetExportDir(),
		Addr:      ":8080",
		Playback:  PlaybackSpeaker,
		Store: StoreConfig{
			Kind:           StoreJSON,
			DynamoEndpoint: constants.GetDynamoEndpoint(),
			DynamoRegion:   constants.DynamoRegion,
			DynamoTable:    constants.DynamoTable,
		},
		Generate: GenerateConfig{
			Octaves:     []int{3, 4, 5},
			Voicings:    []string{model.VoicingDrop2},
			Inversions:  []string{model.InversionRoot},
			TensionSets: [][]int{{}, {7}},
			Duration:    synth.DefaultDuration,
		},
	}
}

// Autosave is the debounce interval for saving the current progression, 0 when disabled.
func (c *Config) Autosave() time.Duration {
	return time.Duration(c.AutosaveMillis) * time.Millisecond
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config at path, or the default location when path is "".
// A missing file yields DefaultConfig. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config %v", path)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %v", path)
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
