package cli

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Config is read from a YAML file. Command line flags win over it.
	Config struct {
		Settings Settings      `yaml:"settings"`
		Convert  ConvertConfig `yaml:"convert"`
	}
	Settings struct {
		LogLevel string `yaml:"logLevel"`
	}
	ConvertConfig struct {
		OutputDirectory        string    `yaml:"outputDirectory"`
		Jobs                   int       `yaml:"jobs"`
		ScaleElectric          bool      `yaml:"scaleElectric"`
		CalibrationDatabase    string    `yaml:"calibrationDatabase"`
		TheoreticalFrequencies []float64 `yaml:"theoreticalFrequencies"`
	}
)

func DefaultConfig() Config {
	return Config{
		Settings: Settings{LogLevel: slog.LevelInfo.String()},
		Convert: ConvertConfig{
			OutputDirectory: ".",
			Jobs:            4,
			// Electric channels stay in the recorded mV unless asked for.
			ScaleElectric: false,
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "LoadConfig error")
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return Config{}, errors.Wrapf(err, "LoadConfig error: %s", path)
	}
	if _, err := ParseLogLevel(config.Settings.LogLevel); err != nil {
		return Config{}, errors.Wrapf(err, "LoadConfig error: %s", path)
	}
	return config, nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// Merge lays the flags given on the command line over config.
func (c ConvertCmd) Merge(config ConvertConfig) ConvertConfig {
	if c.Out != "" {
		config.OutputDirectory = c.Out
	}
	if c.Jobs > 0 {
		config.Jobs = c.Jobs
	}
	if c.ScaleElectric {
		config.ScaleElectric = true
	}
	if c.CalibrationDB != "" {
		config.CalibrationDatabase = c.CalibrationDB
	}
	return config
}
