package cmd

import (
	"io/ioutil"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/they4kman/stonesweep/game"
)

const envPrefix = "STONESWEEP_"

// settings are layered: defaults, then the config file, then the environment,
// then any flags set explicitly on the command line
type settings struct {
	Rows            int     `yaml:"rows" env:"ROWS"`
	Cols            int     `yaml:"cols" env:"COLS"`
	MineProbability float64 `yaml:"mine_probability" env:"MINE_PROBABILITY"`
	Seed            int64   `yaml:"seed" env:"SEED"`

	// Fixed mine layout: one line per row, '*' for mines and '.' for safe cells
	Layout string `yaml:"layout"`

	Strategy string `yaml:"strategy" env:"STRATEGY"`
	AutoPlay bool   `yaml:"auto_play" env:"AUTO_PLAY"`
	Plain    bool   `yaml:"plain" env:"PLAIN"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

func defaultSettings() settings {
	defaults := game.NewGameConfig()
	return settings{
		Rows:            defaults.Rows,
		Cols:            defaults.Cols,
		MineProbability: defaults.MineProbability,
		Strategy:        "constraint",
		LogLevel:        logrus.WarnLevel.String(),
	}
}

func (s *settings) loadFile(path string) error {
	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	if err := yaml.UnmarshalStrict(contents, s); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

func (s *settings) loadEnv() error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: envPrefix}); err != nil {
		return errors.Wrap(err, "parse env")
	}
	return nil
}

func (s settings) gameConfig(logger logrus.FieldLogger) game.GameConfig {
	config := game.NewGameConfig()
	config.Rows = s.Rows
	config.Cols = s.Cols
	config.MineProbability = s.MineProbability
	config.Seed = s.Seed
	config.Layout = s.Layout
	config.Logger = logger
	return config
}

func (s settings) logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.Formatter = &logrus.TextFormatter{}
	return logger, nil
}
