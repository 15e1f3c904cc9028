// Package config assembles the settings of the pagerank command from
// built-in defaults, an optional YAML file and PAGERANK_* environment
// variables, in that order of precedence.
package config

import (
	"io/fs"
	"math"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to the name of every environment variable
// recognized by Load.
const EnvPrefix = "PAGERANK_"

// Supported values for Config.Output.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config holds the settings of the pagerank command.
type Config struct {
	CorpusDir            string        `yaml:"corpus_dir"`
	DampingFactor        float64       `yaml:"damping_factor"`
	Samples              int           `yaml:"samples"`
	ConvergenceThreshold float64       `yaml:"convergence_threshold"`
	Seed                 int64         `yaml:"seed"`
	ReadWorkers          int           `yaml:"read_workers"`
	RefreshInterval      time.Duration `yaml:"refresh_interval"`
	Output               string        `yaml:"output"`
	LogLevel             string        `yaml:"log_level"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		DampingFactor:        ranker.DefaultDampingFactor,
		Samples:              ranker.DefaultSamples,
		ConvergenceThreshold: ranker.DefaultConvergenceThreshold,
		ReadWorkers:          runtime.NumCPU(),
		Output:               OutputText,
		LogLevel:             logrus.InfoLevel.String(),
	}
}

// Load builds a Config starting from the defaults. If path is not empty the
// YAML file it points to overrides the defaults. Environment variables
// override both; they are first populated from envFiles (or ".env" in the
// working directory when none are given) without replacing variables that
// are already set.
//
// Load does not validate the result so callers can apply further overrides
// before calling Validate.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, xerrors.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, xerrors.Errorf("parse config file %q: %w", path, err)
		}
	}

	if err := godotenv.Load(envFiles...); err != nil {
		// A missing default .env file is not an error.
		if len(envFiles) != 0 || !xerrors.Is(err, fs.ErrNotExist) {
			return nil, xerrors.Errorf("load env files: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	var err error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	parse := func(name string, set func(string) error) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		if pErr := set(v); pErr != nil {
			err = multierror.Append(err, xerrors.Errorf("invalid value for %s%s: %w", EnvPrefix, name, pErr))
		}
	}

	str("CORPUS_DIR", &cfg.CorpusDir)
	str("OUTPUT", &cfg.Output)
	str("LOG_LEVEL", &cfg.LogLevel)
	parse("DAMPING", func(v string) (pErr error) {
		cfg.DampingFactor, pErr = strconv.ParseFloat(v, 64)
		return pErr
	})
	parse("SAMPLES", func(v string) (pErr error) {
		cfg.Samples, pErr = strconv.Atoi(v)
		return pErr
	})
	parse("THRESHOLD", func(v string) (pErr error) {
		cfg.ConvergenceThreshold, pErr = strconv.ParseFloat(v, 64)
		return pErr
	})
	parse("SEED", func(v string) (pErr error) {
		cfg.Seed, pErr = strconv.ParseInt(v, 10, 64)
		return pErr
	})
	parse("READ_WORKERS", func(v string) (pErr error) {
		cfg.ReadWorkers, pErr = strconv.Atoi(v)
		return pErr
	})
	parse("REFRESH_INTERVAL", func(v string) (pErr error) {
		cfg.RefreshInterval, pErr = time.ParseDuration(v)
		return pErr
	})
	return err
}

// Validate reports every invalid setting at once.
func (cfg *Config) Validate() error {
	var err error
	if cfg.CorpusDir == "" {
		err = multierror.Append(err, xerrors.New("corpus directory has not been specified"))
	}
	if cfg.DampingFactor <= 0 || cfg.DampingFactor > 1 || math.IsNaN(cfg.DampingFactor) {
		err = multierror.Append(err, xerrors.Errorf("damping factor %v must be in the range (0, 1]", cfg.DampingFactor))
	}
	if cfg.Samples < 1 {
		err = multierror.Append(err, xerrors.Errorf("samples must be at least 1; got %d", cfg.Samples))
	}
	if !(cfg.ConvergenceThreshold > 0) {
		err = multierror.Append(err, xerrors.Errorf("convergence threshold %v must be greater than 0", cfg.ConvergenceThreshold))
	}
	if cfg.ReadWorkers < 1 {
		err = multierror.Append(err, xerrors.Errorf("read workers must be at least 1; got %d", cfg.ReadWorkers))
	}
	if cfg.RefreshInterval < 0 {
		err = multierror.Append(err, xerrors.Errorf("refresh interval %s must not be negative", cfg.RefreshInterval))
	}
	if cfg.Output != OutputText && cfg.Output != OutputYAML {
		err = multierror.Append(err, xerrors.Errorf("unsupported output format %q", cfg.Output))
	}
	if _, lErr := logrus.ParseLevel(cfg.LogLevel); lErr != nil {
		err = multierror.Append(err, xerrors.Errorf("log level: %w", lErr))
	}
	return err
}
