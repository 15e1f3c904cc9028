package ranker

import (
	"io"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const (
	DefaultDampingFactor        = 0.85
	DefaultSamples              = 10000
	DefaultConvergenceThreshold = 0.001
)

// Config encapsulates the parameters for creating a new Ranker instance.
type Config struct {
	// DampingFactor is the probability that a random surfer will click on
	// one of the outgoing links on the page they are currently visiting
	// instead of teleporting to a random page of the corpus.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// Samples is the number of pages visited by the random surfer when
	// estimating ranks by sampling. If not specified, a default value of
	// 10000 will be used instead.
	Samples int

	// The iterative algorithm keeps running until the rank of every page
	// changes by at most ConvergenceThreshold between two rounds.
	//
	// If not specified, a default value of 0.001 will be used instead.
	ConvergenceThreshold float64

	// Rand drives the random surfer. If not specified, a source seeded
	// from the current time will be used instead.
	Rand RandSource

	// Logger for debug output. Logging is discarded if not specified.
	Logger *logrus.Entry
}

// validate checks whether the ranker configuration is valid and sets the
// default values where required.
func (cfg *Config) validate() error {
	var err error
	if math.IsNaN(cfg.DampingFactor) || cfg.DampingFactor < 0 || cfg.DampingFactor > 1.0 {
		err = multierror.Append(err, xerrors.Errorf("DampingFactor must be in the range (0, 1]: %w", ErrInvalidParameter))
	} else if cfg.DampingFactor == 0 {
		cfg.DampingFactor = DefaultDampingFactor
	}

	if cfg.Samples < 0 {
		err = multierror.Append(err, xerrors.Errorf("Samples must be at least 1: %w", ErrInvalidParameter))
	} else if cfg.Samples == 0 {
		cfg.Samples = DefaultSamples
	}

	if math.IsNaN(cfg.ConvergenceThreshold) || cfg.ConvergenceThreshold < 0 {
		err = multierror.Append(err, xerrors.Errorf("ConvergenceThreshold must be greater than 0: %w", ErrInvalidParameter))
	} else if cfg.ConvergenceThreshold == 0 {
		cfg.ConvergenceThreshold = DefaultConvergenceThreshold
	}

	if cfg.Rand == nil {
		cfg.Rand = newTimeSeededSource()
	}

	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}

	return err
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.Out = io.Discard
	return logrus.NewEntry(l)
}
