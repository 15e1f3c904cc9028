package ranker

import (
	"context"
	"io"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/Ahmed-Sermani/go-pagerank/crawler"
	pagerank "github.com/Ahmed-Sermani/go-pagerank/ranker"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/go-pagerank/service/ranker Crawler,Ranker,Reporter

// Crawler is implemented by objects that can build a corpus.
type Crawler interface {
	Crawl(ctx context.Context) (*crawler.Result, error)
}

// Ranker is implemented by objects that estimate the page ranks of a corpus.
type Ranker interface {
	Rank(ctx context.Context, c corpus.Corpus) (pagerank.Result, error)
}

// Reporter is implemented by objects that present the outcome of a ranking
// pass.
type Reporter interface {
	Report(ctx context.Context, r Report) error
}

// Report describes a completed ranking pass.
type Report struct {
	PassID    uuid.UUID
	StartedAt time.Time
	Duration  time.Duration

	Corpus corpus.Corpus
	Titles map[string]string
	Ranks  pagerank.Result
}

// Config encapsulates the settings for configuring the ranker service.
type Config struct {
	// An API for building the corpus to rank.
	Crawler Crawler

	// An API for computing the page ranks.
	Ranker Ranker

	// An API for presenting the results.
	Reporter Reporter

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The time between subsequent ranking passes. A zero value runs a
	// single pass.
	UpdateInterval time.Duration

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Crawler == nil {
		err = multierror.Append(err, xerrors.New("crawler has not been provided"))
	}
	if cfg.Ranker == nil {
		err = multierror.Append(err, xerrors.New("ranker has not been provided"))
	}
	if cfg.Reporter == nil {
		err = multierror.Append(err, xerrors.New("reporter has not been provided"))
	}
	if cfg.UpdateInterval < 0 {
		err = multierror.Append(err, xerrors.New("invalid value for update interval"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Service crawls the corpus, ranks its pages with both algorithms and
// reports the outcome. Every pass recomputes the ranks from scratch.
type Service struct {
	cfg Config
}

// NewService creates a new ranker service instance with the specified config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranker service: config validation failed: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "ranker" }

// Run implements service.Service. The first pass starts right away; when an
// update interval is configured further passes follow until ctx is
// cancelled.
func (svc *Service) Run(ctx context.Context) error {
	for {
		if err := svc.rankPass(ctx); err != nil {
			if ctx.Err() != nil && xerrors.Is(err, context.Canceled) {
				svc.cfg.Logger.WithField("err", err).Info("ranking pass interrupted by shutdown")
				return nil
			}
			return err
		}
		if svc.cfg.UpdateInterval == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-svc.cfg.Clock.After(svc.cfg.UpdateInterval):
		}
	}
}

func (svc *Service) rankPass(ctx context.Context) error {
	var (
		passID = uuid.New()
		logger = svc.cfg.Logger.WithField("pass_id", passID.String())
		start  = svc.cfg.Clock.Now()
	)

	logger.Info("starting ranking pass")
	res, err := svc.cfg.Crawler.Crawl(ctx)
	if err != nil {
		return xerrors.Errorf("crawl corpus: %w", err)
	}

	ranks, err := svc.cfg.Ranker.Rank(ctx, res.Corpus)
	if err != nil {
		return xerrors.Errorf("rank corpus: %w", err)
	}

	report := Report{
		PassID:    passID,
		StartedAt: start,
		Duration:  svc.cfg.Clock.Now().Sub(start),
		Corpus:    res.Corpus,
		Titles:    res.Titles,
		Ranks:     ranks,
	}
	if err = svc.cfg.Reporter.Report(ctx, report); err != nil {
		return xerrors.Errorf("report ranks: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"pages":    len(res.Corpus),
		"duration": report.Duration.String(),
	}).Info("completed ranking pass")
	return nil
}
