package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/config"
	"github.com/Ahmed-Sermani/go-pagerank/crawler"
	pagerank "github.com/Ahmed-Sermani/go-pagerank/ranker"
	"github.com/Ahmed-Sermani/go-pagerank/service"
	"github.com/Ahmed-Sermani/go-pagerank/service/ranker"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var (
	appName = "pagerank"
	appSha  = ""
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.Out = os.Stderr
	rootLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if xerrors.Is(err, flag.ErrHelp) {
			return
		}
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func run(args []string, out io.Writer, logger *logrus.Entry) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logger.Logger.SetLevel(level)

	svcGroup, err := setupServices(cfg, out, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer cancel()

	return svcGroup.Run(ctx)
}

// parseConfig layers explicitly set command-line flags on top of the loaded
// configuration. A positional argument names the corpus directory.
func parseConfig(args []string) (*config.Config, error) {
	var (
		defaults = config.Default()
		flagCfg  config.Config
		fset     = flag.NewFlagSet(appName, flag.ContinueOnError)
	)

	fset.Usage = func() {
		out := fset.Output()
		_, _ = io.WriteString(out, "Usage: "+appName+" [flags] [corpus-dir]\n")
		fset.PrintDefaults()
	}
	configPath := fset.String("config", "", "Path to an optional YAML configuration file")
	fset.StringVar(&flagCfg.CorpusDir, "corpus", "", "The directory with the html documents to rank")
	fset.Float64Var(&flagCfg.DampingFactor, "damping", defaults.DampingFactor, "The probability of following a link instead of teleporting to a random page")
	fset.IntVar(&flagCfg.Samples, "samples", defaults.Samples, "The number of pages visited by the random surfer")
	fset.Float64Var(&flagCfg.ConvergenceThreshold, "threshold", defaults.ConvergenceThreshold, "The maximum per-page rank change at which iteration stops")
	fset.Int64Var(&flagCfg.Seed, "seed", 0, "Seed for the random surfer (0 seeds from the current time)")
	fset.IntVar(&flagCfg.ReadWorkers, "read-workers", defaults.ReadWorkers, "The number of workers reading documents (defaults to number of CPUs)")
	fset.DurationVar(&flagCfg.RefreshInterval, "refresh-interval", 0, "The time between subsequent ranking passes (0 runs a single pass)")
	fset.StringVar(&flagCfg.Output, "output", defaults.Output, "The result format; one of text or yaml")
	fset.StringVar(&flagCfg.LogLevel, "log-level", defaults.LogLevel, "The log level (debug, info, warn, error)")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg.CorpusDir = flagCfg.CorpusDir
		case "damping":
			cfg.DampingFactor = flagCfg.DampingFactor
		case "samples":
			cfg.Samples = flagCfg.Samples
		case "threshold":
			cfg.ConvergenceThreshold = flagCfg.ConvergenceThreshold
		case "seed":
			cfg.Seed = flagCfg.Seed
		case "read-workers":
			cfg.ReadWorkers = flagCfg.ReadWorkers
		case "refresh-interval":
			cfg.RefreshInterval = flagCfg.RefreshInterval
		case "output":
			cfg.Output = flagCfg.Output
		case "log-level":
			cfg.LogLevel = flagCfg.LogLevel
		}
	})
	switch fset.NArg() {
	case 0:
	case 1:
		cfg.CorpusDir = fset.Arg(0)
	default:
		return nil, xerrors.Errorf("expected at most one corpus directory; got %d arguments", fset.NArg())
	}

	if err = cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupServices(cfg *config.Config, out io.Writer, logger *logrus.Entry) (service.ServiceGroup, error) {
	docCrawler, err := crawler.NewCrawler(crawler.Config{
		FS:          os.DirFS(cfg.CorpusDir),
		ReadWorkers: cfg.ReadWorkers,
		Logger:      logger.WithField("component", "crawler"),
	})
	if err != nil {
		return nil, err
	}

	rankerCfg := pagerank.Config{
		DampingFactor:        cfg.DampingFactor,
		Samples:              cfg.Samples,
		ConvergenceThreshold: cfg.ConvergenceThreshold,
		Logger:               logger.WithField("component", "pagerank"),
	}
	if cfg.Seed != 0 {
		rankerCfg.Rand = pagerank.NewRandSource(cfg.Seed)
	}
	pageRanker, err := pagerank.NewRanker(rankerCfg)
	if err != nil {
		return nil, err
	}

	reporter, err := newReporter(cfg.Output, cfg.Samples, out)
	if err != nil {
		return nil, err
	}

	var svcGroup service.ServiceGroup
	svc, err := ranker.NewService(ranker.Config{
		Crawler:        docCrawler,
		Ranker:         pageRanker,
		Reporter:       reporter,
		UpdateInterval: cfg.RefreshInterval,
		Logger:         logger.WithField("service", "ranker"),
	})
	if err != nil {
		return nil, err
	}
	svcGroup = append(svcGroup, svc)

	logger.WithFields(logrus.Fields{
		"corpus_dir":       cfg.CorpusDir,
		"refresh_interval": cfg.RefreshInterval.String(),
		"started_at":       time.Now().Format(time.RFC3339),
	}).Info("services configured")
	return svcGroup, nil
}
