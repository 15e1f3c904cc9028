/*
   Turns a directory of interlinked html documents into a corpus
*/

package crawler

import (
	"context"
	"io"
	"io/fs"
	"runtime"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
	"github.com/Ahmed-Sermani/go-pagerank/pipeline/runners"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Crawler implements a document-ingestion pipeline consisting of the
// following stages:
//
// - Given a page ID, read the document contents from the file system.
// - Extract the links found in anchor tags of the document.
// - Extract the document title.
//
// Links to documents outside of the crawled directory and self-links are
// dropped, so the resulting corpus can be handed to the ranker as is.
type Crawler struct {
	cfg      Config
	pipeline *pipeline.Pipeline
}

// Config encapsulates the settings for a Crawler instance.
type Config struct {
	// FS holds the documents to crawl. Only html files at its root are
	// considered.
	FS fs.FS

	// The number of workers reading documents concurrently. If not
	// specified, the number of CPUs will be used instead.
	ReadWorkers int

	// Logger for crawler progress. Logging is discarded if not specified.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.FS == nil {
		err = multierror.Append(err, xerrors.New("document file system has not been provided"))
	}
	if cfg.ReadWorkers < 0 {
		err = multierror.Append(err, xerrors.New("ReadWorkers must not be negative"))
	} else if cfg.ReadWorkers == 0 {
		cfg.ReadWorkers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Result is the outcome of a crawl.
type Result struct {
	Corpus corpus.Corpus

	// Titles maps page IDs to the text of their title element. Pages
	// without a title are not present.
	Titles map[string]string
}

// NewCrawler returns a Crawler for the documents in cfg.FS.
func NewCrawler(cfg Config) (*Crawler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("crawler config validation failed: %w", err)
	}
	return &Crawler{
		cfg:      cfg,
		pipeline: assembleCrawlerPipeline(cfg),
	}, nil
}

// Crawl reads every document and builds the corpus. Calls to Crawl block
// until all documents have been processed, an error occurs or the context is
// cancelled. No partial result is returned on error or cancellation.
// It's safe to be called by concurrent goroutines.
func (c *Crawler) Crawl(ctx context.Context) (*Result, error) {
	names, err := htmlFiles(c.cfg.FS)
	if err != nil {
		return nil, err
	}

	sink := newCorpusSink()
	if err := c.pipeline.Process(ctx, &fileSource{names: names}, sink); err != nil {
		return nil, xerrors.Errorf("crawl documents: %w", err)
	}
	// The pipeline stops quietly on cancellation; whatever reached the sink
	// by then is incomplete.
	if err := ctx.Err(); err != nil {
		return nil, xerrors.Errorf("crawl documents: %w", err)
	}

	res := sink.result()
	c.cfg.Logger.WithFields(logrus.Fields{
		"documents": len(names),
		"pages":     len(res.Corpus),
	}).Debug("crawled documents")
	return res, nil
}

func assembleCrawlerPipeline(cfg Config) *pipeline.Pipeline {
	return pipeline.New(
		runners.FixedWorkerPool(
			newFileFetcher(cfg.FS),
			cfg.ReadWorkers,
		),
		runners.FIFO(newLinkExtractor()),
		runners.FIFO(newTitleExtractor()),
	)
}

// htmlFiles lists the html documents at the root of fsys in lexical order.
func htmlFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, xerrors.Errorf("list documents: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isHTML(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
