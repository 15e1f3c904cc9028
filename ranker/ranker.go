/*
   Implements Google's PageRank algorithm https://en.wikipedia.org/wiki/PageRank
   for small, closed corpora of pages
*/
package ranker

import (
	"context"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

/*
   PageRank works by counting the number and quality of links to
   a page to determine a rough estimate of how important the page is.
   The underlying assumption is that more important pages are likely
   to receive more links from other pages.

   The algorithm utilizes the model of the random surfer. A surfer lands
   on a page of the corpus and from that point on picks one of two options:

       Follow any outgoing link from the current page and navigate to a new page.
       Surfers choose this option with a predefined probability referred to
       as the damping factor.

       Teleport to a page of the corpus picked uniformly at random.

   Surfers on a page without links always teleport.

   PageRank score values reflect the probability that a surfer lands on a
   particular page. Each score is a value in the [0, 1] range and all scores
   add up to 1.

   This package offers two independent estimators for these scores:

       Sample lets a simulated surfer walk the corpus and counts the visits.

       Iterate solves the PageRank recurrence over all pages until the
       scores stop changing.
*/

// Result holds the ranks estimated by both algorithms for the same corpus.
type Result struct {
	Sampled  Distribution
	Iterated Distribution
}

// Ranker estimates PageRank scores using a fixed set of parameters.
//
// A Ranker owns its random source and is therefore not safe for concurrent
// use. Rank computations keep all of their state local to the call.
type Ranker struct {
	cfg Config
}

// NewRanker returns a new Ranker instance using the provided config options.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank ranker config validation failed: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

// Config returns the configuration of the ranker with defaults applied.
func (r *Ranker) Config() Config {
	return r.cfg
}

// Sample estimates the ranks of the corpus pages with a random walk of
// the configured number of samples.
func (r *Ranker) Sample(c corpus.Corpus) (Distribution, error) {
	ranks, err := Sample(c, r.cfg.DampingFactor, r.cfg.Samples, r.cfg.Rand)
	if err != nil {
		return nil, err
	}
	r.cfg.Logger.WithFields(logrus.Fields{
		"pages":   len(c),
		"samples": r.cfg.Samples,
		"visited": len(ranks),
	}).Debug("sampled page ranks")
	return ranks, nil
}

// Iterate computes the ranks of the corpus pages with the iterative
// algorithm.
func (r *Ranker) Iterate(ctx context.Context, c corpus.Corpus) (Distribution, error) {
	return iterate(ctx, c, r.cfg.DampingFactor, r.cfg.ConvergenceThreshold, r.cfg.Logger)
}

// Rank runs both algorithms against the same corpus.
func (r *Ranker) Rank(ctx context.Context, c corpus.Corpus) (Result, error) {
	sampled, err := r.Sample(c)
	if err != nil {
		return Result{}, xerrors.Errorf("sample ranks: %w", err)
	}
	iterated, err := r.Iterate(ctx, c)
	if err != nil {
		return Result{}, xerrors.Errorf("iterate ranks: %w", err)
	}
	return Result{Sampled: sampled, Iterated: iterated}, nil
}
