package ranker

import (
	"context"
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// solverState tracks the progress of an iterative rank computation.
type solverState int

const (
	stateInitialized solverState = iota
	stateIterating
	stateConverged
)

func (s solverState) String() string {
	switch s {
	case stateInitialized:
		return "initialized"
	case stateIterating:
		return "iterating"
	case stateConverged:
		return "converged"
	default:
		return "unknown"
	}
}

// Iterate computes the PageRank of each page by repeatedly applying the
// PageRank recurrence
//
//	PR(p) = (1 - d)/N + d * Σ PR(i)/L(i)
//
// to all pages at once, where the sum runs over the pages i linking to p and
// L(i) is the number of links of i. A dangling page is treated as linking to
// every page of the corpus, itself included.
//
// The computation stops once no rank changes by more than threshold between
// two rounds. Convergence is assumed, not proven; it holds for any valid
// corpus when dampingFactor is in (0, 1). The context is checked between
// rounds and can be used to bound the computation.
func Iterate(ctx context.Context, c corpus.Corpus, dampingFactor, threshold float64) (Distribution, error) {
	return iterate(ctx, c, dampingFactor, threshold, discardLogger())
}

func iterate(ctx context.Context, c corpus.Corpus, dampingFactor, threshold float64, logger *logrus.Entry) (Distribution, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := checkDampingFactor(dampingFactor); err != nil {
		return nil, err
	}
	if math.IsNaN(threshold) || threshold <= 0 {
		return nil, xerrors.Errorf("convergence threshold %v must be greater than 0: %w", threshold, ErrInvalidParameter)
	}

	var (
		norm     = c.Normalized()
		inlinks  = norm.Inlinks()
		pages    = norm.Pages()
		numPages = float64(len(pages))
		jump     = (1.0 - dampingFactor) / numPages
		ranks    = make(Distribution, len(pages))
		state    = stateInitialized
	)

	outDegree := make(map[string]float64, len(pages))
	for _, page := range pages {
		outDegree[page] = float64(len(norm[page]))
		ranks[page] = 1.0 / numPages
	}

	for round := 1; ; round++ {
		select {
		case <-ctx.Done():
			return nil, xerrors.Errorf("rank iteration stopped while %s after %d rounds: %w", state, round-1, ctx.Err())
		default:
		}
		state = stateIterating

		// Every new rank is derived from the previous round's snapshot;
		// ranks is only replaced once the full round is computed.
		next := make(Distribution, len(pages))
		converged := true
		for _, page := range pages {
			var sum float64
			for _, src := range inlinks[page] {
				sum += ranks[src] / outDegree[src]
			}
			next[page] = jump + dampingFactor*sum

			if math.Abs(next[page]-ranks[page]) > threshold {
				converged = false
			}
		}

		ranks = next
		if converged {
			state = stateConverged
		}
		logger.WithFields(logrus.Fields{
			"round": round,
			"state": state,
		}).Debug("rank iteration round completed")

		if state == stateConverged {
			return ranks, nil
		}
	}
}
