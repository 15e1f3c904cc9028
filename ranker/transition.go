package ranker

import (
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"golang.org/x/xerrors"
)

// ErrInvalidParameter is returned when a rank computation is invoked with a
// parameter outside of its allowed range.
var ErrInvalidParameter = xerrors.New("invalid parameter")

// Transition returns the probability distribution over the next page the
// random surfer visits when currently on page.
//
// With probability dampingFactor the surfer follows one of the links of page,
// otherwise it jumps to any page of the corpus. A dangling page sends the
// surfer to every page with equal probability and the damping factor does not
// apply.
func Transition(c corpus.Corpus, page string, dampingFactor float64) (Distribution, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, exists := c[page]; !exists {
		return nil, xerrors.Errorf("page %q is not part of the corpus: %w", page, ErrInvalidParameter)
	}
	if err := checkDampingFactor(dampingFactor); err != nil {
		return nil, err
	}
	return transition(c, page, dampingFactor), nil
}

// transition assumes that its arguments have already been validated.
func transition(c corpus.Corpus, page string, dampingFactor float64) Distribution {
	var (
		numPages = float64(len(c))
		links    = c[page]
		dist     = make(Distribution, len(c))
	)

	if len(links) == 0 {
		for id := range c {
			dist[id] = 1.0 / numPages
		}
		return dist
	}

	jump := (1.0 - dampingFactor) / numPages
	for id := range c {
		dist[id] = jump
	}
	follow := dampingFactor / float64(len(links))
	for dst := range links {
		dist[dst] += follow
	}
	return dist
}

func checkDampingFactor(dampingFactor float64) error {
	if math.IsNaN(dampingFactor) || dampingFactor <= 0 || dampingFactor > 1.0 {
		return xerrors.Errorf("damping factor %v must be in the range (0, 1]: %w", dampingFactor, ErrInvalidParameter)
	}
	return nil
}
