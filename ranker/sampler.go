package ranker

import (
	"sort"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
)

// Sample estimates the PageRank of each page by simulating a random surfer
// that visits n pages in total. The surfer starts on a page picked uniformly
// at random and every following page is drawn from the transition
// distribution of the page it is currently on.
//
// The returned rank of a page is the fraction of the n visits that landed on
// it. Pages the surfer never visited are not part of the result.
//
// If src is nil a source seeded from the current time is used.
func Sample(c corpus.Corpus, dampingFactor float64, n int, src RandSource) (Distribution, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := checkDampingFactor(dampingFactor); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, xerrors.Errorf("sample count %d must be at least 1: %w", n, ErrInvalidParameter)
	}
	if src == nil {
		src = newTimeSeededSource()
	}

	s := newSurfer(c, dampingFactor, src)
	visits := make(map[string]int, len(c))
	for i := 0; i < n; i++ {
		visits[s.next()]++
	}

	ranks := make(Distribution, len(visits))
	for page, count := range visits {
		ranks[page] = float64(count) / float64(n)
	}
	return ranks, nil
}

// surfer walks the corpus one page at a time. Pages are kept in ascending
// order so that a seeded source always produces the same walk.
type surfer struct {
	c             corpus.Corpus
	dampingFactor float64
	src           RandSource

	pages   []string
	cdf     []float64
	current string
	started bool
}

func newSurfer(c corpus.Corpus, dampingFactor float64, src RandSource) *surfer {
	pages := c.Pages()
	return &surfer{
		c:             c,
		dampingFactor: dampingFactor,
		src:           src,
		pages:         pages,
		cdf:           make([]float64, len(pages)),
	}
}

// next moves the surfer to its next page and returns it. The first call
// lands on a uniformly chosen page.
func (s *surfer) next() string {
	if !s.started {
		s.started = true
		s.current = s.pages[s.src.Intn(len(s.pages))]
		return s.current
	}

	dist := transition(s.c, s.current, s.dampingFactor)
	for i, page := range s.pages {
		s.cdf[i] = dist[page]
	}
	floats.CumSum(s.cdf, s.cdf)

	s.current = s.pages[s.pick()]
	return s.current
}

// pick draws an index from the cumulative distribution in cdf. An index whose
// probability is zero is never returned.
func (s *surfer) pick() int {
	total := s.cdf[len(s.cdf)-1]
	r := s.src.Float64() * total
	idx := sort.Search(len(s.cdf), func(i int) bool { return s.cdf[i] > r })
	if idx < len(s.cdf) {
		return idx
	}

	// r was rounded up to the total; fall back to the last page that has
	// any probability mass.
	idx = len(s.cdf) - 1
	for idx > 0 && s.cdf[idx] == s.cdf[idx-1] {
		idx--
	}
	return idx
}
