package ranker_test

import (
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(TransitionTestSuite))

type TransitionTestSuite struct{}

func (s *TransitionTestSuite) TestLinkedPage(c *gc.C) {
	dist, err := ranker.Transition(corpus0(), "1.html", 0.85)
	c.Assert(err, gc.IsNil)

	exp := map[string]float64{
		"1.html": 0.0375,
		"2.html": 0.8875,
		"3.html": 0.0375,
		"4.html": 0.0375,
	}
	c.Assert(dist, gc.HasLen, len(exp))
	for page, p := range exp {
		c.Assert(math.Abs(dist[page]-p) < 1e-12, gc.Equals, true, gc.Commentf("expected %s to get %f; got %f", page, p, dist[page]))
	}
}

func (s *TransitionTestSuite) TestLinkWeightIsSharedAmongLinks(c *gc.C) {
	dist, err := ranker.Transition(corpus0(), "2.html", 0.5)
	c.Assert(err, gc.IsNil)

	c.Assert(math.Abs(dist["1.html"]-0.375) < 1e-12, gc.Equals, true)
	c.Assert(math.Abs(dist["3.html"]-0.375) < 1e-12, gc.Equals, true)
	c.Assert(math.Abs(dist["2.html"]-0.125) < 1e-12, gc.Equals, true)
	c.Assert(math.Abs(dist["4.html"]-0.125) < 1e-12, gc.Equals, true)
}

func (s *TransitionTestSuite) TestDanglingPageIsUniform(c *gc.C) {
	cp := corpus.Corpus{"a": {}, "b": {"a": {}}, "c": {"a": {}, "b": {}}}
	for _, d := range []float64{0.01, 0.5, 0.85, 1.0} {
		dist, err := ranker.Transition(cp, "a", d)
		c.Assert(err, gc.IsNil)
		c.Assert(dist, gc.HasLen, 3)
		for page, p := range dist {
			c.Assert(math.Abs(p-1.0/3.0) < 1e-12, gc.Equals, true, gc.Commentf("damping %v: expected uniform probability for %s; got %f", d, page, p))
		}
	}
}

func (s *TransitionTestSuite) TestDistributionsSumToOne(c *gc.C) {
	for name, cp := range testCorpora() {
		for _, page := range cp.Pages() {
			for _, d := range []float64{0.15, 0.5, 0.85, 1.0} {
				c.Logf("corpus %q, page %q, damping %v", name, page, d)
				dist, err := ranker.Transition(cp, page, d)
				c.Assert(err, gc.IsNil)
				c.Assert(dist, gc.HasLen, len(cp))
				assertDistribution(c, dist)
			}
		}
	}
}

func (s *TransitionTestSuite) TestErrors(c *gc.C) {
	_, err := ranker.Transition(corpus0(), "missing.html", 0.85)
	c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true)

	for _, d := range []float64{0, -0.5, 1.01, math.NaN()} {
		_, err = ranker.Transition(corpus0(), "1.html", d)
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("damping %v", d))
	}

	_, err = ranker.Transition(corpus.New(), "1.html", 0.85)
	c.Assert(xerrors.Is(err, corpus.ErrEmptyCorpus), gc.Equals, true)

	_, err = ranker.Transition(corpus.Corpus{"a": {"b": {}}}, "a", 0.85)
	c.Assert(xerrors.Is(err, corpus.ErrInvalidCorpus), gc.Equals, true)
}
