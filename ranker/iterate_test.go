package ranker_test

import (
	"context"
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(IterateTestSuite))

type IterateTestSuite struct{}

type scenario struct {
	descr     string
	corpus    corpus.Corpus
	expScores map[string]float64
}

func (s *IterateTestSuite) TestCycle(c *gc.C) {
	s.assertScores(c, scenario{
		descr: `
 (A) -> (B) -> (C)
  ^             |
  |             |
  +-------------+

Expect PageRank score to be distributed evenly across the three pages.
`,
		corpus: corpus.Corpus{
			"A": {"B": {}},
			"B": {"C": {}},
			"C": {"A": {}},
		},
		expScores: map[string]float64{
			"A": 1.0 / 3.0,
			"B": 1.0 / 3.0,
			"C": 1.0 / 3.0,
		},
	})
}

func (s *IterateTestSuite) TestBackLink(c *gc.C) {
	s.assertScores(c, scenario{
		descr: `
  +--(A)<-+
  |       |
  V       |
 (B) <-> (C)

Expect B and C to get better score than A due to the back-link between them.
`,
		corpus: corpus.Corpus{
			"A": {"B": {}},
			"B": {"C": {}},
			"C": {"A": {}, "B": {}},
		},
		expScores: map[string]float64{
			"A": 0.2148,
			"B": 0.3974,
			"C": 0.3878,
		},
	})
}

func (s *IterateTestSuite) TestChain(c *gc.C) {
	s.assertScores(c, scenario{
		descr: `
 (A) <-> (B) <-> (C)

Expect A and C to get the same score and B to get the largest one.
`,
		corpus: corpus.Corpus{
			"A": {"B": {}},
			"B": {"A": {}, "C": {}},
			"C": {"B": {}},
		},
		expScores: map[string]float64{
			"A": 0.2568,
			"B": 0.4865,
			"C": 0.2568,
		},
	})
}

func (s *IterateTestSuite) TestDeadEnd(c *gc.C) {
	s.assertScores(c, scenario{
		descr: `
 (A) -> (B) -> (C)

C is a dead-end and is treated as linking to every page, itself included.
`,
		corpus: corpus.Corpus{
			"A": {"B": {}},
			"B": {"C": {}},
			"C": {},
		},
		expScores: map[string]float64{
			"A": 0.1844,
			"B": 0.3412,
			"C": 0.4744,
		},
	})
}

func (s *IterateTestSuite) TestDanglingPageKeepsItsRank(c *gc.C) {
	cp := corpus.Corpus{"A": {}, "B": {"A": {}}}
	ranks, err := ranker.Iterate(context.TODO(), cp, 0.85, 1e-9)
	c.Assert(err, gc.IsNil)
	assertDistribution(c, ranks)

	c.Assert(ranks["A"] > 0 && ranks["B"] > 0, gc.Equals, true)
	c.Assert(ranks["A"] >= ranks["B"], gc.Equals, true, gc.Commentf("got %v", ranks))
	c.Assert(math.Abs(ranks["A"]-0.6491) < 1e-3, gc.Equals, true, gc.Commentf("got %v", ranks))

	// The dangling fix-up must not leak into the caller's corpus.
	c.Assert(cp["A"], gc.HasLen, 0)
}

func (s *IterateTestSuite) TestSymmetricPair(c *gc.C) {
	ranks, err := ranker.Iterate(context.TODO(), corpus.Corpus{"A": {"B": {}}, "B": {"A": {}}}, 0.85, ranker.DefaultConvergenceThreshold)
	c.Assert(err, gc.IsNil)
	c.Assert(math.Abs(ranks["A"]-0.5) < 1e-12, gc.Equals, true, gc.Commentf("got %v", ranks))
	c.Assert(math.Abs(ranks["B"]-0.5) < 1e-12, gc.Equals, true, gc.Commentf("got %v", ranks))
}

func (s *IterateTestSuite) TestSingletonCorpus(c *gc.C) {
	ranks, err := ranker.Iterate(context.TODO(), corpus.Corpus{"A": {}}, 0.85, ranker.DefaultConvergenceThreshold)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.HasLen, 1)
	c.Assert(math.Abs(ranks["A"]-1.0) < 1e-12, gc.Equals, true)
}

func (s *IterateTestSuite) TestDefaultThreshold(c *gc.C) {
	ranks, err := ranker.Iterate(context.TODO(), corpus0(), 0.85, ranker.DefaultConvergenceThreshold)
	c.Assert(err, gc.IsNil)

	exp := map[string]float64{
		"1.html": 0.2199,
		"2.html": 0.4292,
		"3.html": 0.2199,
		"4.html": 0.1310,
	}
	for page, score := range exp {
		c.Assert(math.Abs(ranks[page]-score) < 0.005, gc.Equals, true, gc.Commentf("expected score for %s to be %f ± 0.005; got %f", page, score, ranks[page]))
	}
}

func (s *IterateTestSuite) TestDeterministic(c *gc.C) {
	for name, cp := range testCorpora() {
		c.Logf("corpus %q", name)
		r1, err := ranker.Iterate(context.TODO(), cp, 0.85, ranker.DefaultConvergenceThreshold)
		c.Assert(err, gc.IsNil)
		r2, err := ranker.Iterate(context.TODO(), cp, 0.85, ranker.DefaultConvergenceThreshold)
		c.Assert(err, gc.IsNil)

		c.Assert(r1, gc.DeepEquals, r2)
		c.Assert(r1, gc.HasLen, len(cp))
		assertDistribution(c, r1)
	}
}

func (s *IterateTestSuite) TestCancelledContext(c *gc.C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ranks, err := ranker.Iterate(ctx, corpus0(), 0.85, ranker.DefaultConvergenceThreshold)
	c.Assert(ranks, gc.IsNil)
	c.Assert(xerrors.Is(err, context.Canceled), gc.Equals, true, gc.Commentf("got %v", err))
}

func (s *IterateTestSuite) TestErrors(c *gc.C) {
	for _, threshold := range []float64{0, -0.001, math.NaN()} {
		_, err := ranker.Iterate(context.TODO(), corpus0(), 0.85, threshold)
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("threshold %v", threshold))
	}

	for _, d := range []float64{0, 1.5} {
		_, err := ranker.Iterate(context.TODO(), corpus0(), d, 0.001)
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("damping %v", d))
	}

	_, err := ranker.Iterate(context.TODO(), corpus.New(), 0.85, 0.001)
	c.Assert(xerrors.Is(err, corpus.ErrEmptyCorpus), gc.Equals, true)

	_, err = ranker.Iterate(context.TODO(), corpus.Corpus{"a": {"zz": {}}}, 0.85, 0.001)
	c.Assert(xerrors.Is(err, corpus.ErrInvalidCorpus), gc.Equals, true)
}

func (s *IterateTestSuite) assertScores(c *gc.C, scenario scenario) {
	c.Log(scenario.descr)

	ranks, err := ranker.Iterate(context.TODO(), scenario.corpus, 0.85, 1e-9)
	c.Assert(err, gc.IsNil)
	assertDistribution(c, ranks)

	for id, score := range ranks {
		absDelta := math.Abs(score - scenario.expScores[id])
		c.Assert(absDelta <= 0.001, gc.Equals, true, gc.Commentf("expected score for %v to be %f ± 0.001; got %f (abs. delta %f)", id, scenario.expScores[id], score, absDelta))
	}
}
