package ranker_test

import (
	"context"
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"github.com/Ahmed-Sermani/go-pagerank/ranker/mocks"
	"github.com/golang/mock/gomock"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SamplerTestSuite))

type SamplerTestSuite struct{}

func (s *SamplerTestSuite) TestSingleSampleReturnsStartPage(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	// No page is drawn after the start page so Float64 must not be called.
	src := mocks.NewMockRandSource(ctrl)
	src.EXPECT().Intn(2).Return(1)

	ranks, err := ranker.Sample(corpus.Corpus{"a": {"b": {}}, "b": {"a": {}}}, 0.85, 1, src)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.DeepEquals, ranker.Distribution{"b": 1.0})
}

func (s *SamplerTestSuite) TestScriptedWalk(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	// With a damping factor of 1 the surfer always follows links so
	// page "c" is never reachable, even for draws at the edges of [0, 1).
	cp := corpus.Corpus{
		"a": {"b": {}},
		"b": {"a": {}},
		"c": {"a": {}},
	}
	src := mocks.NewMockRandSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Intn(3).Return(0),
		src.EXPECT().Float64().Return(0.0),
		src.EXPECT().Float64().Return(0.9999999999999999),
		src.EXPECT().Float64().Return(0.5),
		src.EXPECT().Float64().Return(0.0),
	)

	ranks, err := ranker.Sample(cp, 1.0, 5, src)
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.DeepEquals, ranker.Distribution{"a": 0.6, "b": 0.4})
}

func (s *SamplerTestSuite) TestDrawIsWeighted(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	// Transition from "a" with damping 0.5 is {a: 0.25, b: 0.75}; any draw
	// below 0.25 must land on "a" and anything above on "b".
	cp := corpus.Corpus{"a": {"b": {}}, "b": {}}
	src := mocks.NewMockRandSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Intn(2).Return(0),
		src.EXPECT().Float64().Return(0.2),
		src.EXPECT().Float64().Return(0.3),
	)

	ranks, err := ranker.Sample(cp, 0.5, 3, src)
	c.Assert(err, gc.IsNil)
	c.Assert(math.Abs(ranks["a"]-2.0/3.0) < 1e-12, gc.Equals, true, gc.Commentf("got %v", ranks))
	c.Assert(math.Abs(ranks["b"]-1.0/3.0) < 1e-12, gc.Equals, true, gc.Commentf("got %v", ranks))
}

func (s *SamplerTestSuite) TestSingletonCorpus(c *gc.C) {
	ranks, err := ranker.Sample(corpus.Corpus{"a": {}}, 0.85, 100, ranker.NewRandSource(1))
	c.Assert(err, gc.IsNil)
	c.Assert(ranks, gc.DeepEquals, ranker.Distribution{"a": 1.0})
}

func (s *SamplerTestSuite) TestSamplesFormDistribution(c *gc.C) {
	for name, cp := range testCorpora() {
		c.Logf("corpus %q", name)
		ranks, err := ranker.Sample(cp, 0.85, 2000, ranker.NewRandSource(42))
		c.Assert(err, gc.IsNil)
		assertDistribution(c, ranks)
		for page := range ranks {
			_, exists := cp[page]
			c.Assert(exists, gc.Equals, true, gc.Commentf("unexpected page %q", page))
		}
	}
}

func (s *SamplerTestSuite) TestSeededSamplingIsReproducible(c *gc.C) {
	r1, err := ranker.Sample(corpus0(), 0.85, 3000, ranker.NewRandSource(99))
	c.Assert(err, gc.IsNil)
	r2, err := ranker.Sample(corpus0(), 0.85, 3000, ranker.NewRandSource(99))
	c.Assert(err, gc.IsNil)
	c.Assert(r1, gc.DeepEquals, r2)
}

func (s *SamplerTestSuite) TestSamplingApproachesIteratedRanks(c *gc.C) {
	exp, err := ranker.Iterate(context.TODO(), corpus0(), 0.85, 1e-9)
	c.Assert(err, gc.IsNil)

	avgDistance := func(n int) float64 {
		var total float64
		const trials = 5
		for seed := int64(1); seed <= trials; seed++ {
			ranks, err := ranker.Sample(corpus0(), 0.85, n, ranker.NewRandSource(seed))
			c.Assert(err, gc.IsNil)
			total += ranks.Distance(exp)
		}
		return total / trials
	}

	small, large := avgDistance(50), avgDistance(20000)
	c.Logf("avg L1 distance: n=50 -> %f, n=20000 -> %f", small, large)
	c.Assert(large < small, gc.Equals, true, gc.Commentf("expected distance to shrink; got %f -> %f", small, large))
	c.Assert(large < 0.05, gc.Equals, true, gc.Commentf("expected sampled ranks within 0.05 of iterated ranks; got %f", large))
}

func (s *SamplerTestSuite) TestErrors(c *gc.C) {
	for _, n := range []int{0, -3} {
		_, err := ranker.Sample(corpus0(), 0.85, n, ranker.NewRandSource(1))
		c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true, gc.Commentf("n = %d", n))
	}

	_, err := ranker.Sample(corpus0(), 0, 10, ranker.NewRandSource(1))
	c.Assert(xerrors.Is(err, ranker.ErrInvalidParameter), gc.Equals, true)

	_, err = ranker.Sample(corpus.New(), 0.85, 10, ranker.NewRandSource(1))
	c.Assert(xerrors.Is(err, corpus.ErrEmptyCorpus), gc.Equals, true)

	_, err = ranker.Sample(corpus.Corpus{"a": {"a": {}}}, 0.85, 10, ranker.NewRandSource(1))
	c.Assert(xerrors.Is(err, corpus.ErrInvalidCorpus), gc.Equals, true)
}
