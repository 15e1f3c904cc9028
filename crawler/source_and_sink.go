package crawler

import (
	"context"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
)

// fileSource emits one payload per document name.
type fileSource struct {
	names []string
	idx   int
}

func (s *fileSource) Error() error { return nil }

func (s *fileSource) Next(ctx context.Context) bool {
	if s.idx >= len(s.names) {
		return false
	}
	s.idx++
	return true
}

func (s *fileSource) Payload() pipeline.Payload {
	payload := payloadPool.Get().(*crawlerPayload)
	payload.PageID = s.names[s.idx-1]
	return payload
}

// corpusSink collects the crawled pages. The pipeline drives Consume from a
// single goroutine.
type corpusSink struct {
	pages  corpus.Corpus
	titles map[string]string
}

func newCorpusSink() *corpusSink {
	return &corpusSink{
		pages:  corpus.New(),
		titles: make(map[string]string),
	}
}

func (s *corpusSink) Consume(_ context.Context, p pipeline.Payload) error {
	payload := p.(*crawlerPayload)
	s.pages.AddPage(payload.PageID, payload.Links...)
	if payload.Title != "" {
		s.titles[payload.PageID] = payload.Title
	}
	return nil
}

// result drops links that point outside the crawled corpus.
func (s *corpusSink) result() *Result {
	for _, links := range s.pages {
		for dst := range links {
			if _, exists := s.pages[dst]; !exists {
				delete(links, dst)
			}
		}
	}
	return &Result{Corpus: s.pages, Titles: s.titles}
}
