package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/config"
	"github.com/Ahmed-Sermani/go-pagerank/service/ranker"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

func newReporter(format string, samples int, w io.Writer) (ranker.Reporter, error) {
	switch format {
	case config.OutputText:
		return &textReporter{w: w, samples: samples}, nil
	case config.OutputYAML:
		return &yamlReporter{w: w, samples: samples}, nil
	default:
		return nil, xerrors.Errorf("unsupported output format: %q", format)
	}
}

// textReporter prints both rank mappings sorted by page name.
type textReporter struct {
	mu      sync.Mutex
	w       io.Writer
	samples int
}

func (r *textReporter) Report(_ context.Context, rep ranker.Report) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PageRank Results from Sampling (n = %d)\n", r.samples)
	for _, page := range rep.Ranks.Sampled.Pages() {
		fmt.Fprintf(&buf, "  %s: %.4f\n", page, rep.Ranks.Sampled[page])
	}
	buf.WriteString("PageRank Results from Iteration\n")
	for _, page := range rep.Ranks.Iterated.Pages() {
		fmt.Fprintf(&buf, "  %s: %.4f\n", page, rep.Ranks.Iterated[page])
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := buf.WriteTo(r.w)
	return err
}

type yamlPage struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title,omitempty"`
	Links    []string `yaml:"links,flow"`
	Sampled  float64  `yaml:"sampled"`
	Iterated float64  `yaml:"iterated"`
}

type yamlReport struct {
	PassID    string     `yaml:"pass_id"`
	StartedAt time.Time  `yaml:"started_at"`
	Duration  string     `yaml:"duration"`
	Samples   int        `yaml:"samples"`
	Pages     []yamlPage `yaml:"pages"`
}

// yamlReporter emits one YAML document per ranking pass.
type yamlReporter struct {
	mu      sync.Mutex
	w       io.Writer
	samples int
}

func (r *yamlReporter) Report(_ context.Context, rep ranker.Report) error {
	doc := yamlReport{
		PassID:    rep.PassID.String(),
		StartedAt: rep.StartedAt.UTC(),
		Duration:  rep.Duration.String(),
		Samples:   r.samples,
	}
	for _, page := range rep.Corpus.Pages() {
		doc.Pages = append(doc.Pages, yamlPage{
			ID:       page,
			Title:    rep.Titles[page],
			Links:    rep.Corpus.Outlinks(page),
			Sampled:  rep.Ranks.Sampled[page],
			Iterated: rep.Ranks.Iterated[page],
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return xerrors.Errorf("encode report: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err = io.WriteString(r.w, "---\n"); err != nil {
		return err
	}
	_, err = r.w.Write(data)
	return err
}
