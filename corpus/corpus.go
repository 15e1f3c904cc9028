/*
   Models a closed corpus of interlinked pages
*/
package corpus

import (
	"sort"

	"golang.org/x/xerrors"
)

var (
	// ErrEmptyCorpus is returned when a corpus holds no pages.
	ErrEmptyCorpus = xerrors.New("corpus has no pages")

	// ErrInvalidCorpus is returned when a page links to itself or to a page
	// that is not part of the corpus.
	ErrInvalidCorpus = xerrors.New("invalid corpus")
)

// LinkSet is the set of page IDs a page links to.
type LinkSet map[string]struct{}

// Corpus maps each page ID to the set of pages it links to. Every link target
// is expected to be a key of the map and no page links to itself.
//
// A Corpus is read-only once built; none of the methods below mutate it and it
// can be shared between rank computations without synchronization.
type Corpus map[string]LinkSet

// New returns an empty corpus.
func New() Corpus {
	return make(Corpus)
}

// AddPage inserts the page with the given ID, adding links to its out-link
// set. Calling AddPage for an existing page merges the links.
func (c Corpus) AddPage(id string, links ...string) {
	set := c[id]
	if set == nil {
		set = make(LinkSet, len(links))
		c[id] = set
	}
	for _, dst := range links {
		set[dst] = struct{}{}
	}
}

// Pages returns the IDs of all pages in the corpus in ascending order.
func (c Corpus) Pages() []string {
	return sortedKeys(c)
}

// Outlinks returns the out-links of the page in ascending order.
func (c Corpus) Outlinks(id string) []string {
	return sortedKeys(c[id])
}

// Validate checks the invariants of the corpus.
func (c Corpus) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCorpus
	}

	for _, src := range c.Pages() {
		for dst := range c[src] {
			if dst == src {
				return xerrors.Errorf("page %q links to itself: %w", src, ErrInvalidCorpus)
			}
			if _, exists := c[dst]; !exists {
				return xerrors.Errorf("page %q links to unknown page %q: %w", src, dst, ErrInvalidCorpus)
			}
		}
	}
	return nil
}

// Normalized returns a copy of the corpus where every dangling page (a page
// with no out-links) links to every page in the corpus, itself included. The
// receiver is left untouched.
//
// The returned corpus may contain self-links and therefore does not pass
// Validate. It is meant to be consumed by rank computations only.
func (c Corpus) Normalized() Corpus {
	all := make(LinkSet, len(c))
	for id := range c {
		all[id] = struct{}{}
	}

	out := make(Corpus, len(c))
	for id, links := range c {
		src := links
		if len(src) == 0 {
			src = all
		}
		dup := make(LinkSet, len(src))
		for dst := range src {
			dup[dst] = struct{}{}
		}
		out[id] = dup
	}
	return out
}

// Inlinks returns a reverse index that maps each page to the pages linking
// to it. Each slice is sorted in ascending order and pages without in-links
// map to an empty slice.
func (c Corpus) Inlinks() map[string][]string {
	in := make(map[string][]string, len(c))
	for _, src := range c.Pages() {
		if _, exists := in[src]; !exists {
			in[src] = []string{}
		}
		for dst := range c[src] {
			in[dst] = append(in[dst], src)
		}
	}
	// Sources were visited in order so the slices are already sorted.
	return in
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
