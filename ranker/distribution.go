package ranker

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Distribution maps page IDs to non-negative weights. Every Distribution
// returned by this package sums up to 1.
type Distribution map[string]float64

// Pages returns the pages of the distribution in ascending order.
func (d Distribution) Pages() []string {
	pages := make([]string, 0, len(d))
	for page := range d {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// Sum returns the total weight of the distribution.
func (d Distribution) Sum() float64 {
	return floats.Sum(d.values(d.Pages()))
}

// Distance returns the L1 distance between two distributions. Pages missing
// from one side count as having zero weight.
func (d Distribution) Distance(other Distribution) float64 {
	union := make(Distribution, len(d)+len(other))
	for page := range d {
		union[page] = 0
	}
	for page := range other {
		union[page] = 0
	}
	pages := union.Pages()
	return floats.Distance(d.values(pages), other.values(pages), 1)
}

func (d Distribution) values(pages []string) []float64 {
	vals := make([]float64, len(pages))
	for i, page := range pages {
		vals[i] = d[page]
	}
	return vals
}
