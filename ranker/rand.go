package ranker

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/go-pagerank/ranker RandSource

// RandSource is implemented by pseudo-random number generators that drive
// the random surfer. *rand.Rand satisfies it.
type RandSource interface {
	// Intn returns a number in [0, n).
	Intn(n int) int

	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

// NewRandSource returns a RandSource that yields a reproducible sequence
// for the given seed.
func NewRandSource(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

func newTimeSeededSource() RandSource {
	return NewRandSource(time.Now().UnixNano())
}
