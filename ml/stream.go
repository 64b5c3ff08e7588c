package ml

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/mihahauke/yamall/core"
)

// Shuffler replays a fixed dataset as an endless single-sample stream,
// visiting every instance exactly once per epoch in random order. Useful
// for running an online learner over an in-memory dataset for several
// passes.
type Shuffler struct {
	// Source sets the random number source. If nil, the global source
	// is used.
	Source rand.Source

	data []core.Instance
	perm []int
	pos  int
}

// NewShuffler returns a shuffler over data. The slice is not copied;
// callers must not mutate it while streaming.
func NewShuffler(data []core.Instance, src rand.Source) *Shuffler {
	return &Shuffler{
		Source: src,
		data:   data,
		perm:   make([]int, len(data)),
	}
}

// Next returns the next instance in the stream, reshuffling at every
// epoch boundary.
func (s *Shuffler) Next() *core.Instance {
	if s.pos == 0 {
		sampleuv.WithoutReplacement(s.perm, len(s.data), s.Source)
	}
	sample := &s.data[s.perm[s.pos]]
	s.pos++
	if s.pos == len(s.data) {
		s.pos = 0
	}
	return sample
}
