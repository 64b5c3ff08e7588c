package core

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/spaolacci/murmur3"
)

// FeatureHasher maps arbitrary string feature identifiers into the
// coordinate space [0, 2^bits) with murmur3. Colliding features share a
// coordinate; their values are summed when a vector is built.
type FeatureHasher struct {
	bits int
	mask uint32
	seed uint32
}

// NewFeatureHasher returns a hasher for a 2^bits coordinate space.
func NewFeatureHasher(bits int) (*FeatureHasher, error) {
	if bits < 1 || bits > 31 {
		return nil, errors.Errorf("core: hash bits must be in [1,31], got %d", bits)
	}
	return &FeatureHasher{
		bits: bits,
		mask: uint32(1)<<uint(bits) - 1,
	}, nil
}

// SizeHash returns the number of addressable coordinates, 2^bits.
func (h *FeatureHasher) SizeHash() int { return 1 << uint(h.bits) }

// Bits returns the configured bit width.
func (h *FeatureHasher) Bits() int { return h.bits }

// Hash maps a feature name to its coordinate index.
func (h *FeatureHasher) Hash(name string) int {
	return int(murmur3.Sum32WithSeed([]byte(name), h.seed) & h.mask)
}

// Vectorize hashes a raw feature map into a sparse vector. Values of
// features that collide on the same coordinate are summed. The result is
// sorted by index so downstream accumulation order is deterministic.
func (h *FeatureHasher) Vectorize(features map[string]float64) SparseVector {
	byIndex := make(map[int]float64, len(features))
	for name, value := range features {
		byIndex[h.Hash(name)] += value
	}
	sv := make(SparseVector, 0, len(byIndex))
	for i, v := range byIndex {
		sv = append(sv, Entry{Index: i, Value: v})
	}
	sort.Slice(sv, func(i, j int) bool { return sv[i].Index < sv[j].Index })
	return sv
}
