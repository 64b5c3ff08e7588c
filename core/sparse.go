// Package core holds the sample representation shared by the learners:
// sparse feature vectors, labeled instances and the feature hasher that
// maps raw feature identifiers into a fixed-size coordinate space.
package core

import "github.com/pkg/errors"

// Entry is one (coordinate, value) pair of a sparse vector.
type Entry struct {
	Index int     `json:"i"`
	Value float64 `json:"v"`
}

// SparseVector is a sparse feature vector: only the non-default
// coordinates are stored. Entries are kept in ascending index order so
// that iteration, and therefore floating-point accumulation, is
// deterministic. Duplicate indices are a caller error.
type SparseVector []Entry

// Dot returns the dot product of v with a dense vector. Every index in v
// must be within range of dense.
func (v SparseVector) Dot(dense []float64) float64 {
	var sum float64
	for _, e := range v {
		sum += e.Value * dense[e.Index]
	}
	return sum
}

// MaxIndex returns the largest coordinate index in v, or -1 if v is empty.
func (v SparseVector) MaxIndex() int {
	if len(v) == 0 {
		return -1
	}
	return v[len(v)-1].Index
}

// Dense2Sparse converts a dense vector to its sparse form, omitting every
// entry equal to def. The inverse of ToDense for the same default.
func Dense2Sparse(dense []float64, def float64) SparseVector {
	var sv SparseVector
	for i, x := range dense {
		if x != def {
			sv = append(sv, Entry{Index: i, Value: x})
		}
	}
	return sv
}

// ToDense expands v into a dense vector of length dim, filling absent
// coordinates with def. Indices outside [0, dim) are rejected.
func (v SparseVector) ToDense(dim int, def float64) ([]float64, error) {
	dense := make([]float64, dim)
	if def != 0 {
		for i := range dense {
			dense[i] = def
		}
	}
	for _, e := range v {
		if e.Index < 0 || e.Index >= dim {
			return nil, errors.Errorf("core: sparse index %d out of range [0,%d)", e.Index, dim)
		}
		dense[e.Index] = e.Value
	}
	return dense, nil
}
