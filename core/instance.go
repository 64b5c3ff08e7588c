package core

// Instance is one training example: a real-valued label, a non-negative
// importance weight and a sparse feature vector whose indices have already
// been resolved into the learner's coordinate space.
type Instance struct {
	Label  float64
	Weight float64
	Vector SparseVector
}

// NewInstance returns an instance with importance weight 1.
func NewInstance(label float64, vector SparseVector) *Instance {
	return &Instance{Label: label, Weight: 1, Vector: vector}
}
