package ml

import "github.com/mihahauke/yamall/core"

// Learner is an online linear model trained one instance at a time.
// Implementations are single-writer: callers must serialize Update calls
// to one learner instance.
type Learner interface {
	// Update trains on one instance and returns the prediction computed
	// with the pre-update weights.
	Update(sample *core.Instance) (float64, error)
	// Predict returns the current model's prediction without mutating
	// any state.
	Predict(sample *core.Instance) (float64, error)

	SetLoss(loss Loss)
	GetLoss() Loss
	// SetLearningRate resets every per-coordinate learning rate to the
	// given scalar, discarding any adaptation accumulated so far.
	SetLearningRate(eta float64)
	// GetWeights exports the model coefficients in sparse form; absent
	// coordinates are zero.
	GetWeights() core.SparseVector
}
