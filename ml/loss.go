// Package ml implements online learners for linear models together with
// the loss functions that drive them. The learners consume sparse
// instances from the core package one sample at a time.
package ml

import "math"

// Loss supplies the per-sample training signal. NegativeGradient returns
// the negative derivative of the (importance-weighted) loss with respect
// to the prediction; adding it, scaled by the feature value, to a
// gradient accumulator moves the model toward lower loss. Implementations
// are pure and keep no state.
type Loss interface {
	// Value returns the unweighted loss of a prediction against a label.
	Value(pred, label float64) float64
	// NegativeGradient returns -dLoss/dPred scaled by the instance weight.
	NegativeGradient(pred, label, weight float64) float64
	String() string
}

var (
	_ Loss = SquaredLoss{}
	_ Loss = LogisticLoss{}
	_ Loss = HingeLoss{}
	_ Loss = AbsoluteLoss{}
)

// SquaredLoss is (pred-label)^2, for regression.
type SquaredLoss struct{}

func (SquaredLoss) Value(pred, label float64) float64 {
	d := pred - label
	return d * d
}

func (SquaredLoss) NegativeGradient(pred, label, weight float64) float64 {
	return 2 * (label - pred) * weight
}

func (SquaredLoss) String() string { return "squared" }

// LogisticLoss is log(1+exp(-label*pred)) for labels in {-1,+1}.
type LogisticLoss struct{}

func (LogisticLoss) Value(pred, label float64) float64 {
	z := label * pred
	if z < -30 {
		// log1p(exp(-z)) overflows; the loss is -z to machine precision.
		return -z
	}
	return math.Log1p(math.Exp(-z))
}

func (LogisticLoss) NegativeGradient(pred, label, weight float64) float64 {
	return label * weight / (1 + math.Exp(label*pred))
}

func (LogisticLoss) String() string { return "logistic" }

// HingeLoss is max(0, 1-label*pred) for labels in {-1,+1}.
type HingeLoss struct{}

func (HingeLoss) Value(pred, label float64) float64 {
	return math.Max(0, 1-label*pred)
}

func (HingeLoss) NegativeGradient(pred, label, weight float64) float64 {
	if label*pred < 1 {
		return label * weight
	}
	return 0
}

func (HingeLoss) String() string { return "hinge" }

// AbsoluteLoss is |pred-label|, for robust regression.
type AbsoluteLoss struct{}

func (AbsoluteLoss) Value(pred, label float64) float64 {
	return math.Abs(pred - label)
}

func (AbsoluteLoss) NegativeGradient(pred, label, weight float64) float64 {
	if pred == label {
		return 0
	}
	return math.Copysign(weight, label-pred)
}

func (AbsoluteLoss) String() string { return "absolute" }
