package ml

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/mihahauke/yamall/core"
)

// smallNumber floors the running feature maximum so the denominator of
// the weight formula is never exactly zero.
const smallNumber = 1e-15

// ScInOL is a scale-invariant online learner for linear models, from
//
//	Michał Kempka, Wojciech Kotłowski, Manfred K. Warmuth,
//	"Adaptive scale-invariant online algorithms for learning linear
//	models", ICML 2019.
//
// Each coordinate derives its own effective step size from the running
// statistics of the gradients it has seen, so no global learning rate
// needs tuning and rescaling any feature by a positive constant leaves
// the sequence of predictions unchanged.
type ScInOL struct {
	w                  []float64
	sumGradient        []float64
	sumSquaredGradient []float64
	maxFeature         []float64
	eta                []float64

	sizeHash     int
	bits         int
	l            float64
	clipGradient bool
	loss         Loss
}

var _ Learner = &ScInOL{}

// NewScInOL returns a learner over a 2^bits coordinate space. L bounds
// both the scaled feature magnitude and, when clipping is on (the
// default), the loss gradient. eta0 is the initial per-coordinate
// learning rate.
func NewScInOL(bits int, l, eta0 float64) (*ScInOL, error) {
	if bits < 1 || bits > 31 {
		return nil, errors.Errorf("ml: hash bits must be in [1,31], got %d", bits)
	}
	sizeHash := 1 << uint(bits)
	m := &ScInOL{
		w:                  make([]float64, sizeHash),
		sumGradient:        make([]float64, sizeHash),
		sumSquaredGradient: make([]float64, sizeHash),
		maxFeature:         fill(make([]float64, sizeHash), smallNumber),
		eta:                make([]float64, sizeHash),
		sizeHash:           sizeHash,
		bits:               bits,
		l:                  l,
		clipGradient:       true,
	}
	m.SetLearningRate(eta0)
	return m, nil
}

// NewDefaultScInOL is NewScInOL with L = 1 and eta0 = 1.
func NewDefaultScInOL(bits int) (*ScInOL, error) {
	return NewScInOL(bits, 1, 1)
}

// Update trains on one instance. For every coordinate present in the
// sample it recomputes the cached weight from the accumulated statistics,
// forms the prediction, asks the loss for a negative gradient (clipped to
// [-L, L] when enabled) and folds it back into the accumulators. Only the
// sample's coordinates are read or written. The learning-rate accumulator
// deliberately uses the weights computed earlier in the same call; this
// ordering is required for the algorithm's regret bound.
func (m *ScInOL) Update(sample *core.Instance) (float64, error) {
	if m.loss == nil {
		return 0, errors.New("ml: no loss function set")
	}
	if err := m.checkBounds(sample.Vector); err != nil {
		return 0, err
	}

	var pred float64
	for _, e := range sample.Vector {
		i, x := e.Index, e.Value
		if ax := m.l * math.Abs(x); ax > m.maxFeature[i] {
			m.maxFeature[i] = ax
		}
		denom := math.Sqrt(m.sumSquaredGradient[i] + m.maxFeature[i]*m.maxFeature[i])
		theta := m.sumGradient[i] / denom
		m.w[i] = math.Copysign(math.Min(1, math.Abs(theta)), theta) / (2 * denom) * m.eta[i]
		pred += x * m.w[i]
	}

	negGrad := m.loss.NegativeGradient(pred, sample.Label, sample.Weight)
	if m.clipGradient {
		negGrad = math.Min(negGrad, m.l)
		negGrad = math.Max(negGrad, -m.l)
	}

	for _, e := range sample.Vector {
		i, g := e.Index, e.Value*negGrad
		m.sumGradient[i] += g
		m.sumSquaredGradient[i] += g * g
		m.eta[i] += g * m.w[i]
	}
	return pred, nil
}

// Predict returns the dot product of the sample with the cached weights.
// It never recomputes weights or touches accumulator state.
func (m *ScInOL) Predict(sample *core.Instance) (float64, error) {
	if err := m.checkBounds(sample.Vector); err != nil {
		return 0, err
	}
	return sample.Vector.Dot(m.w), nil
}

func (m *ScInOL) checkBounds(v core.SparseVector) error {
	for _, e := range v {
		if e.Index < 0 || e.Index >= m.sizeHash {
			return errors.Errorf("ml: coordinate %d out of range [0,%d)", e.Index, m.sizeHash)
		}
	}
	return nil
}

// SetLoss injects the loss function used by Update.
func (m *ScInOL) SetLoss(loss Loss) { m.loss = loss }

func (m *ScInOL) GetLoss() Loss { return m.loss }

// SetLearningRate resets every per-coordinate learning rate to eta,
// overwriting any adaptation accumulated so far.
func (m *ScInOL) SetLearningRate(eta float64) {
	fill(m.eta, eta)
}

// SetL changes the clip bound applied to scaled feature magnitudes and,
// when clipping is enabled, to the loss gradient.
func (m *ScInOL) SetL(l float64) { m.l = l }

// SetClipGradient toggles clamping of the negative gradient to [-L, L].
func (m *ScInOL) SetClipGradient(clip bool) { m.clipGradient = clip }

// SizeHash returns the number of addressable coordinates.
func (m *ScInOL) SizeHash() int { return m.sizeHash }

// GetWeights exports the non-zero model coefficients in sparse form.
func (m *ScInOL) GetWeights() core.SparseVector {
	return core.Dense2Sparse(m.w, 0)
}

func (m *ScInOL) String() string {
	return fmt.Sprintf("ScInOL, loss function = %v", m.loss)
}

func fill(x []float64, v float64) []float64 {
	for i := range x {
		x[i] = v
	}
	return x
}
