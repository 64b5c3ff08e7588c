package ml

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mihahauke/yamall/core"
)

// stateVersion guards the persisted layout; bump on incompatible change.
const stateVersion = 1

// scinolState is the transfer form of a ScInOL learner: the scalar
// hyperparameters followed by the five state arrays in sparse form.
// Each block omits entries equal to that array's dense fill value, so a
// reader must expand weight, sum_gradient, sum_squared_gradient and eta
// against a zero default and max_feature against the epsilon floor.
type scinolState struct {
	Version      int     `json:"version"`
	Bits         int     `json:"bits"`
	L            float64 `json:"l"`
	ClipGradient bool    `json:"clip_gradient"`

	Weight             core.SparseVector `json:"weight"`
	SumGradient        core.SparseVector `json:"sum_gradient"`
	SumSquaredGradient core.SparseVector `json:"sum_squared_gradient"`
	MaxFeature         core.SparseVector `json:"max_feature"`
	Eta                core.SparseVector `json:"eta"`
}

// EncodeState serializes the learner. The injected loss function is not
// part of the persisted state; callers re-inject it after decoding.
func (m *ScInOL) EncodeState() ([]byte, error) {
	st := scinolState{
		Version:            stateVersion,
		Bits:               m.bits,
		L:                  m.l,
		ClipGradient:       m.clipGradient,
		Weight:             core.Dense2Sparse(m.w, 0),
		SumGradient:        core.Dense2Sparse(m.sumGradient, 0),
		SumSquaredGradient: core.Dense2Sparse(m.sumSquaredGradient, 0),
		MaxFeature:         core.Dense2Sparse(m.maxFeature, smallNumber),
		Eta:                core.Dense2Sparse(m.eta, 0),
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil, errors.Wrap(err, "ml: encoding ScInOL state")
	}
	return b, nil
}

// DecodeScInOL reconstructs a learner from EncodeState output. The
// coordinate-space size is taken from the persisted header before any
// array is expanded. The caller must SetLoss before the next Update.
func DecodeScInOL(data []byte) (*ScInOL, error) {
	var st scinolState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(err, "ml: decoding ScInOL state")
	}
	if st.Version != stateVersion {
		return nil, errors.Errorf("ml: unsupported state version %d", st.Version)
	}
	m, err := NewScInOL(st.Bits, st.L, 0)
	if err != nil {
		return nil, errors.Wrap(err, "ml: decoding ScInOL state")
	}
	m.clipGradient = st.ClipGradient
	for _, blk := range []struct {
		name string
		sv   core.SparseVector
		dst  *[]float64
		def  float64
	}{
		{"weight", st.Weight, &m.w, 0},
		{"sum_gradient", st.SumGradient, &m.sumGradient, 0},
		{"sum_squared_gradient", st.SumSquaredGradient, &m.sumSquaredGradient, 0},
		{"max_feature", st.MaxFeature, &m.maxFeature, smallNumber},
		{"eta", st.Eta, &m.eta, 0},
	} {
		dense, err := blk.sv.ToDense(m.sizeHash, blk.def)
		if err != nil {
			return nil, errors.Wrapf(err, "ml: expanding %s block", blk.name)
		}
		*blk.dst = dense
	}
	return m, nil
}

// DecodeState restores persisted state into an existing learner. The
// persisted coordinate-space size must match the learner's; restoring
// into a differently sized space is rejected.
func (m *ScInOL) DecodeState(data []byte) error {
	restored, err := DecodeScInOL(data)
	if err != nil {
		return err
	}
	if restored.bits != m.bits {
		return errors.Errorf("ml: state has %d hash bits, learner has %d", restored.bits, m.bits)
	}
	loss := m.loss
	*m = *restored
	m.loss = loss
	return nil
}
