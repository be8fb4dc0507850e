// Package markov implements a discrete hidden Markov model with the
// Forward and Viterbi algorithms.
//
// A Model is immutable once built. Every algorithm call allocates its own
// trellis, so a single Model may be shared between goroutines.
package markov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Params holds the raw model parameters under the names used in model files.
type Params struct {
	ObservationStates []string    `json:"observation_states" yaml:"observation_states"`
	HiddenStates      []string    `json:"hidden_states" yaml:"hidden_states"`
	Prior             []float64   `json:"prior_p" yaml:"prior_p"`
	Transition        [][]float64 `json:"transition_p" yaml:"transition_p"`
	Emission          [][]float64 `json:"emission_p" yaml:"emission_p"`
}

// Model is a discrete HMM over K hidden states and M observation symbols.
type Model struct {
	observations *Alphabet
	hidden       *Alphabet
	prior        []float64
	transition   *mat.Dense // K×K, [i][j] = P(i -> j)
	transitionT  *mat.Dense // transposed, row h holds the transitions into h
	emission     *mat.Dense // K×M, [i][m] = P(m | i)
}

// New builds a model from the two alphabets and the three probability tables.
// The inputs are copied; later changes to them do not affect the model.
func New(observations, hidden []string, prior []float64, transition, emission [][]float64) (*Model, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: observation alphabet is empty", ErrShapeMismatch)
	}
	if len(hidden) == 0 {
		return nil, fmt.Errorf("%w: hidden-state alphabet is empty", ErrShapeMismatch)
	}
	obs, err := NewAlphabet(observations)
	if err != nil {
		return nil, fmt.Errorf("observation states: %w", err)
	}
	hid, err := NewAlphabet(hidden)
	if err != nil {
		return nil, fmt.Errorf("hidden states: %w", err)
	}

	K, M := hid.Size(), obs.Size()
	if len(prior) != K {
		return nil, fmt.Errorf("%w: prior has %d entries, want %d", ErrShapeMismatch, len(prior), K)
	}
	trans, err := dense("transition", transition, K, K)
	if err != nil {
		return nil, err
	}
	emis, err := dense("emission", emission, K, M)
	if err != nil {
		return nil, err
	}

	return &Model{
		observations: obs,
		hidden:       hid,
		prior:        append([]float64(nil), prior...),
		transition:   trans,
		transitionT:  mat.DenseCopyOf(trans.T()),
		emission:     emis,
	}, nil
}

// NewFromParams builds a model from a Params value.
func NewFromParams(p Params) (*Model, error) {
	return New(p.ObservationStates, p.HiddenStates, p.Prior, p.Transition, p.Emission)
}

func dense(name string, rows [][]float64, r, c int) (*mat.Dense, error) {
	if len(rows) != r {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrShapeMismatch, name, len(rows), r)
	}
	data := make([]float64, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrShapeMismatch, name, i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data), nil
}

// NumStates returns K, the number of hidden states.
func (m *Model) NumStates() int {
	return m.hidden.Size()
}

// NumSymbols returns M, the size of the observation alphabet.
func (m *Model) NumSymbols() int {
	return m.observations.Size()
}

// HiddenStates returns the hidden-state labels in index order.
func (m *Model) HiddenStates() []string {
	return m.hidden.Symbols()
}

// ObservationStates returns the observation symbols in index order.
func (m *Model) ObservationStates() []string {
	return m.observations.Symbols()
}

// Params returns a deep copy of the model parameters.
func (m *Model) Params() Params {
	K := m.NumStates()
	p := Params{
		ObservationStates: m.ObservationStates(),
		HiddenStates:      m.HiddenStates(),
		Prior:             append([]float64(nil), m.prior...),
		Transition:        make([][]float64, K),
		Emission:          make([][]float64, K),
	}
	for i := range K {
		p.Transition[i] = append([]float64(nil), m.transition.RawRowView(i)...)
		p.Emission[i] = append([]float64(nil), m.emission.RawRowView(i)...)
	}
	return p
}

// Validate checks that the prior and every transition and emission row are
// probability distributions: finite entries in [0, 1] summing to 1 within tol.
// New does not enforce this.
func (m *Model) Validate(tol float64) error {
	if err := checkDistribution("prior", m.prior, tol); err != nil {
		return err
	}
	for i, label := range m.hidden.ToStr {
		if err := checkDistribution(fmt.Sprintf("transition row %q", label), m.transition.RawRowView(i), tol); err != nil {
			return err
		}
		if err := checkDistribution(fmt.Sprintf("emission row %q", label), m.emission.RawRowView(i), tol); err != nil {
			return err
		}
	}
	return nil
}

func checkDistribution(name string, p []float64, tol float64) error {
	for j, v := range p {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s entry %d is %v", ErrNotStochastic, name, j, v)
		}
	}
	if s := floats.Sum(p); math.Abs(s-1) > tol {
		return fmt.Errorf("%w: %s sums to %v", ErrNotStochastic, name, s)
	}
	return nil
}

// indices resolves every observation to its column in the emission matrix.
func (m *Model) indices(seq []string) ([]int, error) {
	if len(seq) == 0 {
		return nil, ErrEmptySequence
	}
	idx := make([]int, len(seq))
	for t, s := range seq {
		id := m.observations.Get(s)
		if id < 0 {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, s, t)
		}
		idx[t] = id
	}
	return idx, nil
}
