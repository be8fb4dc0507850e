package markov

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Path is the most probable hidden-state sequence for an observation sequence.
type Path struct {
	States  []string `json:"states"`
	Indices []int    `json:"indices"`
	Prob    float64  `json:"prob"` // joint probability of the path and the observations
}

// Viterbi returns the most probable sequence of hidden-state labels for seq.
func (m *Model) Viterbi(seq []string) ([]string, error) {
	p, err := m.Decode(seq)
	if err != nil {
		return nil, err
	}
	return p.States, nil
}

// Decode runs the Viterbi algorithm and returns the best path with its probability.
//
// When several predecessors (or final states) reach the same maximal
// probability, the one with the lowest index wins.
func (m *Model) Decode(seq []string) (Path, error) {
	obs, err := m.indices(seq)
	if err != nil {
		return Path{}, err
	}
	K, T := m.NumStates(), len(obs)

	// v[h][t] = probability of the best path ending in state h at time t
	v := mat.NewDense(K, T, nil)
	// bp[h][t] = best predecessor of h at time t; column 0 is unused
	bp := make([][]int, K)
	for h := range K {
		bp[h] = make([]int, T)
	}

	// t = 0
	for h := range K {
		v.Set(h, 0, m.prior[h]*m.emission.At(h, obs[0]))
	}

	// t = 1..T-1
	prev := make([]float64, K)
	cand := make([]float64, K)
	for t := 1; t < T; t++ {
		mat.Col(prev, t-1, v)
		for h := range K {
			floats.MulTo(cand, prev, m.transitionT.RawRowView(h))
			best := floats.MaxIdx(cand)
			bp[h][t] = best
			v.Set(h, t, cand[best]*m.emission.At(h, obs[t]))
		}
	}

	// Best final state
	last := mat.Col(nil, T-1, v)
	best := floats.MaxIdx(last)

	// Backtrack
	path := make([]int, T)
	path[T-1] = best
	for t := T - 1; t > 0; t-- {
		path[t-1] = bp[path[t]][t]
	}

	states := make([]string, T)
	for t, id := range path {
		states[t] = m.hidden.ToStr[id]
	}
	return Path{States: states, Indices: path, Prob: last[best]}, nil
}

// PathProbability returns the joint probability of seq and the hidden path
// states, replayed through the prior, transition and emission tables.
func (m *Model) PathProbability(seq, states []string) (float64, error) {
	obs, err := m.indices(seq)
	if err != nil {
		return 0, err
	}
	if len(states) != len(obs) {
		return 0, fmt.Errorf("%w: %d states for %d observations", ErrLengthMismatch, len(states), len(obs))
	}

	var p float64
	prev := -1
	for t, s := range states {
		h := m.hidden.Get(s)
		if h < 0 {
			return 0, fmt.Errorf("%w: %q at position %d", ErrUnknownState, s, t)
		}
		e := m.emission.At(h, obs[t])
		if t == 0 {
			p = m.prior[h] * e
		} else {
			p = p * m.transition.At(prev, h) * e
		}
		prev = h
	}
	return p, nil
}
