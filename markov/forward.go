package markov

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Forward returns the likelihood of seq, summed over every hidden-state path.
//
// Probabilities are multiplied directly without scaling, so very long
// sequences underflow toward zero.
func (m *Model) Forward(seq []string) (float64, error) {
	alpha, err := m.Alpha(seq)
	if err != nil {
		return 0, err
	}
	_, T := alpha.Dims()
	return mat.Sum(alpha.ColView(T - 1)), nil
}

// Alpha returns the K×T forward trellis for seq.
// alpha[h][t] is the joint probability of seq[0..t] and state h at time t.
func (m *Model) Alpha(seq []string) (*mat.Dense, error) {
	obs, err := m.indices(seq)
	if err != nil {
		return nil, err
	}
	K, T := m.NumStates(), len(obs)

	alpha := mat.NewDense(K, T, nil)

	// t = 0
	for h := range K {
		alpha.Set(h, 0, m.prior[h]*m.emission.At(h, obs[0]))
	}

	// t = 1..T-1
	prev := make([]float64, K)
	for t := 1; t < T; t++ {
		mat.Col(prev, t-1, alpha)
		for h := range K {
			s := floats.Dot(prev, m.transitionT.RawRowView(h))
			alpha.Set(h, t, s*m.emission.At(h, obs[t]))
		}
	}
	return alpha, nil
}

// Backward returns the likelihood of seq computed by the backward recursion.
// It agrees with Forward up to floating-point rounding.
func (m *Model) Backward(seq []string) (float64, error) {
	obs, err := m.indices(seq)
	if err != nil {
		return 0, err
	}
	K, T := m.NumStates(), len(obs)

	// t = T-1
	beta := make([]float64, K)
	for h := range beta {
		beta[h] = 1
	}

	// t = T-2..0
	next := make([]float64, K)
	weighted := make([]float64, K)
	for t := T - 2; t >= 0; t-- {
		for n := range K {
			weighted[n] = m.emission.At(n, obs[t+1]) * beta[n]
		}
		for h := range K {
			next[h] = floats.Dot(m.transition.RawRowView(h), weighted)
		}
		beta, next = next, beta
	}

	var p float64
	for h := range K {
		p += m.prior[h] * m.emission.At(h, obs[0]) * beta[h]
	}
	return p, nil
}
