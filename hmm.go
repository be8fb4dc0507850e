// Package hmm decodes observation sequences with discrete hidden Markov models.
//
// It loads model files and runs the Forward and Viterbi algorithms of the
// markov package over them.
//
//	m, _ := hmm.Load("testdata/mini_weather_hmm.json")
//	r, _ := hmm.Decode(m, []string{"sunny", "rainy", "rainy"})
//	fmt.Println(r.Likelihood) // P(sunny, rainy, rainy)
//	fmt.Println(r.States)     // [hot cold cold]
package hmm

import (
	"fmt"

	"github.com/happyhackingspace/hmm/internal/storage"
	"github.com/happyhackingspace/hmm/markov"
)

// Result holds the outcome of decoding one observation sequence.
type Result struct {
	Likelihood float64  `json:"likelihood"`
	States     []string `json:"states"`
	PathProb   float64  `json:"path_probability"`
}

// Load reads a JSON or YAML model file and builds the model.
func Load(path string) (*markov.Model, error) {
	p, err := storage.ReadModel(path)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	m, err := markov.NewFromParams(*p)
	if err != nil {
		return nil, fmt.Errorf("hmm: %s: %w", path, err)
	}
	return m, nil
}

// LoadBytes builds a model from encoded parameters; ext (".json", ".yaml")
// selects the format.
func LoadBytes(data []byte, ext string) (*markov.Model, error) {
	p, err := storage.DecodeModel(data, ext)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	m, err := markov.NewFromParams(*p)
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	return m, nil
}

// Save writes the model parameters to a JSON or YAML file.
func Save(m *markov.Model, path string) error {
	if m == nil {
		return fmt.Errorf("hmm: model not initialized")
	}
	if err := storage.WriteModel(path, m.Params()); err != nil {
		return fmt.Errorf("hmm: %w", err)
	}
	return nil
}

// Decode runs Forward and Viterbi over seq.
func Decode(m *markov.Model, seq []string) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("hmm: model not initialized")
	}
	likelihood, err := m.Forward(seq)
	if err != nil {
		return nil, fmt.Errorf("hmm: forward: %w", err)
	}
	path, err := m.Decode(seq)
	if err != nil {
		return nil, fmt.Errorf("hmm: viterbi: %w", err)
	}
	return &Result{
		Likelihood: likelihood,
		States:     path.States,
		PathProb:   path.Prob,
	}, nil
}
