package hmm

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/happyhackingspace/hmm/internal/storage"
)

// EvalConfig holds configuration for evaluation.
type EvalConfig struct {
	// Relative tolerance when comparing against a recorded likelihood.
	// Zero selects the default; negative values are rejected.
	Tolerance float64
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// DefaultEvalConfig returns the default evaluation config.
func DefaultEvalConfig() *EvalConfig {
	return &EvalConfig{Tolerance: 1e-6}
}

// CaseResult holds the outcome of one evaluated case.
type CaseResult struct {
	Name               string
	Result             *Result
	ExpectedStates     []string
	ExpectedLikelihood *float64
	PathMatch          bool // true when no expected path is recorded
	LikelihoodMatch    bool // true when no expected likelihood is recorded
	Err                error
}

// Passed reports whether the case decoded without error and matched every expectation.
func (c *CaseResult) Passed() bool {
	return c.Err == nil && c.PathMatch && c.LikelihoodMatch
}

// EvalResult holds the evaluation results over a data folder.
type EvalResult struct {
	Cases             []CaseResult
	Passed            int
	Failed            int
	Errored           int
	PathCorrect       int
	PathTotal         int
	LikelihoodCorrect int
	LikelihoodTotal   int
}

// Evaluate decodes every case in dataDir and compares the results with the
// expected path and likelihood recorded in its sequence file.
// A failing case is reported in the result and does not stop the run.
func Evaluate(dataDir string, config *EvalConfig) (*EvalResult, error) {
	cfg := DefaultEvalConfig()
	if config != nil {
		if config.Tolerance < 0 || math.IsNaN(config.Tolerance) {
			return nil, fmt.Errorf("hmm: tolerance must not be negative, got %v", config.Tolerance)
		}
		if config.Tolerance > 0 {
			cfg.Tolerance = config.Tolerance
		}
		cfg.Progress = config.Progress
	}

	cases, err := storage.NewStorage(dataDir).Cases()
	if err != nil {
		return nil, fmt.Errorf("hmm: %w", err)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("hmm: no cases found in %s", dataDir)
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(len(cases),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("Evaluating"),
			progressbar.OptionClearOnFinish(),
		)
	}

	result := &EvalResult{Cases: make([]CaseResult, 0, len(cases))}
	for _, c := range cases {
		cr := evaluateCase(c, cfg.Tolerance)
		switch {
		case cr.Err != nil:
			result.Errored++
			slog.Warn("Case failed", "case", c.Name, "error", cr.Err)
		case cr.Passed():
			result.Passed++
		default:
			result.Failed++
		}
		if cr.Err == nil && cr.ExpectedStates != nil {
			result.PathTotal++
			if cr.PathMatch {
				result.PathCorrect++
			}
		}
		if cr.Err == nil && cr.ExpectedLikelihood != nil {
			result.LikelihoodTotal++
			if cr.LikelihoodMatch {
				result.LikelihoodCorrect++
			}
		}
		result.Cases = append(result.Cases, cr)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return result, nil
}

func evaluateCase(c storage.Case, tol float64) CaseResult {
	cr := CaseResult{Name: c.Name}

	m, err := Load(c.ModelPath)
	if err != nil {
		cr.Err = err
		return cr
	}
	sf, err := storage.ReadSequence(c.SequencePath)
	if err != nil {
		cr.Err = fmt.Errorf("hmm: %w", err)
		return cr
	}
	cr.ExpectedStates = sf.BestHiddenStates
	cr.ExpectedLikelihood = sf.ForwardProbability

	r, err := Decode(m, sf.Observations)
	if err != nil {
		cr.Err = err
		return cr
	}
	cr.Result = r

	backward, err := m.Backward(sf.Observations)
	if err == nil {
		slog.Debug("Case decoded", "case", c.Name, "forward", r.Likelihood, "backward", backward, "path_probability", r.PathProb)
	}

	cr.PathMatch = sf.BestHiddenStates == nil || slices.Equal(r.States, sf.BestHiddenStates)
	cr.LikelihoodMatch = sf.ForwardProbability == nil || scalar.EqualWithinRel(r.Likelihood, *sf.ForwardProbability, tol)
	return cr
}
