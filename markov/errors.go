package markov

import "errors"

var (
	// ErrShapeMismatch indicates parameter dimensions disagree with the alphabet sizes.
	ErrShapeMismatch = errors.New("markov: parameter shape does not match alphabets")
	// ErrDuplicateSymbol indicates an alphabet contains the same entry twice.
	ErrDuplicateSymbol = errors.New("markov: duplicate alphabet entry")
	// ErrUnknownSymbol indicates an observation that is not in the observation alphabet.
	ErrUnknownSymbol = errors.New("markov: unknown observation symbol")
	// ErrUnknownState indicates a hidden-state label that is not in the hidden alphabet.
	ErrUnknownState = errors.New("markov: unknown hidden state")
	// ErrEmptySequence indicates a zero-length observation sequence.
	ErrEmptySequence = errors.New("markov: observation sequence is empty")
	// ErrLengthMismatch indicates a state path and observation sequence of different lengths.
	ErrLengthMismatch = errors.New("markov: state path and observation sequence lengths differ")
	// ErrNotStochastic indicates a prior or matrix row that is not a probability distribution.
	ErrNotStochastic = errors.New("markov: not a probability distribution")
)
