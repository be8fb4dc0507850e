package storage

// SequenceFile holds one observation trace and, for evaluation, its expected decoding.
type SequenceFile struct {
	Observations     []string `json:"observation_state_sequence" yaml:"observation_state_sequence"`
	BestHiddenStates []string `json:"best_hidden_state_sequence,omitempty" yaml:"best_hidden_state_sequence,omitempty"`
	// Expected Forward likelihood; nil when the file does not record one.
	ForwardProbability *float64 `json:"forward_probability,omitempty" yaml:"forward_probability,omitempty"`
}

// Case pairs a model file with the sequence file sharing its name prefix.
type Case struct {
	Name         string
	ModelPath    string
	SequencePath string
}
