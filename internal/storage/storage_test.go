package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/hmm/markov"
)

func sampleParams() markov.Params {
	return markov.Params{
		ObservationStates: []string{"sunny", "rainy"},
		HiddenStates:      []string{"hot", "cold"},
		Prior:             []float64{0.67, 0.33},
		Transition:        [][]float64{{0.7, 0.3}, {0.4, 0.6}},
		Emission:          [][]float64{{0.8, 0.2}, {0.4, 0.6}},
	}
}

func TestModelRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"m_hmm.json", "m_hmm.yaml", "m_hmm.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteModel(path, sampleParams()))

			got, err := ReadModel(path)
			require.NoError(t, err)
			assert.Equal(t, sampleParams(), *got)
		})
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fp := 0.019440512
	want := SequenceFile{
		Observations:       []string{"sunny", "rainy"},
		BestHiddenStates:   []string{"hot", "cold"},
		ForwardProbability: &fp,
	}
	for _, name := range []string{"s_sequences.json", "s_sequences.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteSequence(path, want))

		got, err := ReadSequence(path)
		require.NoError(t, err)
		assert.Equal(t, want, *got)
	}
}

func TestReadSequenceOptionalFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_sequences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("observation_state_sequence: [a, b]\n"), 0644))

	sf, err := ReadSequence(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sf.Observations)
	assert.Nil(t, sf.BestHiddenStates)
	assert.Nil(t, sf.ForwardProbability)
}

func TestUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.npz")
	assert.Error(t, WriteModel(path, sampleParams()))

	require.NoError(t, os.WriteFile(path, []byte("PK"), 0644))
	_, err := ReadModel(path)
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestCases(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"b_hmm.yaml", "b_sequences.yml",
		"a_hmm.json", "a_sequences.json",
		"orphan_hmm.json",
		"lonely_sequences.json",
		"notes.txt",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c_hmm.json"), 0755))

	cases, err := NewStorage(dir).Cases()
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, Case{
		Name:         "a",
		ModelPath:    filepath.Join(dir, "a_hmm.json"),
		SequencePath: filepath.Join(dir, "a_sequences.json"),
	}, cases[0])
	assert.Equal(t, "b", cases[1].Name)
	assert.Equal(t, filepath.Join(dir, "b_sequences.yml"), cases[1].SequencePath)
}

func TestCasesMissingFolder(t *testing.T) {
	_, err := NewStorage(filepath.Join(t.TempDir(), "missing")).Cases()
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".json", true},
		{".YAML", true},
		{".yml", true},
		{".npz", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.ext); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
