package hmm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/hmm/markov"
)

func TestLoadJSON(t *testing.T) {
	m, err := Load("testdata/mini_weather_hmm.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"hot", "cold"}, m.HiddenStates())
	assert.Equal(t, []string{"sunny", "rainy"}, m.ObservationStates())
	assert.NoError(t, m.Validate(1e-9))
}

func TestLoadYAML(t *testing.T) {
	m, err := Load("testdata/full_weather_hmm.yaml")
	require.NoError(t, err)
	assert.Equal(t, 4, m.NumStates())
	assert.Equal(t, 4, m.NumSymbols())
	assert.NoError(t, m.Validate(1e-9))
}

func TestLoadNonExistent(t *testing.T) {
	_, err := Load("nonexistent.json")
	assert.Error(t, err)
}

func TestLoadBytesShapeMismatch(t *testing.T) {
	_, err := LoadBytes([]byte(`{"observation_states": ["a"], "hidden_states": ["x", "y"], "prior_p": [1], "transition_p": [[1]], "emission_p": [[1]]}`), ".json")
	assert.ErrorIs(t, err, markov.ErrShapeMismatch)
}

func TestDecodeMiniWeather(t *testing.T) {
	m, err := Load("testdata/mini_weather_hmm.json")
	require.NoError(t, err)

	r, err := Decode(m, []string{"sunny", "rainy", "rainy", "sunny", "rainy"})
	require.NoError(t, err)
	assert.InDelta(t, 0.019440512, r.Likelihood, 1e-3)
	assert.Equal(t, []string{"hot", "cold", "cold", "cold", "cold"}, r.States)
	assert.LessOrEqual(t, r.PathProb, r.Likelihood)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil, []string{"sunny"})
	assert.Error(t, err)

	m, err := Load("testdata/mini_weather_hmm.json")
	require.NoError(t, err)

	_, err = Decode(m, []string{"sunny", "foggy"})
	assert.ErrorIs(t, err, markov.ErrUnknownSymbol)

	_, err = Decode(m, nil)
	assert.ErrorIs(t, err, markov.ErrEmptySequence)
}

func TestSaveLoad(t *testing.T) {
	m, err := Load("testdata/full_weather_hmm.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "copy_hmm.json")
	require.NoError(t, Save(m, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Params(), loaded.Params())

	assert.Error(t, Save(nil, path))
}
