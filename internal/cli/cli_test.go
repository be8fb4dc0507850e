package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/hmm/markov"
)

const (
	miniModel = "../../testdata/mini_weather_hmm.json"
	fullModel = "../../testdata/full_weather_hmm.yaml"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New("test")
	var out bytes.Buffer
	c.rootCmd.SetOut(&out)
	c.rootCmd.SetErr(io.Discard)
	c.rootCmd.SetIn(strings.NewReader(stdin))
	c.rootCmd.SetArgs(append([]string{"--silent"}, args...))
	err := c.rootCmd.Execute()
	return out.String(), err
}

func TestForwardCommand(t *testing.T) {
	out, err := execute(t, "", "forward", "-m", miniModel, "sunny", "rainy", "rainy", "sunny", "rainy")
	require.NoError(t, err)

	p, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.019440512, p, 1e-12)
}

func TestViterbiCommand(t *testing.T) {
	out, err := execute(t, "", "viterbi", "-m", miniModel, "sunny,rainy,rainy,sunny,rainy")
	require.NoError(t, err)
	assert.Equal(t, "hot -> cold -> cold -> cold -> cold\n", out)

	out, err = execute(t, "", "viterbi", "-m", miniModel, "--json", "sunny", "sunny")
	require.NoError(t, err)
	assert.JSONEq(t, `["hot", "hot"]`, out)
}

func TestDecodeFromStdin(t *testing.T) {
	out, err := execute(t, "sunny, rainy\n", "decode", "-m", miniModel)
	require.NoError(t, err)
	assert.Contains(t, out, "Best path:  hot -> cold")
	assert.Contains(t, out, "Likelihood: ")
}

func TestDecodeJSONTrellis(t *testing.T) {
	out, err := execute(t, "", "decode", "-m", fullModel, "--json", "--trellis", "sunny", "snowy", "snowy")
	require.NoError(t, err)

	var got struct {
		Observations []string    `json:"observations"`
		Likelihood   float64     `json:"likelihood"`
		States       []string    `json:"states"`
		PathProb     float64     `json:"path_probability"`
		Alpha        [][]float64 `json:"alpha"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"sunny", "snowy", "snowy"}, got.Observations)
	assert.Len(t, got.States, 3)
	require.Len(t, got.Alpha, 4)
	assert.Len(t, got.Alpha[0], 3)

	var last float64
	for _, row := range got.Alpha {
		last += row[2]
	}
	assert.InEpsilon(t, got.Likelihood, last, 1e-12)
	assert.LessOrEqual(t, got.PathProb, got.Likelihood)
}

func TestDecodeErrors(t *testing.T) {
	_, err := execute(t, "", "decode", "-m", miniModel, "sunny", "foggy")
	assert.ErrorIs(t, err, markov.ErrUnknownSymbol)

	_, err = execute(t, "  \n", "forward", "-m", miniModel)
	assert.ErrorContains(t, err, "stdin is empty")

	t.Setenv(modelEnv, "")
	_, err = execute(t, "", "forward", "sunny")
	assert.ErrorContains(t, err, "no model given")
}

func TestModelFromEnv(t *testing.T) {
	t.Setenv(modelEnv, miniModel)
	out, err := execute(t, "", "viterbi", "rainy")
	require.NoError(t, err)
	assert.Equal(t, "cold\n", out)
}

func TestModelFromURL(t *testing.T) {
	data, err := os.ReadFile(fullModel)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/weather_hmm.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	out, err := execute(t, "", "viterbi", "-m", srv.URL+"/models/weather_hmm.yaml", "sunny", "sunny")
	require.NoError(t, err)
	assert.Equal(t, "hot -> hot\n", out)

	_, err = execute(t, "", "viterbi", "-m", srv.URL+"/missing.json", "sunny")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "", "validate", "-m", fullModel)
	require.NoError(t, err)
	assert.Equal(t, "ok: 4 hidden states, 4 observation symbols\n", out)

	bad := filepath.Join(t.TempDir(), "bad_hmm.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{
		"observation_states": ["a", "b"],
		"hidden_states": ["x"],
		"prior_p": [1],
		"transition_p": [[1]],
		"emission_p": [[0.5, 0.4]]
	}`), 0644))
	_, err = execute(t, "", "validate", "-m", bad)
	assert.ErrorIs(t, err, markov.ErrNotStochastic)

	_, err = execute(t, "", "validate", "-m", bad, "--tolerance", "0.2")
	assert.NoError(t, err)

	_, err = execute(t, "", "forward", "-m", bad, "--strict", "a")
	assert.ErrorIs(t, err, markov.ErrNotStochastic)
}

func TestEvaluateCommand(t *testing.T) {
	out, err := execute(t, "", "evaluate", "--data-folder", "../../testdata")
	require.NoError(t, err)
	assert.Contains(t, out, "full_weather")
	assert.Contains(t, out, "mini_weather")
	assert.Contains(t, out, "Passed: 2/2")
}

func TestEvaluateRejectsTolerance(t *testing.T) {
	for _, tol := range []string{"0", "-1e-6"} {
		_, err := execute(t, "", "evaluate", "--data-folder", "../../testdata", "--tolerance", tol)
		assert.ErrorContains(t, err, "--tolerance must be positive", tol)
	}
}

func TestDecodeJSONUnencodable(t *testing.T) {
	model := filepath.Join(t.TempDir(), "nan_hmm.yaml")
	require.NoError(t, os.WriteFile(model, []byte(`observation_states: [x]
hidden_states: [h]
prior_p: [.nan]
transition_p: [[1]]
emission_p: [[1]]
`), 0644))

	out, err := execute(t, "", "decode", "-m", model, "--json", "x")
	assert.ErrorContains(t, err, "encode result")
	assert.Empty(t, strings.TrimSpace(out))
}

func TestDataInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	_, err := execute(t, "", "data", "init", "--data-folder", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "mini_weather_hmm.json"))
	assert.FileExists(t, filepath.Join(dir, "full_weather_sequences.yaml"))

	// The written examples must agree with the engine.
	out, err := execute(t, "", "evaluate", "--data-folder", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Passed: 2/2")

	_, err = execute(t, "", "data", "init", "--data-folder", dir)
	assert.NoError(t, err)
}
