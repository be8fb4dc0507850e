package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/happyhackingspace/hmm"
	"github.com/happyhackingspace/hmm/internal/textutil"
	"github.com/happyhackingspace/hmm/markov"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

// modelEnv names the environment variable consulted when --model is not set.
const modelEnv = "HMM_MODEL"

// modelFlags are the model-loading flags shared by the decoding commands.
type modelFlags struct {
	path      string
	strict    bool
	tolerance float64
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "model", "m", "", "Model file or http(s) URL (default: $"+modelEnv+")")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject models whose prior or rows are not probability distributions")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", 1e-9, "Row-sum tolerance used by --strict")
}

func (f *modelFlags) load() (*markov.Model, error) {
	ref := f.path
	if ref == "" {
		ref = os.Getenv(modelEnv)
	}
	if ref == "" {
		return nil, fmt.Errorf("no model given: use --model or set %s", modelEnv)
	}

	start := time.Now()
	m, err := loadModel(ref)
	if err != nil {
		return nil, err
	}
	slog.Debug("Model loaded", "model", ref, "states", m.NumStates(), "symbols", m.NumSymbols(), "duration", time.Since(start))

	if f.strict {
		if err := m.Validate(f.tolerance); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (c *CLI) newDecodeCommand() *cobra.Command {
	var mf modelFlags
	var asJSON, trellis bool

	cmd := &cobra.Command{
		Use:   "decode [symbols...]",
		Short: "Compute the likelihood and the most probable hidden path of a sequence",
		Example: `  # Symbols as arguments
  hmm decode --model weather_hmm.json sunny rainy rainy

  # Comma separated
  hmm decode -m weather_hmm.json sunny,rainy,rainy

  # Pipe a sequence on stdin
  echo "sunny rainy rainy" | hmm decode -m weather_hmm.json

  # Model from a URL, JSON output with the forward trellis
  hmm decode -m https://example.org/weather_hmm.yaml sunny rainy --json --trellis`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := readSymbols(cmd, args)
			if err != nil {
				return err
			}
			m, err := mf.load()
			if err != nil {
				return err
			}

			start := time.Now()
			r, err := hmm.Decode(m, seq)
			if err != nil {
				return err
			}
			slog.Debug("Sequence decoded", "length", len(seq), "duration", time.Since(start))

			var alpha [][]float64
			if trellis {
				a, err := m.Alpha(seq)
				if err != nil {
					return err
				}
				alpha = denseRows(a)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				output, err := json.MarshalIndent(struct {
					Observations []string `json:"observations"`
					*hmm.Result
					Alpha [][]float64 `json:"alpha,omitempty"`
				}{seq, r, alpha}, "", "  ")
				if err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
				fmt.Fprintln(out, string(output))
				return nil
			}

			fmt.Fprintf(out, "Likelihood: %g\n", r.Likelihood)
			fmt.Fprintf(out, "Best path:  %s\n", textutil.JoinStates(r.States))
			fmt.Fprintf(out, "Path probability: %g\n", r.PathProb)
			if trellis {
				printTrellis(out, m.HiddenStates(), alpha)
			}
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON output")
	cmd.Flags().BoolVar(&trellis, "trellis", false, "Also print the forward trellis")
	return cmd
}

func denseRows(a *mat.Dense) [][]float64 {
	r, _ := a.Dims()
	rows := make([][]float64, r)
	for i := range r {
		rows[i] = append([]float64(nil), a.RawRowView(i)...)
	}
	return rows
}

func printTrellis(w io.Writer, states []string, alpha [][]float64) {
	fmt.Fprintf(w, "\nForward trellis (rows=states, cols=time):\n")
	for i, row := range alpha {
		fmt.Fprintf(w, "%10s", states[i])
		for _, v := range row {
			fmt.Fprintf(w, "  %.4e", v)
		}
		fmt.Fprintln(w)
	}
}

// readSymbols takes the observation sequence from args, or from stdin when
// no args are given and stdin is not a terminal.
func readSymbols(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return textutil.SplitSymbols(strings.Join(args, " ")), nil
	}

	in := cmd.InOrStdin()
	if in == os.Stdin && isStdinTerminal() {
		return nil, fmt.Errorf("no observation sequence given")
	}
	slog.Debug("Reading sequence from stdin")
	body, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	seq := textutil.SplitSymbols(string(body))
	if len(seq) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}
	return seq, nil
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func loadModel(ref string) (*markov.Model, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return hmm.Load(ref)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parse model URL: %w", err)
	}
	slog.Debug("Fetching model", "url", ref)
	resp, err := http.Get(ref)
	if err != nil {
		return nil, fmt.Errorf("fetch model: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch model: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	ext := path.Ext(u.Path)
	if ext == "" {
		ext = ".json"
	}
	return hmm.LoadBytes(body, ext)
}
