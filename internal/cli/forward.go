package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/happyhackingspace/hmm/internal/textutil"
	"github.com/spf13/cobra"
)

func (c *CLI) newForwardCommand() *cobra.Command {
	var mf modelFlags

	cmd := &cobra.Command{
		Use:   "forward [symbols...]",
		Short: "Print the likelihood of an observation sequence (Forward algorithm)",
		Example: `  hmm forward -m weather_hmm.json sunny rainy rainy
  echo "sunny,rainy" | hmm forward -m weather_hmm.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := readSymbols(cmd, args)
			if err != nil {
				return err
			}
			m, err := mf.load()
			if err != nil {
				return err
			}
			p, err := m.Forward(seq)
			if err != nil {
				return err
			}
			slog.Debug("Forward completed", "length", len(seq))
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	mf.register(cmd)
	return cmd
}

func (c *CLI) newViterbiCommand() *cobra.Command {
	var mf modelFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "viterbi [symbols...]",
		Short: "Print the most probable hidden-state path (Viterbi algorithm)",
		Example: `  hmm viterbi -m weather_hmm.json sunny rainy rainy
  hmm viterbi -m weather_hmm.json sunny rainy --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := readSymbols(cmd, args)
			if err != nil {
				return err
			}
			m, err := mf.load()
			if err != nil {
				return err
			}
			states, err := m.Viterbi(seq)
			if err != nil {
				return err
			}
			slog.Debug("Viterbi completed", "length", len(seq))

			if asJSON {
				output, err := json.Marshal(states)
				if err != nil {
					return fmt.Errorf("encode path: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), textutil.JoinStates(states))
			return nil
		},
	}

	mf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the path as a JSON array")
	return cmd
}
