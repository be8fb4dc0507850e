package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func (c *CLI) newValidateCommand() *cobra.Command {
	var mf modelFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a model file for shape and probability errors",
		Args:  cobra.NoArgs,
		Example: `  hmm validate -m weather_hmm.json
  hmm validate -m weather_hmm.yaml --tolerance 1e-6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mf.strict = true
			m, err := mf.load()
			if err != nil {
				return err
			}
			slog.Info("Model is valid", "states", m.NumStates(), "symbols", m.NumSymbols())
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d hidden states, %d observation symbols\n", m.NumStates(), m.NumSymbols())
			return nil
		},
	}

	mf.register(cmd)
	_ = cmd.Flags().MarkHidden("strict")
	return cmd
}
