package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/happyhackingspace/hmm"
	"github.com/happyhackingspace/hmm/internal/textutil"
	"github.com/spf13/cobra"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var dataFolder string
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Check Forward and Viterbi against the expected results in a data folder",
		Example: `  hmm evaluate --data-folder data
  hmm evaluate --data-folder testdata --tolerance 1e-9 -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(tolerance > 0) {
				return fmt.Errorf("--tolerance must be positive, got %v", tolerance)
			}
			slog.Info("Evaluating", "data-folder", dataFolder, "tolerance", tolerance)
			cfg := &hmm.EvalConfig{Tolerance: tolerance}
			if !c.silent {
				cfg.Progress = os.Stderr
			}

			start := time.Now()
			result, err := hmm.Evaluate(dataFolder, cfg)
			if err != nil {
				return err
			}
			slog.Debug("Evaluation completed", "duration", time.Since(start))

			out := cmd.OutOrStdout()
			printCaseReport(out, result)

			total := len(result.Cases)
			fmt.Fprintf(out, "\nPassed: %d/%d", result.Passed, total)
			if result.PathTotal > 0 {
				fmt.Fprintf(out, "  Viterbi paths: %d/%d", result.PathCorrect, result.PathTotal)
			}
			if result.LikelihoodTotal > 0 {
				fmt.Fprintf(out, "  Likelihoods: %d/%d", result.LikelihoodCorrect, result.LikelihoodTotal)
			}
			fmt.Fprintln(out)

			if result.Passed != total {
				return fmt.Errorf("%d of %d cases did not pass", total-result.Passed, total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFolder, "data-folder", "data", "Path to the folder of <case>_hmm / <case>_sequences files")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "Relative tolerance for expected likelihoods")
	return cmd
}

func printCaseReport(w io.Writer, result *hmm.EvalResult) {
	fmt.Fprintf(w, "%-20s  %-6s  %-14s  %s\n", "case", "status", "likelihood", "path")
	for _, cr := range result.Cases {
		if cr.Err != nil {
			fmt.Fprintf(w, "%-20s  %-6s  %v\n", cr.Name, "ERROR", cr.Err)
			continue
		}
		status := "ok"
		if !cr.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%-20s  %-6s  %-14.6e  %s\n", cr.Name, status, cr.Result.Likelihood, textutil.JoinStates(cr.Result.States))
		if !cr.PathMatch {
			fmt.Fprintf(w, "%-20s  %-6s  %-14s  %s\n", "", "", "expected", textutil.JoinStates(cr.ExpectedStates))
		}
		if !cr.LikelihoodMatch {
			fmt.Fprintf(w, "%-20s  %-6s  %-14.6e\n", "", "", *cr.ExpectedLikelihood)
		}
	}
}
