package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/happyhackingspace/hmm/internal/storage"
	"github.com/happyhackingspace/hmm/markov"
	"github.com/spf13/cobra"
)

type exampleCase struct {
	name     string
	ext      string
	model    markov.Params
	sequence storage.SequenceFile
}

func exampleCases() []exampleCase {
	miniP := 0.019440512
	fullP := 8.804005362997355e-09
	return []exampleCase{
		{
			name: "mini_weather",
			ext:  ".json",
			model: markov.Params{
				ObservationStates: []string{"sunny", "rainy"},
				HiddenStates:      []string{"hot", "cold"},
				Prior:             []float64{0.67, 0.33},
				Transition:        [][]float64{{0.7, 0.3}, {0.4, 0.6}},
				Emission:          [][]float64{{0.8, 0.2}, {0.4, 0.6}},
			},
			sequence: storage.SequenceFile{
				Observations:       []string{"sunny", "rainy", "rainy", "sunny", "rainy"},
				BestHiddenStates:   []string{"hot", "cold", "cold", "cold", "cold"},
				ForwardProbability: &miniP,
			},
		},
		{
			name: "full_weather",
			ext:  ".yaml",
			model: markov.Params{
				ObservationStates: []string{"sunny", "cloudy", "rainy", "snowy"},
				HiddenStates:      []string{"hot", "temperate", "cool", "freezing"},
				Prior:             []float64{0.3, 0.35, 0.25, 0.1},
				Transition: [][]float64{
					{0.5, 0.3, 0.15, 0.05},
					{0.2, 0.45, 0.25, 0.1},
					{0.1, 0.25, 0.45, 0.2},
					{0.05, 0.15, 0.3, 0.5},
				},
				Emission: [][]float64{
					{0.7, 0.2, 0.1, 0.0},
					{0.35, 0.4, 0.2, 0.05},
					{0.1, 0.35, 0.4, 0.15},
					{0.05, 0.2, 0.25, 0.5},
				},
			},
			sequence: storage.SequenceFile{
				Observations: []string{
					"sunny", "sunny", "cloudy", "rainy", "rainy", "cloudy", "snowy",
					"snowy", "rainy", "cloudy", "sunny", "cloudy", "rainy", "snowy",
				},
				BestHiddenStates: []string{
					"hot", "hot", "temperate", "cool", "cool", "cool", "freezing",
					"freezing", "cool", "temperate", "temperate", "temperate", "cool", "freezing",
				},
				ForwardProbability: &fullP,
			},
		},
	}
}

func (c *CLI) newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage example model and sequence files",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	var dataFolder string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the example weather models and sequences to a data folder",
		Example: `  hmm data init
  hmm data init --data-folder data && hmm evaluate --data-folder data`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dataInit(dataFolder, force)
		},
	}
	initCmd.Flags().StringVar(&dataFolder, "data-folder", "data", "Destination folder")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	dataCmd.AddCommand(initCmd)
	return dataCmd
}

func dataInit(dataFolder string, force bool) error {
	if err := os.MkdirAll(dataFolder, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dataFolder, err)
	}

	count := 0
	for _, ex := range exampleCases() {
		modelPath := filepath.Join(dataFolder, ex.name+"_hmm"+ex.ext)
		seqPath := filepath.Join(dataFolder, ex.name+"_sequences"+ex.ext)
		if !force && (exists(modelPath) || exists(seqPath)) {
			slog.Warn("Skipping existing example", "case", ex.name, "folder", dataFolder)
			continue
		}
		if err := storage.WriteModel(modelPath, ex.model); err != nil {
			return fmt.Errorf("write %s: %w", modelPath, err)
		}
		if err := storage.WriteSequence(seqPath, ex.sequence); err != nil {
			return fmt.Errorf("write %s: %w", seqPath, err)
		}
		count++
	}
	slog.Info("Examples written", "cases", count, "folder", dataFolder)
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
