package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature/yaml"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, for instance to obtain a training and a testing set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.Logf("Reading features from metadata at %s...", config.metadataInput)
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Features from metadata read")
			input, err := config.readTable(config.Context(), config.setInput, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			if !cmd.Flags().Changed("seed") {
				config.seed = time.Now().UnixNano()
			}
			randomizer := rand.New(rand.NewSource(config.seed))
			toSplit := make([]bool, input.Count())
			for i := range toSplit {
				toSplit[i] = 100*randomizer.Float32() <= float32(config.splitProbability)
			}
			output := input.Filter(func(row int) bool { return !toSplit[row] })
			split := input.Filter(func(row int) bool { return toSplit[row] })
			err = config.writeTable(config.Context(), config.setOutput, output, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			err = config.writeTable(config.Context(), config.splitOutput, split, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Done")
			config.Logf("Input set with %d samples was split into sets with %d and %d samples", input.Count(), output.Count(), split.Count())
		},
	}
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the split set (required)")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the assignment of samples to sets (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}
