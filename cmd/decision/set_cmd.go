package main

import (
	"context"
	"fmt"
	"os"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature/yaml"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	setOutput     string
	ctx           context.Context
	cancelFunc    context.CancelFunc
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Manage sets of data: dump them from one storage into another, split them and inspect their split candidates`,
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
			config.Logf("Dumping input set with %d samples into output set...", input.Count())
			err = config.writeTable(config.Context(), config.setOutput, input, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the set (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input set (required)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.AddCommand(splitCmd(config), candidatesCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}

func (scc *setCmdConfig) Context() context.Context {
	scc.setContextAndCancelFunc()
	return scc.ctx
}

func (scc *setCmdConfig) ContextCancelFunc() context.CancelFunc {
	scc.setContextAndCancelFunc()
	return scc.cancelFunc
}

func (scc *setCmdConfig) setContextAndCancelFunc() {
	if scc.ctx == nil {
		scc.ctx, scc.cancelFunc = context.WithCancel(context.Background())
	}
}
