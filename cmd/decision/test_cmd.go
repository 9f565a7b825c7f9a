package main

import (
	"fmt"
	"os"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature/yaml"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*treeCmdConfig
	treeInput string
	dataInput string
}

func testCmd(treeConfig *treeCmdConfig) *cobra.Command {
	config := &testCmdConfig{treeCmdConfig: treeConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := config.loadTree(config.Context(), config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			if cmd.Flags().Changed("missing") {
				t.Missing = config.settings.MissingValuePolicy()
			}
			testingSet, err := config.readTable(config.Context(), config.dataInput, features)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading testing set: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Testing tree against testset with %d samples...", testingSet.Count())
			successRate, errorCount, err := t.Test(config.Context(), testingSet, t.Label)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			fmt.Printf("%f success rate, failed to make a prediction for %d samples\n", successRate, errorCount)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to test the tree against (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON, or store:ID to retrieve it from the tree store (required)")
	cmd.Flags().String("missing", "heavier", "policy to follow for samples missing a split value, overriding the tree's: heavier or fail")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
