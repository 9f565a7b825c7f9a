package main

import (
	"fmt"
	"os"

	decision "github.com/noiseOnTheNet/post010-binary-decision-tree"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature/yaml"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*treeCmdConfig
	dataInput    string
	output       string
	classFeature string
	features     []string
}

func growCmd(treeConfig *treeCmdConfig) *cobra.Command {
	config := &growCmdConfig{treeCmdConfig: treeConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a binary decision tree from a set of data to predict a certain categorical feature.`,
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
			inputFeatures, err := config.inputFeatures(features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			trainingSet, err := config.readTable(config.Context(), config.dataInput, features)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading training set: %v\n", err)
				os.Exit(4)
			}
			b := &decision.Builder{
				MaxDepth:    config.settings.Build.MaxDepth,
				MinNodeSize: config.settings.Build.MinNodeSize,
				Workers:     config.settings.Build.Workers,
				Logger:      config.logger,
			}
			config.Logf("Growing tree from a set with %d samples and %d features to predict %s ...", trainingSet.Count(), len(inputFeatures), config.classFeature)
			t, err := b.Build(config.Context(), trainingSet, inputFeatures, config.classFeature)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(5)
			}
			t.Missing = config.settings.MissingValuePolicy()
			config.Logf("Done")
			config.Logf("%v", t)
			err = config.outputTree(config.Context(), config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to use to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format, or store: to save it on the tree store (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the categorical feature the generated tree should predict (required)")
	cmd.Flags().StringSliceVar(&(config.features), "features", nil, "names of the features the tree may split on (defaults to every feature in the metadata but the class feature)")
	cmd.Flags().Int("max-depth", -1, "depth past which nodes are not split, the root being at depth 0 (negative for unlimited)")
	cmd.Flags().Int("min-node-size", 1, "minimum number of samples a node needs to be split")
	cmd.Flags().Int("workers", 1, "maximum number of goroutines growing subtrees at the same time")
	cmd.Flags().String("missing", "heavier", "policy the tree will follow for samples missing a split value: heavier or fail")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}

// inputFeatures returns the names of the features to split on
func (gcc *growCmdConfig) inputFeatures(features []feature.Feature) ([]string, error) {
	cf := feature.Find(features, gcc.classFeature)
	if cf == nil {
		return nil, fmt.Errorf("class feature '%s' is not defined", gcc.classFeature)
	}
	if _, ok := cf.(*feature.CategoricalFeature); !ok {
		return nil, fmt.Errorf("class feature '%s' is not categorical", gcc.classFeature)
	}
	if len(gcc.features) > 0 {
		for _, name := range gcc.features {
			if feature.Find(features, name) == nil {
				return nil, fmt.Errorf("feature '%s' is not defined", name)
			}
		}
		return gcc.features, nil
	}
	var names []string
	for _, name := range feature.Names(features) {
		if name != gcc.classFeature {
			names = append(names, name)
		}
	}
	return names, nil
}
