package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset/inputsample"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature/yaml"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/spf13/cobra"
)

const confidenceColumn = "confidence"

type predictCmdConfig struct {
	*treeCmdConfig
	treeInput      string
	dataInput      string
	output         string
	undefinedValue string
}

type stdoutFeatureValueRequester string

func predictCmd(treeConfig *treeCmdConfig) *cobra.Command {
	config := &predictCmdConfig{treeCmdConfig: treeConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a class for samples",
		Long: `Use the loaded tree to predict the class of a sample answering a reduced set of questions about its features,
or the classes of every sample of a set when an input is given`,
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
			if config.dataInput == "" {
				prediction, err := predict(t, features, config.undefinedValue)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				fmt.Printf("Predicted %s is %s\n", t.Label, describePrediction(prediction, classNamer(features, t.Label)))
				return
			}
			err = config.predictSet(config.Context(), t, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to use will be read and parsed as JSON, or store:ID to retrieve it from the tree store (required)")
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with samples to classify (defaults to asking for the values of a single sample)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the classified samples of the input (defaults to STDOUT in CSV)")
	cmd.Flags().StringVarP(&(config.undefinedValue), "undefined-value", "u", feature.UndefinedValue, "value to input to define a sample's value for a feature as undefined")
	cmd.Flags().String("missing", "heavier", "policy to follow for samples missing a split value, overriding the tree's: heavier or fail")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func predict(t *tree.Tree, features []feature.Feature, undefinedValue string) (*tree.Prediction, error) {
	sample := inputsample.New(os.Stdin, features, stdoutFeatureValueRequester(undefinedValue), undefinedValue)
	p, err := t.Predict(sample)
	if err == nil {
		err = sample.Err()
	}
	return p, err
}

/*
predictSet classifies every sample of the input set and writes it along
the predicted label and its confidence to the output. Samples the tree
cannot classify get undefined values for both.
*/
func (pcc *predictCmdConfig) predictSet(ctx context.Context, t *tree.Tree, features []feature.Feature) error {
	input, err := pcc.readTable(ctx, pcc.dataInput, features)
	if err != nil {
		return fmt.Errorf("reading input set: %w", err)
	}
	pcc.Logf("Classifying %d samples...", input.Count())
	codes := make([]dataset.Code, input.Count())
	present := make([]bool, input.Count())
	confidences := make([]float64, input.Count())
	var failed int
	for i := 0; i < input.Count(); i++ {
		confidences[i] = math.NaN()
		p, err := t.Predict(input.Sample(i))
		if err != nil && !errors.Is(err, tree.ErrMissingValue) {
			return fmt.Errorf("classifying sample %d: %w", i, err)
		}
		if p == nil {
			failed++
			continue
		}
		codes[i], present[i], confidences[i] = p.Class, true, p.Confidence
	}
	var columns []dataset.Column
	for _, name := range input.Columns() {
		if name == t.Label {
			continue
		}
		c, err := input.Column(name)
		if err != nil {
			return err
		}
		columns = append(columns, c)
	}
	columns = append(columns,
		dataset.NewCategoricalColumn(t.Label, codes, present),
		dataset.NewContinuousColumn(confidenceColumn, confidences),
	)
	output, err := dataset.New(columns...)
	if err != nil {
		return err
	}
	outputFeatures := make([]feature.Feature, 0, len(features)+1)
	for _, name := range output.Columns() {
		if name == confidenceColumn {
			outputFeatures = append(outputFeatures, feature.NewContinuousFeature(confidenceColumn))
			continue
		}
		if f := feature.Find(features, name); f != nil {
			outputFeatures = append(outputFeatures, f)
		}
	}
	pcc.Logf("Could not classify %d samples", failed)
	return pcc.writeTable(ctx, pcc.output, output, outputFeatures)
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	switch f := f.(type) {
	case *feature.CategoricalFeature:
		fmt.Printf("Please provide the sample's %s:\n(valid values are %v or %s if undefined)\n", f.Name(), f.AvailableValues(), string(sfvr))
	case *feature.ContinuousFeature:
		fmt.Printf("Please provide the sample's %s:\n(valid values are real numbers or %s if undefined)\n", f.Name(), string(sfvr))
	default:
		return fmt.Errorf("unknown feature type %T", f)
	}
	return nil
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value string) error {
	switch f := f.(type) {
	case *feature.CategoricalFeature:
		fmt.Printf("%v is not a valid value for the sample's %s. Please provide one of %v or %s if undefined.\n", value, f.Name(), f.AvailableValues(), string(sfvr))
	case *feature.ContinuousFeature:
		fmt.Printf("%v is not a valid value for the sample's %s. Please provide a real number or %s if undefined.\n", value, f.Name(), string(sfvr))
	default:
		return fmt.Errorf("unknown feature type %T", f)
	}
	return nil
}
