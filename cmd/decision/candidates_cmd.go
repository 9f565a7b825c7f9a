package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	decision "github.com/noiseOnTheNet/post010-binary-decision-tree"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature/yaml"
	"github.com/spf13/cobra"
)

type candidatesCmdConfig struct {
	*setCmdConfig
	classFeature string
	report       string
}

func candidatesCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &candidatesCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Report the split candidates of a set",
		Long: `Report every split candidate of the continuous features of a set to predict a class feature
with its weighted Gini impurity, and the best of them`,
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
			input, err := config.readTable(config.Context(), config.setInput, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			var names []string
			for _, name := range feature.Names(features) {
				if name != config.classFeature {
					names = append(names, name)
				}
			}
			gini, err := decision.TableGini(input, config.classFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			all, err := decision.AllSplitCandidates(input, names, config.classFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			err = config.writeReport(names, all)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			best, ok := decision.BestOf(names, all)
			fmt.Printf("Gini impurity of the set is %f\n", gini)
			if !ok {
				fmt.Println("The set has no split candidates")
				return
			}
			fmt.Printf("Best split is %v\n", best)
		},
	}
	cmd.Flags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the categorical feature to predict (required)")
	cmd.Flags().StringVarP(&(config.report), "report", "r", "", "path to a CSV file to write every candidate with its metric to (defaults to STDOUT)")
	return cmd
}

func (ccc *candidatesCmdConfig) Validate() error {
	if ccc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if ccc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}

func (ccc *candidatesCmdConfig) writeReport(names []string, all map[string][]decision.SplitCandidate) error {
	var w io.Writer = os.Stdout
	if ccc.report != "" {
		f, err := os.Create(ccc.report)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeCandidates(w, names, all)
}

// writeCandidates writes a feature,split,metric CSV row per candidate
func writeCandidates(w io.Writer, names []string, all map[string][]decision.SplitCandidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"feature", "split", "metric"}); err != nil {
		return err
	}
	for _, name := range names {
		for _, sc := range all[name] {
			record := []string{
				sc.Feature,
				strconv.FormatFloat(sc.Split, 'g', -1, 64),
				strconv.FormatFloat(sc.Metric, 'g', -1, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
