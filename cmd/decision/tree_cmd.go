package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/dataset"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/feature/yaml"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree/dot"
	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree/json"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	format        string
	ctx           context.Context
	cancelFunc    context.CancelFunc
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Manage decision trees",
		Long:  `Manage binary decision trees and use them to classify samples`,
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
			t, err := config.loadTree(config.Context(), config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			switch config.format {
			case "text":
				fmt.Println(t)
			case "json":
				err = json.WriteJSONTree(config.Context(), t, json.NewNodeEncodeDecoder(), os.Stdout)
			case "dot":
				var src string
				src, err = dot.Render(t, classNamer(features, t.Label))
				if err == nil {
					fmt.Println(src)
				}
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Tree with %d nodes, %d leaves and depth %d", t.NodeCount(), t.LeafCount(), t.Depth())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features used on a tree or available on an input set (required)")
	cmd.AddCommand(growCmd(config), testCmd(config), predictCmd(config))
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON, or store:ID to retrieve it from the tree store (required)")
	cmd.Flags().StringVarP(&(config.format), "format", "f", "text", "format to show the tree in: text, json or dot")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	switch tcc.format {
	case "text", "json", "dot":
	default:
		return fmt.Errorf("unknown format %q, valid ones are text, json and dot", tcc.format)
	}
	return nil
}

func (tcc *treeCmdConfig) setContextAndCancelFunc() {
	if tcc.ctx == nil {
		tcc.ctx, tcc.cancelFunc = context.WithCancel(context.Background())
	}
}

func (tcc *treeCmdConfig) Context() context.Context {
	tcc.setContextAndCancelFunc()
	return tcc.ctx
}

func (tcc *treeCmdConfig) ContextCancelFunc() context.CancelFunc {
	tcc.setContextAndCancelFunc()
	return tcc.cancelFunc
}

// classNamer names classes after the values of the label feature, if known
func classNamer(features []feature.Feature, label string) dot.ClassNamer {
	cf, _ := feature.Find(features, label).(*feature.CategoricalFeature)
	return func(c dataset.Code) string {
		if cf != nil {
			if v, err := cf.Decode(c); err == nil {
				return v
			}
		}
		return strconv.FormatUint(uint64(c), 10)
	}
}

func describePrediction(p *tree.Prediction, namer dot.ClassNamer) string {
	if p == nil {
		return "no prediction: the tree is empty"
	}
	return fmt.Sprintf("%s (confidence %.4f over %d samples)", namer(p.Class), p.Confidence, p.Weight)
}
