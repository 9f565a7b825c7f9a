package main

import (
	"os"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string
	relation   string
	maxDBConns int
	settings   *config.Config
	logger     *logrus.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootConfig := &rootCmdConfig{logger: newLogger()}
	rootCmd := &cobra.Command{
		Use:   "decision",
		Short: "decision is a tool to grow binary decision trees",
		Long:  `A tool to grow binary classification trees from your data, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rootConfig.load(cmd)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(rootConfig.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.PersistentFlags().StringVar(&(rootConfig.configPath), "config", "", "path to a YAML, TOML or JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&(rootConfig.relation), "relation", "samples", "name of the table or collection holding the data on SQL and MongoDB inputs and outputs")
	rootCmd.PersistentFlags().IntVar(&(rootConfig.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	rootCmd.PersistentFlags().String("log-level", "info", "level of the logs emitted: panic, fatal, error, warn, info, debug or trace")
	rootCmd.PersistentFlags().String("redis-addr", "", "address of the redis server to store trees in, required to use store:ID tree references")
	rootCmd.PersistentFlags().Int("redis-db", 0, "redis database to store trees in")
	rootCmd.PersistentFlags().String("redis-prefix", "decision", "prefix of the redis keys for stored trees")
	rootCmd.AddCommand(versionCmd(), treeCmd(rootConfig), setCmd(rootConfig))
	return rootCmd
}

func (rc *rootCmdConfig) load(cmd *cobra.Command) error {
	settings, err := config.Load(rc.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	rc.settings = settings
	level, _ := logrus.ParseLevel(settings.Log.Level)
	if rc.verbose {
		level = logrus.DebugLevel
	}
	rc.logger.SetLevel(level)
	return nil
}
