/*
Package config loads the settings of the decision tool from defaults, an
optional configuration file (YAML, TOML or JSON), DECISION_ prefixed
environment variables and command line flags, in increasing order of
precedence.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding settings
const EnvPrefix = "DECISION"

type Config struct {
	Build   BuildConf
	Predict PredictConf
	Log     LogConf
	Store   StoreConf
}

type BuildConf struct {
	MaxDepth    int
	MinNodeSize int
	Workers     int
}

type PredictConf struct {
	Missing string
}

type LogConf struct {
	Level string
}

type StoreConf struct {
	RedisAddr string
	RedisDB   int
	Prefix    string
}

// flagKeys maps command line flag names to setting keys
var flagKeys = map[string]string{
	"max-depth":     "build.maxdepth",
	"min-node-size": "build.minnodesize",
	"workers":       "build.workers",
	"missing":       "predict.missing",
	"log-level":     "log.level",
	"redis-addr":    "store.redisaddr",
	"redis-db":      "store.redisdb",
	"redis-prefix":  "store.prefix",
}

func defaults(v *viper.Viper) {
	v.SetDefault("build.maxdepth", -1)
	v.SetDefault("build.minnodesize", 1)
	v.SetDefault("build.workers", 1)
	v.SetDefault("predict.missing", tree.RouteToHeavier.String())
	v.SetDefault("log.level", "info")
	v.SetDefault("store.redisaddr", "")
	v.SetDefault("store.redisdb", 0)
	v.SetDefault("store.prefix", "decision")
}

/*
Load takes the path to a configuration file, which may be empty to skip
it, and a flag set, which may be nil, and returns the resulting
configuration or an error if the file cannot be read or the
configuration is not valid. Only flags that were set on the command line
override other sources.
*/
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate returns an error describing the first invalid setting
func (c *Config) Validate() error {
	if c.Build.MinNodeSize < 0 {
		return fmt.Errorf("build.minNodeSize must not be negative, got %d", c.Build.MinNodeSize)
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must not be negative, got %d", c.Build.Workers)
	}
	if _, err := tree.ParseMissingValuePolicy(c.Predict.Missing); err != nil {
		return fmt.Errorf("predict.missing: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Store.RedisDB < 0 {
		return fmt.Errorf("store.redisDB must not be negative, got %d", c.Store.RedisDB)
	}
	return nil
}

// MissingValuePolicy returns the parsed predict.missing setting
func (c *Config) MissingValuePolicy() tree.MissingValuePolicy {
	p, _ := tree.ParseMissingValuePolicy(c.Predict.Missing)
	return p
}
