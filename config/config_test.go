package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/noiseOnTheNet/post010-binary-decision-tree/tree"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	conf, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, -1, conf.Build.MaxDepth)
	assert.Equal(t, 1, conf.Build.MinNodeSize)
	assert.Equal(t, 1, conf.Build.Workers)
	assert.Equal(t, "info", conf.Log.Level)
	assert.Equal(t, "decision", conf.Store.Prefix)
	assert.Equal(t, tree.RouteToHeavier, conf.MissingValuePolicy())
}

func writeConfig(t *testing.T, name, content string) string {
	dir, err := ioutil.TempDir("", "config")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "decision.yml", `
build:
  maxDepth: 4
  workers: 3
predict:
  missing: fail
store:
  redisAddr: localhost:6379
`)
	conf, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, conf.Build.MaxDepth)
	assert.Equal(t, 3, conf.Build.Workers)
	assert.Equal(t, 1, conf.Build.MinNodeSize)
	assert.Equal(t, tree.FailOnMissing, conf.MissingValuePolicy())
	assert.Equal(t, "localhost:6379", conf.Store.RedisAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(os.TempDir(), "no-such-decision-config.yml"), nil)
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "decision.yml", "build:\n  maxDepth: 4\n")
	t.Setenv("DECISION_BUILD_MAXDEPTH", "7")
	conf, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, conf.Build.MaxDepth)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DECISION_BUILD_MINNODESIZE", "5")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("min-node-size", 1, "")
	flags.Int("max-depth", -1, "")
	require.NoError(t, flags.Parse([]string{"--min-node-size=9"}))

	conf, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 9, conf.Build.MinNodeSize)
	assert.Equal(t, -1, conf.Build.MaxDepth)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Build:   BuildConf{MaxDepth: -1, MinNodeSize: 1, Workers: 1},
			Predict: PredictConf{Missing: "heavier"},
			Log:     LogConf{Level: "info"},
		}
	}
	assert.NoError(t, valid().Validate())

	c := valid()
	c.Build.MinNodeSize = -1
	assert.Error(t, c.Validate())

	c = valid()
	c.Build.Workers = -2
	assert.Error(t, c.Validate())

	c = valid()
	c.Predict.Missing = "guess"
	assert.Error(t, c.Validate())

	c = valid()
	c.Log.Level = "loud"
	assert.Error(t, c.Validate())

	c = valid()
	c.Store.RedisDB = -1
	assert.Error(t, c.Validate())
}
