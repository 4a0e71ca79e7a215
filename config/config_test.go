package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	assert.Nil(t, c.Validate())
	assert.Equal(t, "data/TFSP", c.Storage.OutputDir)
	assert.Equal(t, InfPolicySkip, c.Search.InfPolicy)
	assert.Equal(t, 10.0, c.Search.InitialKappa)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Configuration)
	}{
		{"env", func(c *Configuration) { c.Env = "qa" }},
		{"driver", func(c *Configuration) { c.Storage.Driver = "ftp" }},
		{"bucket", func(c *Configuration) { c.Storage.Driver = StorageGCS }},
		{"inf policy", func(c *Configuration) { c.Search.InfPolicy = "drop" }},
		{"kappa", func(c *Configuration) { c.Search.InitialKappa = 0 }},
		{"iterations", func(c *Configuration) { c.Search.MaxIterations = 0 }},
		{"workers", func(c *Configuration) { c.Workers = 0 }},
		{"jar", func(c *Configuration) { c.Kernel.SPMFJar = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			assert.NotNil(t, c.Validate())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.json")
	require.Nil(t, os.WriteFile(configFile,
		[]byte(`{"workers": 3, "storage": {"output_dir": "out"}, "search": {"max_iterations": 7}}`), 0644))
	dotEnv := filepath.Join(dir, ".env")
	require.Nil(t, os.WriteFile(dotEnv, []byte("TFSP_SEARCH_INF_POLICY=legacy\n"), 0644))
	t.Setenv("TFSP_KERNEL_NATIVE", "true")
	t.Setenv("TFSP_SEARCH_INF_POLICY", "")
	os.Unsetenv("TFSP_SEARCH_INF_POLICY")

	c, err := Load(configFile, dotEnv)
	require.Nil(t, err)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "out", c.Storage.OutputDir)
	assert.Equal(t, 7, c.Search.MaxIterations)
	assert.Equal(t, InfPolicyLegacy, c.Search.InfPolicy)
	assert.True(t, c.Kernel.Native)
	assert.Equal(t, "src/spmf.jar", c.Kernel.SPMFJar)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.NotNil(t, err)
}

func TestLoadWithFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	require.Nil(t, fs.Parse([]string{"--dotenv=", "--output_dir=results", "--num_routines=4", "--native", "--seed=9"}))

	c, err := LoadWithFlags(fs, f, "test_app")
	require.Nil(t, err)
	assert.Equal(t, "test_app", c.AppName)
	assert.Equal(t, "results", c.Storage.OutputDir)
	assert.Equal(t, 4, c.Workers)
	assert.True(t, c.Kernel.Native)
	assert.Equal(t, int64(9), c.Search.Seed)
	// Unset flags keep the loaded values.
	assert.Equal(t, 64, c.Search.MaxIterations)
	assert.Equal(t, 0, c.Kernel.TimeoutSeconds)
}

func TestInitConf(t *testing.T) {
	c := Default()
	require.Nil(t, InitConf(c))
	assert.Equal(t, c, GetConfig())
	assert.True(t, IsDevelopment())

	bad := Default()
	bad.Workers = 0
	assert.NotNil(t, InitConf(bad))
	assert.NotNil(t, InitConf(nil))
}
