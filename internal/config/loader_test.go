package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultRecipesDir, cfg.RecipesDir)
	assert.Equal(t, DefaultInterpreter, cfg.Interpreter)
	assert.Equal(t, DefaultNumerics, cfg.Numerics)
	assert.Equal(t, DefaultMaxNMajorVersions, cfg.MaxNMajorVersions)
	assert.Equal(t, DefaultMaxNMinorVersions, cfg.MaxNMinorVersions)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
recipes_dir: ./recipes
repodata: ./repodata.json
interpreter: pypy
max_n_major_versions: 1
conditions:
  - "python >=3"
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "./recipes", cfg.RecipesDir)
	assert.Equal(t, "./repodata.json", cfg.Repodata)
	assert.Equal(t, "pypy", cfg.Interpreter)
	assert.Equal(t, 1, cfg.MaxNMajorVersions)
	assert.Equal(t, []string{"python >=3"}, cfg.Conditions)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultNumerics, cfg.Numerics)
	assert.Equal(t, DefaultMaxNMinorVersions, cfg.MaxNMinorVersions)
}

func TestLoad_ConfigFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interpreter: pypy\n"), 0o644))
	t.Setenv("BUILDMATRIX_INTERPRETER", "python")
	t.Setenv("BUILDMATRIX_OUTPUT", "json")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "python", cfg.Interpreter)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BUILDMATRIX_RECIPES_DIR", "/from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("recipes-dir", DefaultRecipesDir, "")
	flags.Int("max-n-minor-versions", DefaultMaxNMinorVersions, "")
	require.NoError(t, flags.Parse([]string{"--recipes-dir", "/from-flag", "--max-n-minor-versions", "3"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "/from-flag", cfg.RecipesDir)
	assert.Equal(t, 3, cfg.MaxNMinorVersions)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildmatrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interpreter: pypy\n"), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("interpreter", DefaultInterpreter, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "pypy", cfg.Interpreter)
}

func TestFindConfigFile(t *testing.T) {
	assert.Equal(t, "explicit.yaml", findConfigFile("explicit.yaml"))

	dir := t.TempDir()
	t.Chdir(dir)
	assert.Empty(t, findConfigFile(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), nil, 0o644))
	assert.Equal(t, ConfigFileNameAlt, findConfigFile(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), nil, 0o644))
	assert.Equal(t, ConfigFileName, findConfigFile(""))
}
