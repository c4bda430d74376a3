package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names looked for in the working directory.
const (
	ConfigFileName    = "buildmatrix.yaml"
	ConfigFileNameAlt = "buildmatrix.yml"
)

// findConfigFile returns the config file to use: the explicit path if given,
// otherwise buildmatrix.yaml or buildmatrix.yml in the working directory.
// Empty means no config file.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves the configuration. Precedence, lowest to highest: built-in
// defaults, config file, BUILDMATRIX_* environment variables, explicitly set
// command-line flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"recipes_dir":          DefaultRecipesDir,
		"interpreter":          DefaultInterpreter,
		"numerics":             DefaultNumerics,
		"max_n_major_versions": DefaultMaxNMajorVersions,
		"max_n_minor_versions": DefaultMaxNMinorVersions,
		"output":               DefaultOutput,
		"verbose":              false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configFile := findConfigFile(cfgFile); configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// BUILDMATRIX_RECIPES_DIR -> recipes_dir
	if err := k.Load(env.Provider("BUILDMATRIX_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "BUILDMATRIX_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// kebab-case flags map onto snake_case config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
