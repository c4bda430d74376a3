// Package config loads buildmatrix project configuration from
// buildmatrix.yaml, environment variables and command-line flags.
package config

// Config holds the resolved configuration for a buildmatrix invocation.
type Config struct {
	// RecipesDir is the directory searched for recipes.
	RecipesDir string `koanf:"recipes_dir"`
	// MaxRecipeDepth bounds recipe discovery; <= 0 recurses indefinitely.
	MaxRecipeDepth int `koanf:"max_recipe_depth"`
	// Repodata is the path to the channel snapshot (repodata.json).
	Repodata string `koanf:"repodata"`
	// Interpreter is the runtime dependency name treated specially.
	Interpreter string `koanf:"interpreter"`
	// Numerics is the ABI-sensitive dependency name treated specially.
	Numerics string `koanf:"numerics"`
	// Conditions are extra matrix conditions (e.g. "python 2.7*").
	Conditions []string `koanf:"conditions"`
	// MaxNMajorVersions keeps only the newest N major versions per
	// dependency (0 = unlimited).
	MaxNMajorVersions int `koanf:"max_n_major_versions"`
	// MaxNMinorVersions keeps only the newest N minor versions per major
	// version (0 = unlimited).
	MaxNMinorVersions int `koanf:"max_n_minor_versions"`
	// Output selects the rendering format (table or json).
	Output string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Defaults: recipes from the working directory, python/numpy special-casing,
// and the two newest major and minor versions retained.
const (
	DefaultRecipesDir        = "."
	DefaultInterpreter       = "python"
	DefaultNumerics          = "numpy"
	DefaultMaxNMajorVersions = 2
	DefaultMaxNMinorVersions = 2
	DefaultOutput            = "table"
)
