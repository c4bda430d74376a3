// Package recipe loads conda-style recipe metadata (meta.yaml), discovers
// recipes under a directory tree, and sorts them into build order.
package recipe

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/condatools/buildmatrix/internal/dag"
	"github.com/condatools/buildmatrix/pkg/matrix"
)

// MetaFileName is the recipe metadata file looked for in each directory.
const MetaFileName = "meta.yaml"

// Recipe is the parsed metadata of one recipe directory.
type Recipe struct {
	// Name is the package name.
	Name string
	// Version is the package version.
	Version string
	// Noarch marks the package as interpreter-version-independent.
	Noarch bool
	// BuildRequirements are the raw build dependency lines.
	BuildRequirements []string
	// RunRequirements are the raw run dependency lines.
	RunRequirements []string
	// Dir is the recipe directory the metadata was loaded from.
	Dir string
}

// metaYAML mirrors the meta.yaml layout.
type metaYAML struct {
	Package struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"package"`
	Build struct {
		Noarch string `yaml:"noarch"`
	} `yaml:"build"`
	Requirements struct {
		Build []string `yaml:"build"`
		Run   []string `yaml:"run"`
	} `yaml:"requirements"`
}

// Load reads the recipe metadata from dir/meta.yaml.
func Load(dir string) (*Recipe, error) {
	path := filepath.Join(dir, MetaFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}
	var meta metaYAML
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if meta.Package.Name == "" {
		return nil, fmt.Errorf("recipe %s: package name is required", path)
	}
	return &Recipe{
		Name:              meta.Package.Name,
		Version:           meta.Package.Version,
		Noarch:            meta.Build.Noarch != "",
		BuildRequirements: meta.Requirements.Build,
		RunRequirements:   meta.Requirements.Run,
		Dir:               dir,
	}, nil
}

// Metadata converts the recipe into the slice the matrix builder consumes.
func (r *Recipe) Metadata() matrix.Metadata {
	return matrix.Metadata{
		Name:              r.Name,
		Version:           r.Version,
		Noarch:            r.Noarch,
		BuildRequirements: r.BuildRequirements,
		RunRequirements:   r.RunRequirements,
	}
}

// Discover walks root looking for directories containing a meta.yaml and
// loads each one. maxDepth bounds how many directory levels below root to
// look (1 means immediate children); a value <= 0 recurses indefinitely.
// The returned order is unspecified; use SortDependencyOrder.
func Discover(root string, maxDepth int) ([]*Recipe, error) {
	root = filepath.Clean(root)
	var recipes []*Recipe
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		depth := 0
		if rel != "." {
			depth = strings.Count(rel, string(os.PathSeparator)) + 1
		}
		if maxDepth > 0 && depth > maxDepth {
			return filepath.SkipDir
		}
		if _, err := os.Stat(filepath.Join(path, MetaFileName)); err != nil {
			return nil
		}
		r, err := Load(path)
		if err != nil {
			return err
		}
		recipes = append(recipes, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SortDependencyOrder returns the recipes sorted so that dependencies build
// before their dependents. Only dependencies naming another recipe in the set
// participate; a cycle among them is an error.
func SortDependencyOrder(recipes []*Recipe) ([]*Recipe, error) {
	byName := make(map[string]*Recipe, len(recipes))
	graph := dag.New()
	for _, r := range recipes {
		byName[r.Name] = r
	}
	for _, r := range recipes {
		var deps []string
		for _, line := range append(append([]string{}, r.BuildRequirements...), r.RunRequirements...) {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if _, buildable := byName[fields[0]]; buildable {
				deps = append(deps, fields[0])
			}
		}
		graph.Add(r.Name, deps...)
	}

	order, err := graph.Sort()
	if err != nil {
		return nil, err
	}
	sorted := make([]*Recipe, 0, len(recipes))
	for _, name := range order {
		sorted = append(sorted, byName[name])
	}
	return sorted, nil
}
