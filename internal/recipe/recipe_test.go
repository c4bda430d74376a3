package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecipe(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetaFileName), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
package:
  name: scipy
  version: "1.11.2"
requirements:
  build:
    - python
    - numpy x.x
  run:
    - python
    - numpy x.x
`)

	r, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "scipy", r.Name)
	assert.Equal(t, "1.11.2", r.Version)
	assert.False(t, r.Noarch)
	assert.Equal(t, []string{"python", "numpy x.x"}, r.BuildRequirements)
	assert.Equal(t, []string{"python", "numpy x.x"}, r.RunRequirements)
	assert.Equal(t, dir, r.Dir)
}

func TestLoad_Noarch(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
package:
  name: tqdm
  version: "4.66.0"
build:
  noarch: python
`)

	r, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, r.Noarch)
}

func TestLoad_MissingName(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, `
package:
  version: "1.0"
`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package name is required")
}

func TestLoad_NoMetaFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "package: [not: valid\n")

	_, err := Load(dir)
	require.Error(t, err)
}

func TestMetadata(t *testing.T) {
	r := &Recipe{
		Name:              "pkg",
		Version:           "2.0",
		Noarch:            true,
		BuildRequirements: []string{"python"},
		RunRequirements:   []string{"python", "six"},
	}

	meta := r.Metadata()
	assert.Equal(t, "pkg", meta.Name)
	assert.Equal(t, "2.0", meta.Version)
	assert.True(t, meta.Noarch)
	assert.Equal(t, []string{"python"}, meta.BuildRequirements)
	assert.Equal(t, []string{"python", "six"}, meta.RunRequirements)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, filepath.Join(root, "alpha"), "package: {name: alpha, version: \"1.0\"}\n")
	writeRecipe(t, filepath.Join(root, "nested", "beta"), "package: {name: beta, version: \"1.0\"}\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	recipes, err := Discover(root, 0)
	require.NoError(t, err)

	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
}

func TestDiscover_MaxDepth(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, filepath.Join(root, "alpha"), "package: {name: alpha, version: \"1.0\"}\n")
	writeRecipe(t, filepath.Join(root, "nested", "beta"), "package: {name: beta, version: \"1.0\"}\n")

	recipes, err := Discover(root, 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "alpha", recipes[0].Name)
}

func TestDiscover_MaxDepthRelativeRoot(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, filepath.Join(root, "alpha"), "package: {name: alpha, version: \"1.0\"}\n")
	writeRecipe(t, filepath.Join(root, "nested", "beta"), "package: {name: beta, version: \"1.0\"}\n")
	t.Chdir(root)

	recipes, err := Discover(".", 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "alpha", recipes[0].Name)
}

func TestDiscover_RecipeAtRoot(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, root, "package: {name: solo, version: \"1.0\"}\n")

	recipes, err := Discover(root, 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "solo", recipes[0].Name)
}

func TestDiscover_BadRecipeSurfacesError(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, filepath.Join(root, "broken"), "package: {version: \"1.0\"}\n")

	_, err := Discover(root, 0)
	require.Error(t, err)
}

func TestSortDependencyOrder(t *testing.T) {
	app := &Recipe{Name: "app", RunRequirements: []string{"lib >=1.0", "requests"}}
	lib := &Recipe{Name: "lib", BuildRequirements: []string{"base"}}
	base := &Recipe{Name: "base"}

	sorted, err := SortDependencyOrder([]*Recipe{app, lib, base})
	require.NoError(t, err)

	pos := make(map[string]int, len(sorted))
	for i, r := range sorted {
		pos[r.Name] = i
	}
	assert.Less(t, pos["base"], pos["lib"])
	assert.Less(t, pos["lib"], pos["app"])
}

func TestSortDependencyOrder_Cycle(t *testing.T) {
	a := &Recipe{Name: "a", RunRequirements: []string{"b"}}
	b := &Recipe{Name: "b", RunRequirements: []string{"a"}}

	_, err := SortDependencyOrder([]*Recipe{a, b})
	require.Error(t, err)
}
