package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/condatools/buildmatrix/internal/recipe"
	"github.com/condatools/buildmatrix/pkg/index"
	"github.com/condatools/buildmatrix/pkg/matchspec"
	"github.com/condatools/buildmatrix/pkg/matrix"
)

// NewMatrixCommand creates the matrix command.
func NewMatrixCommand() *cobra.Command {
	var strictConditions bool

	cmd := &cobra.Command{
		Use:   "matrix [recipe-dir...]",
		Short: "Compute the build matrix for recipes",
		Long: `Compute the build-variant matrix for each recipe: every combination of
dependency versions the recipe must be built against, given the channel
snapshot. The matrix is filtered by --conditions and reduced to the newest
--max-n-major-versions / --max-n-minor-versions per dependency.

Without arguments, recipes are discovered under the recipes directory and
listed in build order.`,
		Example: `  # Matrix for every recipe under ./recipes
  buildmatrix matrix --recipes-dir ./recipes --repodata ./repodata.json

  # Restrict the matrix to python 3 builds
  buildmatrix matrix ./recipes/scipy --repodata ./repodata.json --conditions 'python >=3'

  # Keep every major/minor version
  buildmatrix matrix --repodata ./repodata.json --max-n-major-versions 0 --max-n-minor-versions 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd, args, strictConditions)
		},
	}

	cmd.Flags().BoolVar(&strictConditions, "strict-conditions", false,
		"Drop cases that lack a dependency named by a condition (default: retain them)")

	return cmd
}

// recipeMatrix pairs a recipe with its computed case set.
type recipeMatrix struct {
	Recipe  string        `json:"recipe"`
	Version string        `json:"version"`
	Cases   []matrix.Case `json:"cases"`
}

func runMatrix(cmd *cobra.Command, args []string, strictConditions bool) error {
	ctx := Context()
	cfg := ctx.Cfg

	if cfg.Repodata == "" {
		return fmt.Errorf("a channel snapshot is required: set --repodata or the repodata config key")
	}
	idx, err := index.LoadRepodata(cfg.Repodata)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("loaded channel snapshot", "path", cfg.Repodata, "records", idx.Len())

	recipes, err := collectRecipes(cfg.RecipesDir, cfg.MaxRecipeDepth, args)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return fmt.Errorf("no recipes found under %s", cfg.RecipesDir)
	}

	tbl := matrix.DefaultTable()
	if cfg.Interpreter != "" {
		tbl.Interpreter = cfg.Interpreter
	}
	if cfg.Numerics != "" {
		tbl.Numerics = cfg.Numerics
	}
	builder := matrix.NewBuilder(matrix.BuilderConfig{Table: tbl, Logger: ctx.Logger})

	policy := matrix.RetainMissing
	if strictConditions {
		policy = matrix.DropMissing
	}

	// Each recipe's matrix is an independent pure computation, so fan out.
	results := make([]recipeMatrix, len(recipes))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, r := range recipes {
		g.Go(func() error {
			cases, err := builder.Build(r.Metadata(), idx)
			if err != nil {
				return fmt.Errorf("recipe %s: %w", r.Name, err)
			}
			cases, err = matrix.Filter(cases, cfg.Conditions, matchspec.SemverMatcher{}, policy)
			if err != nil {
				return fmt.Errorf("recipe %s: %w", r.Name, err)
			}
			cases = matrix.KeepTopNMajorVersions(cases, cfg.MaxNMajorVersions)
			cases = matrix.KeepTopNMinorVersions(cases, cfg.MaxNMinorVersions)
			results[i] = recipeMatrix{Recipe: r.Name, Version: r.Version, Cases: cases}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Output == "json" {
		return renderMatrixJSON(cmd.OutOrStdout(), results)
	}
	return renderMatrixTable(cmd.OutOrStdout(), results)
}

// collectRecipes loads the recipes named by args, or discovers them under
// recipesDir, and returns them in build order.
func collectRecipes(recipesDir string, maxDepth int, args []string) ([]*recipe.Recipe, error) {
	var recipes []*recipe.Recipe
	if len(args) > 0 {
		for _, dir := range args {
			r, err := recipe.Load(dir)
			if err != nil {
				return nil, err
			}
			recipes = append(recipes, r)
		}
	} else {
		var err error
		recipes, err = recipe.Discover(recipesDir, maxDepth)
		if err != nil {
			return nil, err
		}
	}
	return recipe.SortDependencyOrder(recipes)
}

func renderMatrixTable(w io.Writer, results []recipeMatrix) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"RECIPE", "VERSION", "CASE"})
	builds := 0
	for _, res := range results {
		for _, c := range res.Cases {
			t.AppendRow(table.Row{res.Recipe, res.Version, c.String()})
			builds++
		}
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "%d build(s) from %d recipe(s)\n", builds, len(results))
	return nil
}

func renderMatrixJSON(w io.Writer, results []recipeMatrix) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
