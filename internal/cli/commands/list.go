package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/condatools/buildmatrix/internal/recipe"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered recipes in build order",
		Long: `List every recipe found under the recipes directory, sorted so that
dependencies appear before their dependents.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cfg := Context().Cfg

	recipes, err := recipe.Discover(cfg.RecipesDir, cfg.MaxRecipeDepth)
	if err != nil {
		return err
	}
	recipes, err = recipe.SortDependencyOrder(recipes)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"RECIPE", "VERSION", "NOARCH", "REQUIREMENTS"})
	for _, r := range recipes {
		noarch := ""
		if r.Noarch {
			noarch = "yes"
		}
		t.AppendRow(table.Row{r.Name, r.Version, noarch, strings.Join(r.BuildRequirements, ", ")})
	}
	t.Render()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d recipe(s)\n", len(recipes))
	return nil
}
