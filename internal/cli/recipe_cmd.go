package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/souschef/internal/cli/formatter"
	"github.com/hammamikhairi/souschef/internal/domain"
)

func newRecipesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "recipes [query]",
		Aliases: []string{"ls"},
		Short:   "List recipes, optionally filtered by title, description or tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				list []domain.RecipeSummary
				err  error
			)
			if query := strings.Join(args, " "); query != "" {
				list, err = app.Engine.SearchRecipes(ctx, query)
			} else {
				list, err = app.Engine.ListRecipes(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecipeList(list))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var servings int

	cmd := &cobra.Command{
		Use:   "show <recipe>",
		Short: "Show a recipe's ingredients and steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Engine.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return explain(fmt.Errorf("recipe %q: %w", args[0], err))
			}

			factor := 1.0
			if servings > 0 && r.Servings > 0 {
				factor = domain.NewSessionState().SetScaleFactor(float64(servings) / float64(r.Servings)).ScaleFactor
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecipe(r, factor))
			return nil
		},
	}

	cmd.Flags().IntVar(&servings, "servings", 0, "show ingredient amounts for this many servings")
	return cmd
}
