package formatter

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/domain"
)

// FormatRecipeList renders recipe summaries as a table.
func FormatRecipeList(recipes []domain.RecipeSummary) string {
	if len(recipes) == 0 {
		return Dim("No recipes found.") + "\n"
	}
	rows := make([][]string, len(recipes))
	for i, r := range recipes {
		rows[i] = []string{r.ID, r.Title, fmt.Sprint(r.Servings), fmt.Sprint(r.TotalSteps), strings.Join(r.Tags, ", ")}
	}
	return RenderTable([]string{"ID", "TITLE", "SERVES", "STEPS", "TAGS"}, rows)
}

// FormatRecipe renders a full recipe with ingredients scaled by factor.
func FormatRecipe(r *domain.Recipe, factor float64) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(r.Title) + "\n")
	if r.Description != "" {
		b.WriteString(Dim(r.Description) + "\n")
	}

	serves := fmt.Sprintf("Serves %d", r.Servings)
	if factor != 1 && r.Servings > 0 {
		serves = fmt.Sprintf("Serves %s (scaled x%s from %d)",
			domain.FormatAmount(float64(r.Servings)*factor), domain.FormatAmount(factor), r.Servings)
	}
	b.WriteString(serves + "\n\n")

	b.WriteString(StyleBold.Render("Ingredients") + "\n")
	for _, ing := range r.Ingredients {
		b.WriteString("  - " + ing.Scaled(factor).Display() + "\n")
	}

	b.WriteString("\n" + StyleBold.Render("Steps") + "\n")
	for _, ins := range r.Instructions {
		line := fmt.Sprintf("  %d. %s", ins.Step, ins.Text)
		if ins.Duration > 0 {
			line += " " + Dim("("+assistant.FormatDuration(ins.Duration)+")")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
