// Package domain defines the core types and interfaces for the cooking assistant.
// All other packages depend on domain; domain depends on nothing but uuid.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// Recipe is a read-only recipe as supplied by the recipe store.
type Recipe struct {
	ID           string        `yaml:"id"`
	Title        string        `yaml:"title"`
	Description  string        `yaml:"description,omitempty"`
	Servings     int           `yaml:"servings"`
	Ingredients  []Ingredient  `yaml:"ingredients"`
	Instructions []Instruction `yaml:"instructions"`
	Tags         []string      `yaml:"tags,omitempty"`
}

// TotalSteps returns the number of instructions.
func (r *Recipe) TotalSteps() int {
	if r == nil {
		return 0
	}
	return len(r.Instructions)
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID         string
	Title      string
	Servings   int
	TotalSteps int
	Tags       []string
}

// Instruction is a single recipe step.
type Instruction struct {
	Step     int           `yaml:"step"`
	Text     string        `yaml:"text"`
	Duration time.Duration `yaml:"duration,omitempty"` // 0 if untimed
}

// Ingredient is a single ingredient line.
type Ingredient struct {
	Name     string  `yaml:"name"`
	Amount   float64 `yaml:"amount"`
	Unit     string  `yaml:"unit,omitempty"`
	Notes    string  `yaml:"notes,omitempty"`
	Optional bool    `yaml:"optional,omitempty"`
}

// unitAbbreviations maps spelled-out units to their short display form.
// An empty value drops the unit entirely.
var unitAbbreviations = map[string]string{
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"cup":         "cup",
	"cups":        "cups",
	"gram":        "g",
	"grams":       "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"milliliter":  "ml",
	"milliliters": "ml",
	"liter":       "l",
	"liters":      "l",
	"ounce":       "oz",
	"ounces":      "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"clove":       "cloves",
	"cloves":      "cloves",
	"piece":       "",
	"pieces":      "",
}

// UnitAbbreviation returns the display form of a unit.
func UnitAbbreviation(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if abbr, ok := unitAbbreviations[u]; ok {
		return abbr
	}
	return unit
}

// FormatAmount renders a quantity: whole numbers without decimals,
// everything else with at most two decimals.
func FormatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return strconv.FormatInt(int64(amount), 10)
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Display renders the ingredient for listing, e.g. "2 tbsp butter (softened)".
func (i Ingredient) Display() string {
	var parts []string
	if i.Amount > 0 {
		parts = append(parts, FormatAmount(i.Amount))
	}
	if abbr := UnitAbbreviation(i.Unit); abbr != "" {
		parts = append(parts, abbr)
	}
	parts = append(parts, i.Name)

	out := strings.Join(parts, " ")
	if i.Notes != "" {
		out += " (" + i.Notes + ")"
	}
	if i.Optional {
		out += " (optional)"
	}
	return out
}

// Scaled returns a copy with the amount multiplied by factor.
func (i Ingredient) Scaled(factor float64) Ingredient {
	i.Amount *= factor
	return i
}
