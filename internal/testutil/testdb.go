// Package testutil holds shared test fixtures.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/hammamikhairi/souschef/internal/db"
	"github.com/hammamikhairi/souschef/internal/domain"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// Epoch is the fixed instant tests use as "now".
var Epoch = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

// Clock returns a controllable clock starting at Epoch. Advance moves it.
func Clock() (now func() time.Time, advance func(time.Duration)) {
	current := Epoch
	return func() time.Time { return current },
		func(d time.Duration) { current = current.Add(d) }
}

// RecipeOption customises NewTestRecipe.
type RecipeOption func(*domain.Recipe)

// WithServings sets the recipe's serving count.
func WithServings(n int) RecipeOption {
	return func(r *domain.Recipe) { r.Servings = n }
}

// WithSteps replaces the instructions with one step per text.
func WithSteps(texts ...string) RecipeOption {
	return func(r *domain.Recipe) {
		r.Instructions = make([]domain.Instruction, len(texts))
		for i, text := range texts {
			r.Instructions[i] = domain.Instruction{Step: i + 1, Text: text}
		}
	}
}

// NewTestRecipe builds a small three-step recipe.
func NewTestRecipe(id string, opts ...RecipeOption) *domain.Recipe {
	r := &domain.Recipe{
		ID:       id,
		Title:    "Test " + id,
		Servings: 4,
		Ingredients: []domain.Ingredient{
			{Name: "eggs", Amount: 2, Unit: "pieces"},
			{Name: "butter", Amount: 1, Unit: "tablespoon"},
		},
		Instructions: []domain.Instruction{
			{Step: 1, Text: "Crack the eggs."},
			{Step: 2, Text: "Melt the butter.", Duration: 2 * time.Minute},
			{Step: 3, Text: "Cook gently."},
		},
		Tags: []string{"test"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
