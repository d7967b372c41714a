package recipe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func TestMemorySourceList(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src := NewMemorySource(log)
	ctx := context.Background()

	recipes, err := src.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) < 3 {
		t.Fatalf("expected at least 3 recipes, got %d", len(recipes))
	}
	for i := 1; i < len(recipes); i++ {
		if recipes[i-1].Title > recipes[i].Title {
			t.Fatalf("list not sorted by title: %q before %q", recipes[i-1].Title, recipes[i].Title)
		}
	}
}

func TestMemorySourceGet(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src := NewMemorySource(log)
	ctx := context.Background()

	tests := []struct {
		id      string
		wantErr error
	}{
		{"buttermilk-pancakes", nil},
		{"chicken-alfredo", nil},
		{"vegetable-stir-fry", nil},
		{"nonexistent", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r, err := src.Get(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.ID != tt.id {
				t.Fatalf("expected ID %s, got %s", tt.id, r.ID)
			}
			if r.TotalSteps() == 0 {
				t.Fatal("recipe has no steps")
			}
			if len(r.Ingredients) == 0 {
				t.Fatal("recipe has no ingredients")
			}
			for i, ins := range r.Instructions {
				if ins.Step != i+1 {
					t.Fatalf("step %d numbered %d", i+1, ins.Step)
				}
			}
		})
	}
}

func TestMemorySourceSearch(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	src := NewMemorySource(log)
	ctx := context.Background()

	tests := []struct {
		query    string
		minCount int
	}{
		{"chicken", 1},
		{"PASTA", 1},
		{"vegan", 1},
		{"quick", 2},
		{"nonexistent-query-xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := src.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(results) < tt.minCount {
				t.Fatalf("query=%q: expected at least %d results, got %d", tt.query, tt.minCount, len(results))
			}
		})
	}
}

func TestWithRecipesOverridesBuiltins(t *testing.T) {
	custom := &domain.Recipe{ID: "chicken-alfredo", Title: "My Alfredo", Instructions: []domain.Instruction{{Step: 1, Text: "Cook."}}}
	src := NewMemorySource(logger.New(logger.LevelOff, nil), WithRecipes(custom))

	got, err := src.Get(context.Background(), "chicken-alfredo")
	require.NoError(t, err)
	assert.Equal(t, "My Alfredo", got.Title)

	empty := NewMemorySource(logger.New(logger.LevelOff, nil), WithoutBuiltins())
	list, err := empty.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

const sampleYAML = `
recipes:
  - id: soft-eggs
    title: Soft Boiled Eggs
    servings: 2
    tags: [breakfast]
    ingredients:
      - {name: eggs, amount: 4, unit: pieces}
      - {name: salt, notes: to taste}
    instructions:
      - text: Bring water to a simmer.
      - text: Lower the eggs in and cook.
        duration: 6m30s
      - step: 3
        text: Cool in ice water.
        duration: 1m
`

func TestParse(t *testing.T) {
	recipes, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	r := recipes[0]
	assert.Equal(t, "soft-eggs", r.ID)
	assert.Equal(t, 2, r.Servings)
	require.Equal(t, 3, r.TotalSteps())
	assert.Equal(t, 1, r.Instructions[0].Step)
	assert.Equal(t, 2, r.Instructions[1].Step)
	assert.Equal(t, 6*time.Minute+30*time.Second, r.Instructions[1].Duration)
	assert.Equal(t, "4 eggs", r.Ingredients[0].Display())
	assert.Equal(t, "salt (to taste)", r.Ingredients[1].Display())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", "recipes:\n  - title: X\n    instructions: [{text: a}]\n"},
		{"missing title", "recipes:\n  - id: x\n    instructions: [{text: a}]\n"},
		{"no instructions", "recipes:\n  - id: x\n    title: X\n"},
		{"duplicate id", "recipes:\n  - {id: x, title: X, instructions: [{text: a}]}\n  - {id: x, title: Y, instructions: [{text: b}]}\n"},
		{"unknown field", "recipes:\n  - {id: x, title: X, cuisine: thai, instructions: [{text: a}]}\n"},
		{"bad duration", "recipes:\n  - {id: x, title: X, instructions: [{text: a, duration: soon}]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFileFeedsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	recipes, err := LoadFile(path)
	require.NoError(t, err)

	src := NewMemorySource(logger.New(logger.LevelOff, nil), WithRecipes(recipes...))
	results, err := src.Search(context.Background(), "boiled")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "soft-eggs", results[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
