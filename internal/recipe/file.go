package recipe

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/souschef/internal/domain"
)

type recipeFile struct {
	Recipes []*domain.Recipe `yaml:"recipes"`
}

// Parse reads a YAML document of the form `recipes: [...]`. Step numbers
// left out of the document are filled in from position.
func Parse(r io.Reader) ([]*domain.Recipe, error) {
	var doc recipeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding recipes: %w", err)
	}

	seen := make(map[string]bool, len(doc.Recipes))
	for i, rec := range doc.Recipes {
		if err := validate(rec); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i+1, err)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("recipe %d: duplicate id %q", i+1, rec.ID)
		}
		seen[rec.ID] = true
		for j := range rec.Instructions {
			if rec.Instructions[j].Step == 0 {
				rec.Instructions[j].Step = j + 1
			}
		}
	}
	return doc.Recipes, nil
}

// LoadFile reads recipes from a YAML file.
func LoadFile(path string) ([]*domain.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recipe file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func validate(r *domain.Recipe) error {
	switch {
	case r == nil:
		return fmt.Errorf("empty entry")
	case strings.TrimSpace(r.ID) == "":
		return fmt.Errorf("missing id")
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("%s: missing title", r.ID)
	case len(r.Instructions) == 0:
		return fmt.Errorf("%s: no instructions", r.ID)
	case r.Servings < 0:
		return fmt.Errorf("%s: negative servings", r.ID)
	}
	for i, ins := range r.Instructions {
		if ins.Duration < 0 {
			return fmt.Errorf("%s: step %d has a negative duration", r.ID, i+1)
		}
	}
	return nil
}
