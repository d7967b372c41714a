// Package knowledge provides the static ingredient-substitution and
// technique reference tables.
//
// Tables are ordered. A lookup first tries an exact match on the
// lower-cased query, then scans the table in order for the first key that
// contains the query or is contained in it. Table order is therefore part
// of the behaviour: it comes straight from the YAML document and never
// changes at runtime.
package knowledge

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// Compile-time interface check.
var _ domain.KnowledgeBase = (*Base)(nil)

//go:embed data/knowledge.yaml
var defaultDocument []byte

// SubstitutionEntry is one ingredient row of the substitution table.
type SubstitutionEntry struct {
	Ingredient string                `yaml:"ingredient"`
	Options    []domain.Substitution `yaml:"options"`
}

// TechniqueEntry is one row of the technique table.
type TechniqueEntry struct {
	Technique            string `yaml:"technique"`
	domain.TechniqueInfo `yaml:",inline"`
}

type document struct {
	Substitutions []SubstitutionEntry `yaml:"substitutions"`
	Techniques    []TechniqueEntry    `yaml:"techniques"`
}

// Base is an immutable, ordered knowledge base. Safe for concurrent reads.
type Base struct {
	substitutions []SubstitutionEntry
	subIndex      map[string]int
	techniques    []TechniqueEntry
	techIndex     map[string]int
}

// New builds a knowledge base from ordered tables. Keys are lower-cased.
func New(subs []SubstitutionEntry, techs []TechniqueEntry) *Base {
	b := &Base{
		subIndex:  make(map[string]int, len(subs)),
		techIndex: make(map[string]int, len(techs)),
	}
	for _, s := range subs {
		key := normalize(s.Ingredient)
		if key == "" {
			continue
		}
		if _, dup := b.subIndex[key]; dup {
			continue
		}
		s.Ingredient = key
		b.subIndex[key] = len(b.substitutions)
		b.substitutions = append(b.substitutions, s)
	}
	for _, t := range techs {
		key := normalize(t.Technique)
		if key == "" {
			continue
		}
		if _, dup := b.techIndex[key]; dup {
			continue
		}
		t.Technique = key
		b.techIndex[key] = len(b.techniques)
		b.techniques = append(b.techniques, t)
	}
	return b
}

// Parse reads a YAML knowledge document.
func Parse(r io.Reader) (*Base, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding knowledge document: %w", err)
	}
	return New(doc.Substitutions, doc.Techniques), nil
}

// LoadFile reads a YAML knowledge document from disk.
func LoadFile(path string) (*Base, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening knowledge file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the built-in knowledge base.
func Default() *Base {
	b, err := Parse(bytes.NewReader(defaultDocument))
	if err != nil {
		panic(fmt.Sprintf("knowledge: built-in document is invalid: %v", err))
	}
	return b
}

// GetSubstitutions returns the substitution options for an ingredient.
func (b *Base) GetSubstitutions(name string) ([]domain.Substitution, bool) {
	i, ok := lookup(name, b.subIndex, len(b.substitutions), func(i int) string {
		return b.substitutions[i].Ingredient
	})
	if !ok {
		return nil, false
	}
	opts := make([]domain.Substitution, len(b.substitutions[i].Options))
	copy(opts, b.substitutions[i].Options)
	return opts, true
}

// GetTechnique returns the explanation for a technique.
func (b *Base) GetTechnique(name string) (domain.TechniqueInfo, bool) {
	i, ok := lookup(name, b.techIndex, len(b.techniques), func(i int) string {
		return b.techniques[i].Technique
	})
	if !ok {
		return domain.TechniqueInfo{}, false
	}
	return b.techniques[i].TechniqueInfo, true
}

// Ingredients lists the substitution keys in table order.
func (b *Base) Ingredients() []string {
	out := make([]string, len(b.substitutions))
	for i, s := range b.substitutions {
		out[i] = s.Ingredient
	}
	return out
}

// Techniques lists the technique keys in table order.
func (b *Base) Techniques() []string {
	out := make([]string, len(b.techniques))
	for i, t := range b.techniques {
		out[i] = t.Technique
	}
	return out
}

// lookup implements exact-then-substring matching over an ordered table.
// An empty query never matches.
func lookup(name string, index map[string]int, n int, key func(int) string) (int, bool) {
	q := normalize(name)
	if q == "" {
		return 0, false
	}
	if i, ok := index[q]; ok {
		return i, true
	}
	for i := 0; i < n; i++ {
		k := key(i)
		if strings.Contains(q, k) || strings.Contains(k, q) {
			return i, true
		}
	}
	return 0, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
