package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/souschef/internal/domain"
)

func testBase() *Base {
	return New(
		[]SubstitutionEntry{
			{Ingredient: "Buttermilk", Options: []domain.Substitution{{Name: "milk + lemon"}}},
			{Ingredient: "butter", Options: []domain.Substitution{{Name: "oil", Ratio: "3/4"}}},
			{Ingredient: "eggs", Options: []domain.Substitution{{Name: "flax egg"}, {Name: "banana"}}},
			{Ingredient: "EGGS", Options: []domain.Substitution{{Name: "duplicate"}}},
			{Ingredient: "  ", Options: []domain.Substitution{{Name: "blank"}}},
		},
		[]TechniqueEntry{
			{Technique: "fold", TechniqueInfo: domain.TechniqueInfo{Explanation: "gently combine", Tips: "use a spatula"}},
			{Technique: "blanch", TechniqueInfo: domain.TechniqueInfo{Explanation: "boil briefly", Tips: "ice bath"}},
		},
	)
}

func TestLookupMatching(t *testing.T) {
	kb := testBase()

	tests := []struct {
		name  string
		query string
		want  string
		found bool
	}{
		{"exact", "eggs", "flax egg", true},
		{"case insensitive", "  Butter ", "oil", true},
		{"query contains key", "salted butter", "oil", true},
		{"key contains query", "egg", "flax egg", true},
		{"first row wins", "buttermilk pancakes", "milk + lemon", true},
		{"shorter key later in table", "butt", "milk + lemon", true},
		{"miss", "saffron", "", false},
		{"empty never matches", "", "", false},
		{"blank never matches", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := kb.GetSubstitutions(tt.query)
			require.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.want, got[0].Name)
			}
		})
	}
}

func TestNewSkipsDuplicatesAndBlankKeys(t *testing.T) {
	kb := testBase()
	assert.Equal(t, []string{"buttermilk", "butter", "eggs"}, kb.Ingredients())

	opts, ok := kb.GetSubstitutions("eggs")
	require.True(t, ok)
	assert.Len(t, opts, 2, "first row for a key wins")
}

func TestGetSubstitutionsReturnsCopy(t *testing.T) {
	kb := testBase()
	opts, _ := kb.GetSubstitutions("eggs")
	opts[0].Name = "changed"

	again, _ := kb.GetSubstitutions("eggs")
	assert.Equal(t, "flax egg", again[0].Name)
}

func TestGetTechnique(t *testing.T) {
	kb := testBase()

	info, ok := kb.GetTechnique("fold in the egg whites")
	require.True(t, ok)
	assert.Equal(t, "gently combine", info.Explanation)
	assert.Equal(t, "use a spatula", info.Tips)

	_, ok = kb.GetTechnique("sous vide")
	assert.False(t, ok)
	assert.Equal(t, []string{"fold", "blanch"}, kb.Techniques())
}

func TestDefault(t *testing.T) {
	kb := Default()

	eggs, ok := kb.GetSubstitutions("eggs")
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(eggs), 2)

	bm, ok := kb.GetSubstitutions("buttermilk")
	require.True(t, ok)
	assert.Contains(t, bm[0].Name, "milk")

	// Specific rows must precede the general ones they contain.
	bs, ok := kb.GetSubstitutions("light brown sugar")
	require.True(t, ok)
	assert.Contains(t, bs[0].Name, "molasses")

	for _, name := range []string{"sauté", "saute", "fold", "blanch", "deglaze"} {
		info, ok := kb.GetTechnique(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, info.Explanation, name)
		assert.NotEmpty(t, info.Tips, name)
	}
}

func TestDefaultIsDeterministic(t *testing.T) {
	a, b := Default(), Default()
	assert.Equal(t, a.Ingredients(), b.Ingredients())
	assert.Equal(t, a.Techniques(), b.Techniques())
}

func TestParse(t *testing.T) {
	doc := `
substitutions:
  - ingredient: Saffron
    options:
      - name: turmeric
        ratio: "1/2 tsp per pinch"
        notes: colour only
techniques:
  - technique: bloom
    explanation: soak in warm liquid
    tips: ten minutes
`
	kb, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	opts, ok := kb.GetSubstitutions("saffron")
	require.True(t, ok)
	assert.Equal(t, domain.Substitution{Name: "turmeric", Ratio: "1/2 tsp per pinch", Notes: "colour only"}, opts[0])

	info, ok := kb.GetTechnique("bloom")
	require.True(t, ok)
	assert.Equal(t, "ten minutes", info.Tips)
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	_, err := Parse(strings.NewReader("substitutions: [not: {closed"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("techniques:\n  - technique: rest\n    explanation: wait\n    tips: foil\n"), 0o644))

	kb, err := LoadFile(path)
	require.NoError(t, err)
	_, ok := kb.GetTechnique("rest")
	assert.True(t, ok)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
