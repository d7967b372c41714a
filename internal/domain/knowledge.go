package domain

// Substitution is one replacement option for an ingredient.
type Substitution struct {
	Name  string `yaml:"name"`
	Ratio string `yaml:"ratio"`
	Notes string `yaml:"notes,omitempty"`
}

// TechniqueInfo explains a cooking technique.
type TechniqueInfo struct {
	Explanation string `yaml:"explanation"`
	Tips        string `yaml:"tips"`
}
