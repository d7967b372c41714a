package domain

import "context"

// RecipeSource provides read-only recipes. Implementations can be
// in-memory, file-based or backed by the app database.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// SessionStore persists the single active SessionState between runs.
// Load returns NewSessionState() when nothing has been saved.
type SessionStore interface {
	Save(ctx context.Context, state SessionState) error
	Load(ctx context.Context) (SessionState, error)
	Clear(ctx context.Context) error
}

// KnowledgeBase answers substitution and technique lookups.
type KnowledgeBase interface {
	GetSubstitutions(name string) ([]Substitution, bool)
	GetTechnique(name string) (TechniqueInfo, bool)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout, a TUI, or a speech pipeline owned by the host.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
