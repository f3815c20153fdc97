package integrations

import "context"

// Repo exposes read-only integration reference data.
type Repo interface {
	// EdgesFor returns every integration edge that involves toolID, either direction.
	EdgesFor(ctx context.Context, toolID string) ([]Edge, error)
	// RecipesFor returns every automation recipe with toolID as either endpoint.
	RecipesFor(ctx context.Context, toolID string) ([]Recipe, error)
}
