package integrations

import (
	"context"
	"sync"
)

// MemoryRepo serves integration data from in-process slices.
type MemoryRepo struct {
	mu      sync.RWMutex
	edges   []Edge
	recipes []Recipe
}

// NewMemoryRepo builds a MemoryRepo over the given reference data.
func NewMemoryRepo(edges []Edge, recipes []Recipe) *MemoryRepo {
	return &MemoryRepo{edges: edges, recipes: recipes}
}

func (r *MemoryRepo) EdgesFor(ctx context.Context, toolID string) ([]Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Edge
	for _, e := range r.edges {
		if e.Involves(toolID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryRepo) RecipesFor(ctx context.Context, toolID string) ([]Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Recipe
	for _, rec := range r.recipes {
		if rec.TriggerTool == toolID || rec.ActionTool == toolID {
			out = append(out, rec)
		}
	}
	return out, nil
}
