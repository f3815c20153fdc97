package catalog

import (
	"context"
	"sync"
)

// MemoryRepo serves the catalog from in-process slices.
type MemoryRepo struct {
	mu      sync.RWMutex
	tools   []Tool
	bundles []Bundle
}

// NewMemoryRepo builds a MemoryRepo over the given catalog data.
func NewMemoryRepo(tools []Tool, bundles []Bundle) *MemoryRepo {
	return &MemoryRepo{tools: tools, bundles: bundles}
}

func (r *MemoryRepo) GetAll(ctx context.Context) ([]Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out, nil
}

func (r *MemoryRepo) GetByCategory(ctx context.Context, cat Category) ([]Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Tool
	for _, t := range r.tools {
		if t.InCategory(cat) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryRepo) GetBundles(ctx context.Context) ([]Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Bundle, len(r.bundles))
	copy(out, r.bundles)
	return out, nil
}
