package overlap

import (
	"context"
	"sync"
)

// MemoryRepo serves redundancy and replacement rules from in-process slices.
type MemoryRepo struct {
	mu           sync.RWMutex
	redundancies []Redundancy
	replacements []Replacement
}

// NewMemoryRepo builds a MemoryRepo over the given reference data.
func NewMemoryRepo(redundancies []Redundancy, replacements []Replacement) *MemoryRepo {
	return &MemoryRepo{redundancies: redundancies, replacements: replacements}
}

func (r *MemoryRepo) RedundanciesAmong(ctx context.Context, toolIDs []string) ([]Redundancy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(toolIDs))
	for _, id := range toolIDs {
		ids[id] = true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Redundancy
	for _, rel := range r.redundancies {
		if rel.Involves(ids) {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (r *MemoryRepo) BestReplacement(ctx context.Context, toolID string, rc ReplacementContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	best := ""
	bestPriority := -1
	for _, rule := range r.replacements {
		if rule.ToolID != toolID || !rule.Matches(rc) {
			continue
		}
		if rule.Priority > bestPriority {
			best = rule.ReplacementID
			bestPriority = rule.Priority
		}
	}
	return best, nil
}
