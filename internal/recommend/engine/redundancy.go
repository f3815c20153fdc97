package engine

import (
	"context"

	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/overlap"
	"stackadvisor-backend/internal/shared/telemetry"
)

// OverlapSource is the read-only redundancy/replacement data a resolver needs.
type OverlapSource interface {
	RedundanciesAmong(ctx context.Context, toolIDs []string) ([]overlap.Redundancy, error)
	BestReplacement(ctx context.Context, toolID string, rc overlap.ReplacementContext) (string, error)
}

// RedundancyResolver removes capability duplicates from a stack and swaps in
// context-appropriate replacements.
type RedundancyResolver struct {
	Source OverlapSource
}

// NewRedundancyResolver constructs a resolver over the given data source.
func NewRedundancyResolver(source OverlapSource) *RedundancyResolver {
	return &RedundancyResolver{Source: source}
}

// RemoveRedundant drops one member of every full-redundancy pair in the
// stack, preserving order. The anchor is never the one dropped. Partial and
// niche overlaps never trigger removal. Missing reference data degrades to a
// no-op.
func (r *RedundancyResolver) RemoveRedundant(ctx context.Context, stack []catalog.Tool, anchorID string) []catalog.Tool {
	if len(stack) < 2 || r == nil || r.Source == nil {
		return stack
	}
	ids := make([]string, 0, len(stack))
	byID := make(map[string]catalog.Tool, len(stack))
	for _, t := range stack {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	relations, err := r.Source.RedundanciesAmong(ctx, ids)
	if err != nil {
		telemetry.Info("engine.redundancy_degraded", map[string]any{"err": err.Error()})
		return stack
	}

	dropped := make(map[string]bool)
	for _, rel := range relations {
		if rel.Level != overlap.LevelFull {
			continue
		}
		if dropped[rel.ToolA] || dropped[rel.ToolB] {
			continue
		}
		loser := pickLoser(rel, anchorID, byID)
		if loser != "" {
			dropped[loser] = true
		}
	}

	if len(dropped) == 0 {
		return stack
	}
	out := make([]catalog.Tool, 0, len(stack))
	for _, t := range stack {
		if !dropped[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// pickLoser decides which member of a full-redundancy pair to drop. Anchor
// protection comes first, then the declared hint; context-dependent hints
// drop the costlier member, breaking exact cost ties toward the higher id so
// the outcome is deterministic.
func pickLoser(rel overlap.Redundancy, anchorID string, byID map[string]catalog.Tool) string {
	switch {
	case rel.ToolA == anchorID:
		return rel.ToolB
	case rel.ToolB == anchorID:
		return rel.ToolA
	}
	switch rel.Hint {
	case overlap.HintPreferA:
		return rel.ToolB
	case overlap.HintPreferB:
		return rel.ToolA
	}

	costA := effectiveCost(byID[rel.ToolA])
	costB := effectiveCost(byID[rel.ToolB])
	switch {
	case costA > costB:
		return rel.ToolA
	case costB > costA:
		return rel.ToolB
	case rel.ToolA > rel.ToolB:
		return rel.ToolA
	default:
		return rel.ToolB
	}
}

func effectiveCost(t catalog.Tool) float64 {
	if t.MonthlyCostPerUser == nil {
		return 0
	}
	return *t.MonthlyCostPerUser
}

// ApplyReplacements swaps each stack member for its best contextual
// replacement, in place, preserving stack order and size. The anchor and
// tools already present are never swapped. Lookup failures skip the tool.
func (r *RedundancyResolver) ApplyReplacements(ctx context.Context, stack []catalog.Tool, anchorID string, rc overlap.ReplacementContext, lookup func(string) (catalog.Tool, bool)) []catalog.Tool {
	if r == nil || r.Source == nil || lookup == nil {
		return stack
	}
	present := make(map[string]bool, len(stack))
	for _, t := range stack {
		present[t.ID] = true
	}

	out := make([]catalog.Tool, len(stack))
	copy(out, stack)
	for i, t := range out {
		if t.ID == anchorID {
			continue
		}
		replacementID, err := r.Source.BestReplacement(ctx, t.ID, rc)
		if err != nil {
			telemetry.Info("engine.replacement_degraded", map[string]any{
				"tool_id": t.ID,
				"err":     err.Error(),
			})
			continue
		}
		if replacementID == "" || present[replacementID] {
			continue
		}
		replacement, ok := lookup(replacementID)
		if !ok {
			continue
		}
		delete(present, t.ID)
		present[replacementID] = true
		out[i] = replacement
	}
	return out
}
