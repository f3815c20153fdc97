package engine

import (
	"context"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

// Pipeline runs the per-request decision sequence: weights, anchor, filters,
// scoring. Its output feeds the scenario builder.
type Pipeline struct {
	scorer *Scorer
}

func NewPipeline(scorer *Scorer) *Pipeline {
	return &Pipeline{scorer: scorer}
}

// BuildContext computes everything the scenario builder consumes. The catalog
// snapshot and the resolved current tools are supplied by the caller so one
// request always sees one consistent catalog.
func (p *Pipeline) BuildContext(ctx context.Context, a assessment.Assessment, snapshot []catalog.Tool, current []catalog.Tool, phases []Phase) *PipelineContext {
	weights := BuildWeightProfile(a.PainPoints, a.Stage)
	anchor := ResolveAnchor(a.Anchor, current)

	eligible := ApplyFilters(snapshot, a)
	if anchor != nil && !containsID(eligible, anchor.ID) {
		// The anchor is a tool the company already runs and wants to keep.
		// Filters never evict it.
		eligible = append(eligible, *anchor)
	}

	byID := make(map[string]catalog.Tool, len(snapshot))
	for _, t := range snapshot {
		byID[t.ID] = t
	}

	return &PipelineContext{
		Assessment:   a,
		CurrentTools: current,
		Anchor:       anchor,
		Weights:      weights,
		Ranked:       p.scorer.ScoreTools(ctx, eligible, weights, a, current),
		Phases:       ResolvePhases(phases),
		byID:         byID,
	}
}

func containsID(tools []catalog.Tool, id string) bool {
	for _, t := range tools {
		if t.ID == id {
			return true
		}
	}
	return false
}
