package recommend

import (
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/costs"
	"stackadvisor-backend/internal/recommend/engine"
)

// ScenarioDTO is one scenario as delivered over the wire, the engine output
// enriched with costs and prose.
type ScenarioDTO struct {
	Name                string                `json:"name"`
	Strategy            engine.Strategy       `json:"strategy"`
	Narrative           string                `json:"narrative,omitempty"`
	Tools               []catalog.Tool        `json:"tools"`
	Displaced           []catalog.Tool        `json:"displaced,omitempty"`
	ComplexityReduction int                   `json:"complexityReductionPct"`
	Costs               costs.Projection      `json:"costs"`
	MatchedClusters     []catalog.Bundle      `json:"matchedClusters,omitempty"`
	Workflow            []engine.WorkflowStep `json:"workflow"`
}

// Response is the full recommendation payload for one run.
type Response struct {
	RunID         string               `json:"runId"`
	EngineVersion string               `json:"engineVersion"`
	Anchor        *catalog.Tool        `json:"anchor,omitempty"`
	Unresolved    []string             `json:"unresolvedTools,omitempty"`
	Weights       engine.WeightProfile `json:"weights"`
	Scenarios     []ScenarioDTO        `json:"scenarios"`
}
