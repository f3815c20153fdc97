// Package engine is the recommendation core: it filters and ranks the tool
// catalog against a company assessment and assembles three competing tool
// stacks from the ranked catalog. Everything here is pure computation over
// read-only reference data; collaborators are injected, never global.
package engine

import (
	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

// WeightProfile is the five-dimension scoring weight vector. After
// construction the dimensions are each >= 0 and sum to 1.0.
type WeightProfile struct {
	Fit         float64 `json:"fit"`
	Popularity  float64 `json:"popularity"`
	Cost        float64 `json:"cost"`
	AI          float64 `json:"ai"`
	Integration float64 `json:"integration"`
}

// Sum returns the total of all five weights.
func (w WeightProfile) Sum() float64 {
	return w.Fit + w.Popularity + w.Cost + w.AI + w.Integration
}

func (w WeightProfile) add(m WeightProfile) WeightProfile {
	w.Fit += m.Fit
	w.Popularity += m.Popularity
	w.Cost += m.Cost
	w.AI += m.AI
	w.Integration += m.Integration
	return w
}

// Breakdown holds the five per-dimension sub-scores, each 0-100.
type Breakdown struct {
	Fit         float64 `json:"fit"`
	Popularity  float64 `json:"popularity"`
	Cost        float64 `json:"cost"`
	AI          float64 `json:"ai"`
	Integration float64 `json:"integration"`
}

// Composite combines the breakdown with a weight profile via dot product.
func (b Breakdown) Composite(w WeightProfile) float64 {
	return b.Fit*w.Fit + b.Popularity*w.Popularity + b.Cost*w.Cost + b.AI*w.AI + b.Integration*w.Integration
}

// ScoredTool pairs a tool with its composite score and per-dimension
// breakdown. Scored tools are ephemeral, recomputed per request.
type ScoredTool struct {
	Tool      catalog.Tool `json:"tool"`
	Score     float64      `json:"score"`
	Breakdown Breakdown    `json:"breakdown"`
}

// PipelineContext is the decision pipeline's output: everything the scenario
// builder needs, computed once per request.
type PipelineContext struct {
	Assessment   assessment.Assessment
	CurrentTools []catalog.Tool
	Anchor       *catalog.Tool
	Weights      WeightProfile
	Ranked       []ScoredTool
	Phases       []Phase
	byID         map[string]catalog.Tool
}

// ToolByID looks a tool up in the request's catalog snapshot.
func (pc *PipelineContext) ToolByID(id string) (catalog.Tool, bool) {
	t, ok := pc.byID[id]
	return t, ok
}

// Strategy names one of the three scenario selection policies. The set is
// closed; BuildAll always produces exactly one scenario per strategy.
type Strategy string

const (
	StrategyMonoStack        Strategy = "mono-stack"
	StrategyNativeIntegrator Strategy = "native-integrator"
	StrategyAgenticLean      Strategy = "agentic-lean"
)

// WorkflowStep maps one workflow phase to the stack tools that cover it.
type WorkflowStep struct {
	Phase string         `json:"phase"`
	Tools []catalog.Tool `json:"tools"`
}

// BuiltScenario is the engine's output unit: one assembled stack with its
// derived metrics. Constructed fresh per request, never persisted here.
type BuiltScenario struct {
	Name                string           `json:"name"`
	Strategy            Strategy         `json:"strategy"`
	Tools               []catalog.Tool   `json:"tools"`
	Displaced           []catalog.Tool   `json:"displaced"`
	ComplexityReduction int              `json:"complexityReductionPct"`
	MonthlyCostPerUser  float64          `json:"monthlyCostPerUser"`
	MatchedClusters     []catalog.Bundle `json:"matchedClusters,omitempty"`
	Workflow            []WorkflowStep   `json:"workflow"`
}

// ContainsTool reports whether the scenario's stack includes the given id.
func (s BuiltScenario) ContainsTool(id string) bool {
	for _, t := range s.Tools {
		if t.ID == id {
			return true
		}
	}
	return false
}
