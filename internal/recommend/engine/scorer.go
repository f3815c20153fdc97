package engine

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/shared/telemetry"
)

// scoreConcurrency bounds the parallel integration lookups per scoring pass.
const scoreConcurrency = 8

// Scorer computes per-tool composite scores for one request.
type Scorer struct {
	Integrations *IntegrationScorer
}

// NewScorer constructs a Scorer with its integration collaborator.
func NewScorer(integrations *IntegrationScorer) *Scorer {
	return &Scorer{Integrations: integrations}
}

// ScoreTools scores every tool across the five dimensions and returns them
// ranked by composite score, descending. The sort is stable: ties keep
// catalog input order. Sub-inputs that are missing degrade to documented
// defaults instead of failing.
func (s *Scorer) ScoreTools(ctx context.Context, tools []catalog.Tool, w WeightProfile, a assessment.Assessment, current []catalog.Tool) []ScoredTool {
	currentIDs := make([]string, 0, len(current))
	for _, t := range current {
		currentIDs = append(currentIDs, t.ID)
	}

	scored := make([]ScoredTool, len(tools))

	// Integration lookups may hit a data source; candidates are independent
	// given the current set, so batch them.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)
	for i, tool := range tools {
		g.Go(func() error {
			integ := s.integrationSubScore(gctx, tool.ID, currentIDs)
			b := Breakdown{
				Fit:         fitScore(tool, a),
				Popularity:  tool.Popularity.Composite(),
				Cost:        costScore(tool, a.BudgetPerUser),
				AI:          aiReadinessScore(tool, a.Automation),
				Integration: float64(integ),
			}
			scored[i] = ScoredTool{Tool: tool, Score: b.Composite(w), Breakdown: b}
			return nil
		})
	}
	// Workers only report degraded defaults, never errors.
	_ = g.Wait()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func (s *Scorer) integrationSubScore(ctx context.Context, toolID string, currentIDs []string) int {
	score, err := s.Integrations.SubScore(ctx, toolID, currentIDs)
	if err != nil {
		telemetry.Info("engine.integration_degraded", map[string]any{
			"tool_id": toolID,
			"err":     err.Error(),
		})
		return integrationNeutral
	}
	return score
}

// fitScore awards 50 points per matched applicability dimension. A tool with
// no declared preference matches by default.
func fitScore(t catalog.Tool, a assessment.Assessment) float64 {
	var score float64
	if matchesTeamSize(t, a.TeamSize) {
		score += 50
	}
	if matchesStage(t, a.Stage) {
		score += 50
	}
	return score
}

// costScore grades affordability on a ratio basis. Over-budget tools are
// penalized by relative overage, never absolute dollars, so a 10% overage
// scores the same at any budget level.
func costScore(t catalog.Tool, budget float64) float64 {
	if isFreeForever(t) {
		return 90
	}
	if t.MonthlyCostPerUser == nil {
		return 60
	}
	cost := *t.MonthlyCostPerUser
	if cost <= budget {
		if budget <= 0 {
			return 90
		}
		// 70 at budget, rising toward 90 as the tool gets cheaper.
		return 70 + 20*(1-cost/budget)
	}
	if budget <= 0 {
		return 10
	}
	overageRatio := (cost - budget) / budget
	penalized := 50 - 40*overageRatio
	if penalized < 10 {
		return 10
	}
	return penalized
}

// aiReadinessScore grades AI capability against the automation philosophy.
func aiReadinessScore(t catalog.Tool, philosophy assessment.AutomationPhilosophy) float64 {
	if t.HasAIFeatures {
		switch philosophy {
		case assessment.AutomationAutoPilot:
			return 100
		case assessment.AutomationHybrid:
			return 80
		default:
			return 60
		}
	}
	if philosophy == assessment.AutomationAutoPilot {
		return 10
	}
	return 30
}
