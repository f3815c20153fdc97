package engine

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/overlap"
	"stackadvisor-backend/internal/shared/telemetry"
)

// BundleSource yields the curated tool clusters a built stack is matched
// against.
type BundleSource interface {
	GetBundles(ctx context.Context) ([]catalog.Bundle, error)
}

// Builder assembles the three competing scenarios from one pipeline context.
type Builder struct {
	integrations *IntegrationScorer
	redundancy   *RedundancyResolver
	bundles      BundleSource
}

func NewBuilder(integrations *IntegrationScorer, redundancy *RedundancyResolver, bundles BundleSource) *Builder {
	return &Builder{
		integrations: integrations,
		redundancy:   redundancy,
		bundles:      bundles,
	}
}

// Native Integrator demands more of each pick than the other policies: a
// candidate must clear a quality floor relative to the tools already chosen,
// and a rival in the anchor's own category must beat the anchor's score by
// this margin to displace it.
const (
	qualityFloorRatio     = 0.7
	anchorChallengeMargin = 1.2
)

// essentialCategories is the coverage checklist the Native Integrator policy
// works through, in fill order.
var essentialCategories = []catalog.Category{
	catalog.CategoryProjectManagement,
	catalog.CategoryDocumentation,
	catalog.CategoryDevelopment,
	catalog.CategoryDesign,
	catalog.CategoryCommunication,
	catalog.CategoryMeetings,
	catalog.CategoryAnalytics,
}

// BuildAll produces exactly one scenario per strategy, in a fixed order, no
// matter how sparse the ranked pool is. Policies run concurrently; each one
// degrades internally instead of failing the request.
func (b *Builder) BuildAll(ctx context.Context, pc *PipelineContext) []BuiltScenario {
	out := make([]BuiltScenario, 3)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out[0] = b.buildMonoStack(gctx, pc)
		return nil
	})
	g.Go(func() error {
		out[1] = b.buildNativeIntegrator(gctx, pc)
		return nil
	})
	g.Go(func() error {
		out[2] = b.buildAgenticLean(gctx, pc)
		return nil
	})
	_ = g.Wait()
	return out
}

// targetRange sizes a policy's stack. Bigger teams and a declared
// tool-sprawl pain both tighten the upper bound.
func targetRange(strategy Strategy, size catalog.TeamSize, a assessment.Assessment) (int, int) {
	var min, max int
	switch strategy {
	case StrategyMonoStack:
		min, max = 3, 4
	case StrategyNativeIntegrator:
		min, max = 5, 7
	default:
		min, max = 4, 6
	}
	if size == catalog.TeamMedium || size == catalog.TeamLarge {
		max--
	}
	if a.HasPain(assessment.PainTooManyTools) {
		max--
	}
	if max < min {
		max = min
	}
	return min, max
}

// buildMonoStack favors one hub tool carrying several workflow phases plus
// the few specialists a hub cannot replace.
func (b *Builder) buildMonoStack(ctx context.Context, pc *PipelineContext) BuiltScenario {
	_, max := targetRange(StrategyMonoStack, pc.Assessment.TeamSize, pc.Assessment)

	var stack []catalog.Tool
	seen := map[string]bool{}
	add := func(t catalog.Tool) {
		if !seen[t.ID] && len(stack) < max {
			stack = append(stack, t)
			seen[t.ID] = true
		}
	}

	if pc.Anchor != nil {
		add(*pc.Anchor)
	} else if hub, ok := bestHub(pc); ok {
		add(hub)
	} else if len(pc.Ranked) > 0 {
		add(pc.Ranked[0].Tool)
	}

	for _, cat := range []catalog.Category{catalog.CategoryCommunication, catalog.CategoryDevelopment} {
		if !categoryCovered(stack, cat) {
			if t, ok := bestInCategory(pc.Ranked, cat, seen); ok {
				add(t)
			}
		}
	}

	// Top up with highest-ranked tools whose primary category the stack
	// does not carry yet.
	for _, st := range pc.Ranked {
		if len(stack) >= max {
			break
		}
		if seen[st.Tool.ID] || categoryCovered(stack, st.Tool.Category) {
			continue
		}
		add(st.Tool)
	}

	return b.finalize(ctx, pc, StrategyMonoStack, "Mono-Stack", stack)
}

// bestHub finds the highest-ranked tool covering at least three workflow
// phases.
func bestHub(pc *PipelineContext) (catalog.Tool, bool) {
	for _, st := range pc.Ranked {
		if PhaseCoverage(st.Tool, pc.Phases) >= 3 {
			return st.Tool, true
		}
	}
	return catalog.Tool{}, false
}

// buildNativeIntegrator fills the essential-category checklist one pick at a
// time, rescoring each candidate's integration dimension against the stack
// chosen so far. Later picks therefore depend on earlier ones.
func (b *Builder) buildNativeIntegrator(ctx context.Context, pc *PipelineContext) BuiltScenario {
	min, max := targetRange(StrategyNativeIntegrator, pc.Assessment.TeamSize, pc.Assessment)

	var stack []catalog.Tool
	seen := map[string]bool{}
	var scoreSum float64
	accepted := 0
	add := func(t catalog.Tool, score float64) {
		stack = append(stack, t)
		seen[t.ID] = true
		scoreSum += score
		accepted++
	}

	anchorScore := 0.0
	if pc.Anchor != nil {
		anchorScore = rankedScore(pc, pc.Anchor.ID)
		add(*pc.Anchor, anchorScore)
	}

	for _, cat := range essentialCategories {
		if len(stack) >= max {
			break
		}
		if !pc.Assessment.WantsCategory(cat) {
			continue
		}
		// The anchor covers its own category but stays contestable.
		anchorHolds := pc.Anchor != nil && containsID(stack, pc.Anchor.ID) && pc.Anchor.InCategory(cat)
		if categoryCovered(stack, cat) && !anchorHolds {
			continue
		}
		// When the anchor's slot is contested both sides are scored against
		// the rest of the stack, under the same weights.
		chosen := stackIDs(stack)
		anchorRescored := anchorScore
		if anchorHolds {
			rest := make([]string, 0, len(chosen))
			for _, id := range chosen {
				if id != pc.Anchor.ID {
					rest = append(rest, id)
				}
			}
			chosen = rest
			if st, found := rankedTool(pc, pc.Anchor.ID); found {
				anchorRescored = b.rescore(ctx, st, pc.Weights, chosen)
			}
		}
		cand, score, ok := b.bestRescored(ctx, pc, cat, seen, chosen)
		if !ok {
			continue
		}
		if accepted >= 2 && score < qualityFloorRatio*(scoreSum/float64(accepted)) {
			continue
		}
		if anchorHolds {
			if score <= anchorChallengeMargin*anchorRescored {
				continue
			}
			// The challenger decisively outscores the anchor and takes
			// its slot.
			stack = removeID(stack, pc.Anchor.ID)
			scoreSum -= anchorScore
			accepted--
		}
		add(cand, score)
	}

	for _, st := range pc.Ranked {
		if len(stack) >= min {
			break
		}
		if seen[st.Tool.ID] {
			continue
		}
		// Filling below minimum never reopens the anchor's category.
		if pc.Anchor != nil && containsID(stack, pc.Anchor.ID) && st.Tool.InCategory(pc.Anchor.Category) {
			continue
		}
		add(st.Tool, st.Score)
	}

	return b.finalize(ctx, pc, StrategyNativeIntegrator, "Native Integrator", stack)
}

// bestRescored picks the strongest unchosen candidate in a category after
// swapping its integration sub-score for one computed against the current
// stack.
func (b *Builder) bestRescored(ctx context.Context, pc *PipelineContext, cat catalog.Category, seen map[string]bool, chosenIDs []string) (catalog.Tool, float64, bool) {
	var candidates []ScoredTool
	for _, st := range pc.Ranked {
		if seen[st.Tool.ID] || !st.Tool.InCategory(cat) {
			continue
		}
		candidates = append(candidates, st)
	}
	if len(candidates) == 0 {
		return catalog.Tool{}, -1, false
	}

	// Candidates are independent given the chosen set, so their integration
	// lookups run in parallel. The winner is picked sequentially afterwards
	// so rank order still breaks score ties.
	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range candidates {
		g.Go(func() error {
			scores[i] = b.rescore(gctx, st, pc.Weights, chosenIDs)
			return nil
		})
	}
	_ = g.Wait()

	best := candidates[0].Tool
	bestScore := scores[0]
	for i := 1; i < len(candidates); i++ {
		if scores[i] > bestScore {
			best = candidates[i].Tool
			bestScore = scores[i]
		}
	}
	return best, bestScore, true
}

func (b *Builder) rescore(ctx context.Context, st ScoredTool, w WeightProfile, chosenIDs []string) float64 {
	sub, err := b.integrations.SubScore(ctx, st.Tool.ID, chosenIDs)
	if err != nil {
		telemetry.Info("scenario.rescore_degraded", map[string]any{"tool": st.Tool.ID, "error": err.Error()})
		return st.Score
	}
	breakdown := st.Breakdown
	breakdown.Integration = float64(sub)
	// Recipe chains with the chosen stack add on top of the weighted
	// composite, so automation-dense candidates win otherwise-even picks.
	return breakdown.Composite(w) + float64(b.integrations.SynergyBonus(ctx, st.Tool.ID, chosenIDs))
}

// buildAgenticLean picks from the AI-capable slice of the ranked pool. When
// the anchor itself has no AI features it is swapped for the AI tool in its
// category that best combines integration reach with momentum.
func (b *Builder) buildAgenticLean(ctx context.Context, pc *PipelineContext) BuiltScenario {
	_, max := targetRange(StrategyAgenticLean, pc.Assessment.TeamSize, pc.Assessment)

	var pool []ScoredTool
	for _, st := range pc.Ranked {
		if st.Tool.HasAIFeatures {
			pool = append(pool, st)
		}
	}

	var stack []catalog.Tool
	seen := map[string]bool{}
	add := func(t catalog.Tool) {
		if !seen[t.ID] && len(stack) < max {
			stack = append(stack, t)
			seen[t.ID] = true
		}
	}

	if pc.Anchor != nil {
		if pc.Anchor.HasAIFeatures {
			add(*pc.Anchor)
		} else if sub, ok := b.aiSubstitute(ctx, pool, pc.Anchor.Category); ok {
			add(sub)
		}
	}

	for _, st := range pool {
		if len(stack) >= max-1 {
			break
		}
		if seen[st.Tool.ID] || categoryCovered(stack, st.Tool.Category) {
			continue
		}
		add(st.Tool)
	}

	// A lean stack still needs somewhere humans talk.
	if !categoryCovered(stack, catalog.CategoryCommunication) {
		if t, ok := bestInCategory(pc.Ranked, catalog.CategoryCommunication, seen); ok {
			add(t)
		}
	}

	return b.finalize(ctx, pc, StrategyAgenticLean, "Agentic Lean", stack)
}

// aiSubstitute ranks AI candidates in the anchor's category by a blend of
// integration reach against the company's current tools and market momentum.
func (b *Builder) aiSubstitute(ctx context.Context, pool []ScoredTool, cat catalog.Category) (catalog.Tool, bool) {
	var best catalog.Tool
	bestScore := -1.0
	for _, st := range pool {
		if !st.Tool.InCategory(cat) {
			continue
		}
		score := 0.4*st.Breakdown.Integration + 0.6*st.Tool.Popularity.Momentum
		if score > bestScore {
			best = st.Tool
			bestScore = score
		}
	}
	return best, bestScore >= 0
}

// finalize runs the shared tail of every policy: redundancy pruning,
// conditional replacements, then the derived metrics.
func (b *Builder) finalize(ctx context.Context, pc *PipelineContext, strategy Strategy, name string, stack []catalog.Tool) BuiltScenario {
	anchorID := ""
	if pc.Anchor != nil {
		anchorID = pc.Anchor.ID
	}

	stack = b.redundancy.RemoveRedundant(ctx, stack, anchorID)
	stack = b.redundancy.ApplyReplacements(ctx, stack, anchorID, replacementContext(pc.Assessment, strategy), pc.ToolByID)

	return BuiltScenario{
		Name:                name,
		Strategy:            strategy,
		Tools:               stack,
		Displaced:           displaced(pc.CurrentTools, stack),
		ComplexityReduction: complexityReduction(len(pc.CurrentTools), len(stack)),
		MonthlyCostPerUser:  stackCost(stack),
		MatchedClusters:     b.matchClusters(ctx, stack),
		Workflow:            BuildWorkflow(stack, pc.Phases),
	}
}

func replacementContext(a assessment.Assessment, strategy Strategy) overlap.ReplacementContext {
	return overlap.ReplacementContext{
		CostSensitivity: a.CostSensitivity,
		TechSavviness:   a.TechSavviness,
		TeamSize:        a.TeamSize,
		NeedsCompliance: a.HighStakes(),
		PreferAINative:  a.Automation == assessment.AutomationAutoPilot || strategy == StrategyAgenticLean,
	}
}

func displaced(current, stack []catalog.Tool) []catalog.Tool {
	var out []catalog.Tool
	for _, t := range current {
		if !containsID(stack, t.ID) {
			out = append(out, t)
		}
	}
	return out
}

func complexityReduction(currentCount, newCount int) int {
	if currentCount == 0 || newCount >= currentCount {
		return 0
	}
	return int(math.Round(float64(currentCount-newCount) / float64(currentCount) * 100))
}

func stackCost(stack []catalog.Tool) float64 {
	total := 0.0
	for _, t := range stack {
		if t.MonthlyCostPerUser != nil {
			total += *t.MonthlyCostPerUser
		}
	}
	return total
}

// matchClusters reports the curated bundles at least two stack tools belong
// to. Bundle lookup failure costs the enrichment, never the scenario.
func (b *Builder) matchClusters(ctx context.Context, stack []catalog.Tool) []catalog.Bundle {
	bundles, err := b.bundles.GetBundles(ctx)
	if err != nil {
		telemetry.Info("scenario.clusters_degraded", map[string]any{"error": err.Error()})
		return nil
	}
	var out []catalog.Bundle
	for _, bundle := range bundles {
		hits := 0
		for _, id := range bundle.ToolIDs {
			if containsID(stack, id) {
				hits++
			}
		}
		if hits >= 2 {
			out = append(out, bundle)
		}
	}
	return out
}

func rankedScore(pc *PipelineContext, id string) float64 {
	if st, ok := rankedTool(pc, id); ok {
		return st.Score
	}
	return 50
}

func rankedTool(pc *PipelineContext, id string) (ScoredTool, bool) {
	for _, st := range pc.Ranked {
		if st.Tool.ID == id {
			return st, true
		}
	}
	return ScoredTool{}, false
}

func categoryCovered(stack []catalog.Tool, cat catalog.Category) bool {
	for _, t := range stack {
		if t.InCategory(cat) {
			return true
		}
	}
	return false
}

func bestInCategory(ranked []ScoredTool, cat catalog.Category, seen map[string]bool) (catalog.Tool, bool) {
	for _, st := range ranked {
		if !seen[st.Tool.ID] && st.Tool.InCategory(cat) {
			return st.Tool, true
		}
	}
	return catalog.Tool{}, false
}

func stackIDs(stack []catalog.Tool) []string {
	out := make([]string, 0, len(stack))
	for _, t := range stack {
		out = append(out, t.ID)
	}
	return out
}

func removeID(stack []catalog.Tool, id string) []catalog.Tool {
	out := stack[:0]
	for _, t := range stack {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
