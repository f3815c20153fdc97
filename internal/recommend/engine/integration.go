package engine

import (
	"context"
	"math"

	"stackadvisor-backend/internal/integrations"
)

// Neutral defaults for the integration sub-score.
const (
	// integrationNeutral is used when the company has no current tools: there
	// is no data either way.
	integrationNeutral = 50
	// integrationNeutralLow is used when edges were looked up and none were
	// found: zero fit is worse than no data, but not disqualifying.
	integrationNeutralLow = 25
)

// IntegrationSource is the read-only integration data a scorer needs.
type IntegrationSource interface {
	EdgesFor(ctx context.Context, toolID string) ([]integrations.Edge, error)
	RecipesFor(ctx context.Context, toolID string) ([]integrations.Recipe, error)
}

// IntegrationScorer computes graph-based integration and synergy signals.
type IntegrationScorer struct {
	Source IntegrationSource
}

// NewIntegrationScorer constructs a scorer over the given data source.
func NewIntegrationScorer(source IntegrationSource) *IntegrationScorer {
	return &IntegrationScorer{Source: source}
}

// CoverageScore measures how well candidate connects to the selected set,
// rewarding breadth (share of the set reached) and depth (edge quality)
// weighted 60/40. The result is an integer in [0, 100]; an empty selected
// set or no edges at all yield 0.
func (s *IntegrationScorer) CoverageScore(ctx context.Context, candidateID string, selectedIDs []string) (int, error) {
	if len(selectedIDs) == 0 || s == nil || s.Source == nil {
		return 0, nil
	}
	edges, err := s.Source.EdgesFor(ctx, candidateID)
	if err != nil {
		return 0, err
	}

	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	matched := make(map[string]bool)
	var qualitySum float64
	var edgeCount int
	for _, e := range edges {
		other := e.Other(candidateID)
		if other == "" || !selected[other] {
			continue
		}
		matched[other] = true
		qualitySum += e.Quality.Weight()
		edgeCount++
	}
	if edgeCount == 0 {
		return 0, nil
	}

	coverage := float64(len(matched)) / float64(len(selectedIDs))
	avgQuality := qualitySum / float64(edgeCount)
	score := math.Round(math.Min(100, coverage*60+(avgQuality/100)*40))
	return int(score), nil
}

// SynergyBonus measures automation-recipe chains between candidate and the
// existing stack. The bonus is capped and discrete: chains of length 3, 4,
// and 5+ earn 5, 10, and 15 points. An empty stack or missing data earns 0.
func (s *IntegrationScorer) SynergyBonus(ctx context.Context, candidateID string, selectedIDs []string) int {
	if len(selectedIDs) == 0 || s == nil || s.Source == nil {
		return 0
	}
	recipes, err := s.Source.RecipesFor(ctx, candidateID)
	if err != nil {
		// Missing recipe data is steady-state, not an error.
		return 0
	}

	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	linked := make(map[string]bool)
	for _, r := range recipes {
		other := r.Other(candidateID)
		if other != "" && selected[other] {
			linked[other] = true
		}
	}

	chainLength := len(linked) + 1
	switch {
	case chainLength >= 5:
		return 15
	case chainLength >= 4:
		return 10
	case chainLength >= 3:
		return 5
	default:
		return 0
	}
}

// SubScore applies the documented neutral defaults on top of CoverageScore:
// 50 when there is no selected set to compare against, 25 when there is one
// but the candidate connects to none of it.
func (s *IntegrationScorer) SubScore(ctx context.Context, candidateID string, selectedIDs []string) (int, error) {
	if len(selectedIDs) == 0 {
		return integrationNeutral, nil
	}
	score, err := s.CoverageScore(ctx, candidateID, selectedIDs)
	if err != nil {
		return 0, err
	}
	if score == 0 {
		return integrationNeutralLow, nil
	}
	return score, nil
}
