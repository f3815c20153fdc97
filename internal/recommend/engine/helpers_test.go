package engine

import (
	"context"
	"errors"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/integrations"
	"stackadvisor-backend/internal/overlap"
)

func money(v float64) *float64 { return &v }

func testTool(id string, cat catalog.Category, cost *float64) catalog.Tool {
	return catalog.Tool{
		ID:                 id,
		Name:               id,
		Category:           cat,
		Complexity:         catalog.ComplexitySimple,
		PricingTier:        catalog.PricingPaid,
		MonthlyCostPerUser: cost,
		Popularity: catalog.Popularity{
			Adoption: 60, Sentiment: 60, Momentum: 60, Ecosystem: 60, Reliability: 60,
		},
	}
}

func baseAssessment() assessment.Assessment {
	return assessment.Assessment{
		Stage:           catalog.StageSeed,
		TeamSize:        catalog.TeamSmall,
		Automation:      assessment.AutomationHybrid,
		TechSavviness:   catalog.SavvyDecent,
		BudgetPerUser:   50,
		CostSensitivity: assessment.CostBalanced,
	}
}

// fakeIntegrations serves canned edges and recipes per candidate.
type fakeIntegrations struct {
	edges   map[string][]integrations.Edge
	recipes map[string][]integrations.Recipe
	err     error
}

func (f *fakeIntegrations) EdgesFor(_ context.Context, toolID string) ([]integrations.Edge, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.edges[toolID], nil
}

func (f *fakeIntegrations) RecipesFor(_ context.Context, toolID string) ([]integrations.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recipes[toolID], nil
}

// fakeOverlap serves canned redundancies and replacement picks.
type fakeOverlap struct {
	redundancies []overlap.Redundancy
	replacements map[string]string
	err          error
}

func (f *fakeOverlap) RedundanciesAmong(_ context.Context, toolIDs []string) ([]overlap.Redundancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make(map[string]bool, len(toolIDs))
	for _, id := range toolIDs {
		ids[id] = true
	}
	var out []overlap.Redundancy
	for _, r := range f.redundancies {
		if r.Involves(ids) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOverlap) BestReplacement(_ context.Context, toolID string, _ overlap.ReplacementContext) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.replacements[toolID], nil
}

// fakeBundles serves a fixed bundle list.
type fakeBundles struct {
	bundles []catalog.Bundle
	err     error
}

func (f *fakeBundles) GetBundles(context.Context) ([]catalog.Bundle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bundles, nil
}

var errSourceDown = errors.New("source down")
