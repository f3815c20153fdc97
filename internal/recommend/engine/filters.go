package engine

import (
	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

// lowBudgetThreshold is the per-user budget under which value-first companies
// still exclude enterprise-tier tools.
const lowBudgetThreshold = 20.0

// balancedBudgetTolerance stretches the budget for balanced cost sensitivity.
const balancedBudgetTolerance = 1.5

// ApplyFilters runs the four hard filters in fixed order. Each filter is a
// pure predicate, so the composed result equals the intersection of the
// filters applied independently.
func ApplyFilters(tools []catalog.Tool, a assessment.Assessment) []catalog.Tool {
	out := FilterCompliance(tools, a)
	out = FilterBudget(out, a)
	out = FilterSavviness(out, a)
	out = FilterFit(out, a)
	return out
}

// FilterCompliance drops tools missing any declared requirement. It is active
// only for high-stakes companies with at least one declared requirement.
func FilterCompliance(tools []catalog.Tool, a assessment.Assessment) []catalog.Tool {
	if !a.HighStakes() {
		return tools
	}
	return keep(tools, func(t catalog.Tool) bool {
		for _, need := range a.ComplianceNeeds {
			if !meetsRequirement(t, need) {
				return false
			}
		}
		return true
	})
}

func meetsRequirement(t catalog.Tool, need assessment.ComplianceRequirement) bool {
	switch need {
	case assessment.RequireSOC2:
		return t.Compliance.SOC2
	case assessment.RequireHIPAA:
		return t.Compliance.HIPAA
	case assessment.RequireGDPR:
		// EU residency satisfies the GDPR requirement on its own.
		return t.Compliance.GDPR || t.Compliance.EUResidency
	case assessment.RequireSelfHosted:
		return t.Compliance.SelfHosted
	case assessment.RequireAirGapped:
		return t.Compliance.AirGapped
	default:
		return true
	}
}

// FilterBudget drops tools the company cannot afford. Free-forever and
// unknown-cost tools always pass; the rest depends on cost sensitivity.
func FilterBudget(tools []catalog.Tool, a assessment.Assessment) []catalog.Tool {
	return keep(tools, func(t catalog.Tool) bool {
		if t.MonthlyCostPerUser == nil || isFreeForever(t) {
			return true
		}
		cost := *t.MonthlyCostPerUser
		switch a.CostSensitivity {
		case assessment.CostPriceFirst:
			return cost <= a.BudgetPerUser
		case assessment.CostBalanced:
			return cost <= a.BudgetPerUser*balancedBudgetTolerance
		case assessment.CostValueFirst:
			if a.BudgetPerUser < lowBudgetThreshold && t.PricingTier == catalog.PricingEnterprise {
				return false
			}
			return true
		default:
			return true
		}
	})
}

// FilterSavviness drops tools above the team's complexity tolerance.
func FilterSavviness(tools []catalog.Tool, a assessment.Assessment) []catalog.Tool {
	switch a.TechSavviness {
	case catalog.SavvyNinja:
		return tools
	case catalog.SavvyNewbie:
		return keep(tools, func(t catalog.Tool) bool {
			return t.Complexity == catalog.ComplexitySimple || t.Complexity == catalog.ComplexityModerate
		})
	default:
		return keep(tools, func(t catalog.Tool) bool {
			return t.Complexity != catalog.ComplexityExpert
		})
	}
}

// FilterFit drops tools whose declared best-for hints exclude the company.
// An empty hint set is open-ended and always fits.
func FilterFit(tools []catalog.Tool, a assessment.Assessment) []catalog.Tool {
	return keep(tools, func(t catalog.Tool) bool {
		if !matchesTeamSize(t, a.TeamSize) {
			return false
		}
		if !matchesStage(t, a.Stage) {
			return false
		}
		return matchesSavvinessHint(t, a.TechSavviness)
	})
}

func matchesTeamSize(t catalog.Tool, size catalog.TeamSize) bool {
	if len(t.BestForTeamSizes) == 0 {
		return true
	}
	for _, s := range t.BestForTeamSizes {
		if s == size {
			return true
		}
	}
	return false
}

func matchesStage(t catalog.Tool, stage catalog.Stage) bool {
	if len(t.BestForStages) == 0 {
		return true
	}
	for _, s := range t.BestForStages {
		if s == stage {
			return true
		}
	}
	return false
}

func matchesSavvinessHint(t catalog.Tool, savvy catalog.TechSavviness) bool {
	if len(t.BestForSavviness) == 0 {
		return true
	}
	for _, s := range t.BestForSavviness {
		if s == savvy {
			return true
		}
	}
	return false
}

func isFreeForever(t catalog.Tool) bool {
	if t.PricingTier == catalog.PricingFree {
		return true
	}
	return t.HasFreeTier && t.MonthlyCostPerUser != nil && *t.MonthlyCostPerUser == 0
}

func keep(tools []catalog.Tool, pred func(catalog.Tool) bool) []catalog.Tool {
	out := make([]catalog.Tool, 0, len(tools))
	for _, t := range tools {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
