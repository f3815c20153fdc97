package overlap

import (
	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

// Level grades how much two tools overlap in capability.
type Level string

const (
	LevelFull    Level = "full"
	LevelPartial Level = "partial"
	LevelNiche   Level = "niche"
)

// Hint declares which side of a redundancy pair should survive.
type Hint string

const (
	HintPreferA          Hint = "prefer-a"
	HintPreferB          Hint = "prefer-b"
	HintContextDependent Hint = "context-dependent"
)

// Redundancy is one pairwise capability-overlap relation.
type Redundancy struct {
	ToolA string `json:"toolA" yaml:"a"`
	ToolB string `json:"toolB" yaml:"b"`
	Level Level  `json:"level" yaml:"level"`
	Hint  Hint   `json:"hint" yaml:"hint"`
}

// Involves reports whether both endpoints are inside the given id set.
func (r Redundancy) Involves(ids map[string]bool) bool {
	return ids[r.ToolA] && ids[r.ToolB]
}

// ReplacementContext is the company context a replacement rule may condition on.
type ReplacementContext struct {
	CostSensitivity assessment.CostSensitivity
	TechSavviness   catalog.TechSavviness
	TeamSize        catalog.TeamSize
	NeedsCompliance bool
	PreferAINative  bool
}

// Replacement is one "swap this tool for that one" rule with optional conditions.
// Nil condition fields match any context.
type Replacement struct {
	ToolID          string                      `json:"toolId" yaml:"tool"`
	ReplacementID   string                      `json:"replacementId" yaml:"replacement"`
	CostSensitivity *assessment.CostSensitivity `json:"costSensitivity,omitempty" yaml:"cost_sensitivity"`
	TechSavviness   *catalog.TechSavviness      `json:"techSavviness,omitempty" yaml:"tech_savviness"`
	TeamSize        *catalog.TeamSize           `json:"teamSize,omitempty" yaml:"team_size"`
	NeedsCompliance *bool                       `json:"needsCompliance,omitempty" yaml:"needs_compliance"`
	AINative        *bool                       `json:"aiNative,omitempty" yaml:"ai_native"`
	Priority        int                         `json:"priority" yaml:"priority"`
}

// Matches reports whether every declared condition holds for the context.
func (r Replacement) Matches(rc ReplacementContext) bool {
	if r.CostSensitivity != nil && *r.CostSensitivity != rc.CostSensitivity {
		return false
	}
	if r.TechSavviness != nil && *r.TechSavviness != rc.TechSavviness {
		return false
	}
	if r.TeamSize != nil && *r.TeamSize != rc.TeamSize {
		return false
	}
	if r.NeedsCompliance != nil && *r.NeedsCompliance != rc.NeedsCompliance {
		return false
	}
	if r.AINative != nil && *r.AINative != rc.PreferAINative {
		return false
	}
	return true
}
