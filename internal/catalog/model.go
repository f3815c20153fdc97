package catalog

import "strings"

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryProjectManagement Category = "project-management"
	CategoryDocumentation     Category = "documentation"
	CategoryCommunication     Category = "communication"
	CategoryDevelopment       Category = "development"
	CategoryDesign            Category = "design"
	CategoryMeetings          Category = "meetings"
	CategoryAutomation        Category = "automation"
	CategoryAIAssistant       Category = "ai-assistant"
	CategoryAIBuilder         Category = "ai-builder"
	CategoryAnalytics         Category = "analytics"
	CategoryGrowth            Category = "growth"
	CategoryOther             Category = "other"
)

// Complexity is a tool's learning-curve tier.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityAdvanced Complexity = "advanced"
	ComplexityExpert   Complexity = "expert"
)

// PricingTier buckets a tool's commercial positioning.
type PricingTier string

const (
	PricingFree       PricingTier = "free"
	PricingFreemium   PricingTier = "freemium"
	PricingPaid       PricingTier = "paid"
	PricingEnterprise PricingTier = "enterprise"
)

// TeamSize buckets a company's headcount.
type TeamSize string

const (
	TeamSolo   TeamSize = "solo"
	TeamSmall  TeamSize = "small"
	TeamMedium TeamSize = "medium"
	TeamLarge  TeamSize = "large"
)

// Stage is a company's growth stage.
type Stage string

const (
	StageBootstrapping Stage = "bootstrapping"
	StageSeed          Stage = "seed"
	StageGrowth        Stage = "growth"
	StageScale         Stage = "scale"
)

// TechSavviness is the team's tolerance for tool complexity.
type TechSavviness string

const (
	SavvyNewbie TechSavviness = "newbie"
	SavvyDecent TechSavviness = "decent"
	SavvyNinja  TechSavviness = "ninja"
)

// ComplianceFlags are the certifications and deployment modes a tool offers.
type ComplianceFlags struct {
	SOC2        bool `json:"soc2" yaml:"soc2"`
	HIPAA       bool `json:"hipaa" yaml:"hipaa"`
	GDPR        bool `json:"gdpr" yaml:"gdpr"`
	EUResidency bool `json:"euResidency" yaml:"eu_residency"`
	SelfHosted  bool `json:"selfHosted" yaml:"self_hosted"`
	AirGapped   bool `json:"airGapped" yaml:"air_gapped"`
}

// Popularity is the five-part popularity sub-score, each component 0-100.
type Popularity struct {
	Adoption    float64 `json:"adoption" yaml:"adoption"`
	Sentiment   float64 `json:"sentiment" yaml:"sentiment"`
	Momentum    float64 `json:"momentum" yaml:"momentum"`
	Ecosystem   float64 `json:"ecosystem" yaml:"ecosystem"`
	Reliability float64 `json:"reliability" yaml:"reliability"`
}

// Composite collapses the five components into one 0-100 score.
// Adoption and sentiment dominate; reliability matters more than raw ecosystem size.
func (p Popularity) Composite() float64 {
	return p.Adoption*0.30 + p.Sentiment*0.25 + p.Momentum*0.15 + p.Ecosystem*0.10 + p.Reliability*0.20
}

// Tool is one catalog entry. Tools are immutable inputs to the engine.
type Tool struct {
	ID                  string          `json:"id" yaml:"id"`
	Name                string          `json:"name" yaml:"name"`
	Category            Category        `json:"category" yaml:"category"`
	SecondaryCategories []Category      `json:"secondaryCategories,omitempty" yaml:"secondary_categories"`
	Complexity          Complexity      `json:"complexity" yaml:"complexity"`
	PricingTier         PricingTier     `json:"pricingTier" yaml:"pricing_tier"`
	MonthlyCostPerUser  *float64        `json:"monthlyCostPerUser" yaml:"monthly_cost_per_user"`
	HasFreeTier         bool            `json:"hasFreeTier" yaml:"has_free_tier"`
	BestForTeamSizes    []TeamSize      `json:"bestForTeamSizes,omitempty" yaml:"best_for_team_sizes"`
	BestForStages       []Stage         `json:"bestForStages,omitempty" yaml:"best_for_stages"`
	BestForSavviness    []TechSavviness `json:"bestForSavviness,omitempty" yaml:"best_for_savviness"`
	Compliance          ComplianceFlags `json:"compliance" yaml:"compliance"`
	HasAIFeatures       bool            `json:"hasAIFeatures" yaml:"has_ai_features"`
	Popularity          Popularity      `json:"popularity" yaml:"popularity"`
	Aliases             []string        `json:"aliases,omitempty" yaml:"aliases"`
}

// InCategory reports whether the tool's primary or any secondary category matches.
func (t Tool) InCategory(cat Category) bool {
	if t.Category == cat {
		return true
	}
	for _, c := range t.SecondaryCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// MatchesName reports whether raw equals the tool's id, name, or an alias, case-insensitively.
func (t Tool) MatchesName(raw string) bool {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return false
	}
	if strings.ToLower(t.ID) == needle || strings.ToLower(t.Name) == needle {
		return true
	}
	for _, alias := range t.Aliases {
		if strings.ToLower(strings.TrimSpace(alias)) == needle {
			return true
		}
	}
	return false
}

// Bundle is a curated set of tools known to work well together.
type Bundle struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	ToolIDs     []string `json:"toolIds" yaml:"tool_ids"`
}
