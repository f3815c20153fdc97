package assessment

import (
	"strings"

	"stackadvisor-backend/internal/catalog"
)

// CostSensitivity is how the company trades cost against value.
type CostSensitivity string

const (
	CostPriceFirst CostSensitivity = "price-first"
	CostBalanced   CostSensitivity = "balanced"
	CostValueFirst CostSensitivity = "value-first"
)

// AutomationPhilosophy is how much the company wants machines driving.
type AutomationPhilosophy string

const (
	AutomationCoPilot   AutomationPhilosophy = "co-pilot"
	AutomationHybrid    AutomationPhilosophy = "hybrid"
	AutomationAutoPilot AutomationPhilosophy = "auto-pilot"
)

// ComplianceSensitivity gates the compliance filter.
type ComplianceSensitivity string

const (
	ComplianceRelaxed    ComplianceSensitivity = "relaxed"
	ComplianceStandard   ComplianceSensitivity = "standard"
	ComplianceHighStakes ComplianceSensitivity = "high-stakes"
)

// ComplianceRequirement is one certification or deployment mode the company demands.
type ComplianceRequirement string

const (
	RequireSOC2       ComplianceRequirement = "soc2"
	RequireHIPAA      ComplianceRequirement = "hipaa"
	RequireGDPR       ComplianceRequirement = "gdpr"
	RequireSelfHosted ComplianceRequirement = "self-hosted"
	RequireAirGapped  ComplianceRequirement = "air-gapped"
)

// PainPoint is a self-reported operational pain.
type PainPoint string

const (
	PainTooManyTools   PainPoint = "too-many-tools"
	PainThingsSlip     PainPoint = "things-fall-through-cracks"
	PainTooExpensive   PainPoint = "too-expensive"
	PainManualWork     PainPoint = "manual-repetitive-work"
	PainHardToFindInfo PainPoint = "hard-to-find-information"
	PainSlowShipping   PainPoint = "slow-shipping"
)

// AnchorKind is the declared anchor-type preference.
type AnchorKind string

const (
	AnchorNone          AnchorKind = "none"
	AnchorDocCentric    AnchorKind = "doc-centric"
	AnchorDevCentric    AnchorKind = "dev-centric"
	AnchorCommsCentric  AnchorKind = "communication-centric"
	AnchorExplicitOther AnchorKind = "other"
)

// AnchorPreference pairs the anchor kind with an explicit tool name for "other".
type AnchorPreference struct {
	Kind      AnchorKind `json:"kind" validate:"omitempty,oneof=none doc-centric dev-centric communication-centric other"`
	OtherName string     `json:"otherName,omitempty"`
}

// Assessment is the validated self-reported company profile. It is immutable
// for the duration of one recommendation request.
type Assessment struct {
	Stage                 catalog.Stage           `json:"stage" validate:"required,oneof=bootstrapping seed growth scale"`
	TeamSize              catalog.TeamSize        `json:"teamSize" validate:"required,oneof=solo small medium large"`
	CurrentToolsRaw       string                  `json:"currentTools"`
	Automation            AutomationPhilosophy    `json:"automation" validate:"required,oneof=co-pilot hybrid auto-pilot"`
	TechSavviness         catalog.TechSavviness   `json:"techSavviness" validate:"required,oneof=newbie decent ninja"`
	BudgetPerUser         float64                 `json:"budgetPerUser" validate:"gte=0"`
	CostSensitivity       CostSensitivity         `json:"costSensitivity" validate:"required,oneof=price-first balanced value-first"`
	ComplianceSensitivity ComplianceSensitivity   `json:"complianceSensitivity" validate:"omitempty,oneof=relaxed standard high-stakes"`
	ComplianceNeeds       []ComplianceRequirement `json:"complianceNeeds,omitempty" validate:"dive,oneof=soc2 hipaa gdpr self-hosted air-gapped"`
	Anchor                AnchorPreference        `json:"anchor"`
	PainPoints            []PainPoint             `json:"painPoints,omitempty" validate:"dive,oneof=too-many-tools things-fall-through-cracks too-expensive manual-repetitive-work hard-to-find-information slow-shipping"`
	WantedCategories      []catalog.Category      `json:"wantedCategories,omitempty"`
}

// HasPain reports whether the given pain point was declared.
func (a Assessment) HasPain(p PainPoint) bool {
	for _, pp := range a.PainPoints {
		if pp == p {
			return true
		}
	}
	return false
}

// HighStakes reports whether the compliance filter should activate.
func (a Assessment) HighStakes() bool {
	return a.ComplianceSensitivity == ComplianceHighStakes && len(a.ComplianceNeeds) > 0
}

// WantsCategory reports whether cat was declared as wanted. An empty wanted
// set means everything is wanted.
func (a Assessment) WantsCategory(cat catalog.Category) bool {
	if len(a.WantedCategories) == 0 {
		return true
	}
	for _, c := range a.WantedCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// CurrentToolNames splits the free-text current-tools string into trimmed tokens.
func (a Assessment) CurrentToolNames() []string {
	raw := strings.FieldsFunc(a.CurrentToolsRaw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	var out []string
	for _, token := range raw {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
