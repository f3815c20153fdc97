package assessment

import (
	"strings"
	"testing"

	"stackadvisor-backend/internal/catalog"
)

func validAssessment() Assessment {
	return Assessment{
		Stage:           catalog.StageSeed,
		TeamSize:        catalog.TeamSmall,
		Automation:      AutomationHybrid,
		TechSavviness:   catalog.SavvyDecent,
		BudgetPerUser:   50,
		CostSensitivity: CostBalanced,
	}
}

func TestNormalizeCanonicalizesSynonyms(t *testing.T) {
	a := Normalize(Assessment{
		Stage:           "Pre-Seed",
		TeamSize:        "2-10",
		Automation:      " Auto-Pilot ",
		TechSavviness:   "EXPERT",
		CostSensitivity: "Price-First",
	})
	if a.Stage != catalog.StageSeed {
		t.Fatalf("Stage = %s, want seed", a.Stage)
	}
	if a.TeamSize != catalog.TeamSmall {
		t.Fatalf("TeamSize = %s, want small", a.TeamSize)
	}
	if a.Automation != AutomationAutoPilot {
		t.Fatalf("Automation = %s, want auto-pilot", a.Automation)
	}
	if a.TechSavviness != catalog.SavvyNinja {
		t.Fatalf("TechSavviness = %s, want ninja", a.TechSavviness)
	}
	if a.CostSensitivity != CostPriceFirst {
		t.Fatalf("CostSensitivity = %s, want price-first", a.CostSensitivity)
	}
}

func TestNormalizeDefaultsOptionalFields(t *testing.T) {
	a := Normalize(Assessment{})
	if a.ComplianceSensitivity != ComplianceRelaxed {
		t.Fatalf("ComplianceSensitivity = %s, want relaxed", a.ComplianceSensitivity)
	}
	if a.Anchor.Kind != AnchorNone {
		t.Fatalf("Anchor.Kind = %s, want none", a.Anchor.Kind)
	}
}

func TestNormalizeTrimsAnchorOtherName(t *testing.T) {
	a := Normalize(Assessment{Anchor: AnchorPreference{Kind: "Other", OtherName: "  Notion  "}})
	if a.Anchor.Kind != AnchorExplicitOther {
		t.Fatalf("Anchor.Kind = %s, want other", a.Anchor.Kind)
	}
	if a.Anchor.OtherName != "Notion" {
		t.Fatalf("Anchor.OtherName = %q, want Notion", a.Anchor.OtherName)
	}
}

func TestValidateAcceptsNormalizedAssessment(t *testing.T) {
	if err := Validate(Normalize(validAssessment())); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsUnknownEnumValue(t *testing.T) {
	a := validAssessment()
	a.TeamSize = "galactic"
	err := Validate(Normalize(a))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "TeamSize") {
		t.Fatalf("error should name the field, got %v", err)
	}
}

func TestValidateRejectsNegativeBudget(t *testing.T) {
	a := validAssessment()
	a.BudgetPerUser = -5
	if err := Validate(Normalize(a)); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateRejectsBadPainPoint(t *testing.T) {
	a := validAssessment()
	a.PainPoints = []PainPoint{"mondays"}
	if err := Validate(Normalize(a)); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateOtherAnchorNeedsName(t *testing.T) {
	a := validAssessment()
	a.Anchor = AnchorPreference{Kind: AnchorExplicitOther}
	err := Validate(Normalize(a))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "anchor.otherName") {
		t.Fatalf("error should name anchor.otherName, got %v", err)
	}
}

func TestCurrentToolNamesSplitsOnSeparators(t *testing.T) {
	a := Assessment{CurrentToolsRaw: "notion, slack;  github\nfigma, "}
	got := a.CurrentToolNames()
	want := []string{"notion", "slack", "github", "figma"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHighStakesNeedsSensitivityAndNeeds(t *testing.T) {
	a := validAssessment()
	a.ComplianceSensitivity = ComplianceHighStakes
	if a.HighStakes() {
		t.Fatal("high-stakes with no needs should not activate")
	}
	a.ComplianceNeeds = []ComplianceRequirement{RequireSOC2}
	if !a.HighStakes() {
		t.Fatal("high-stakes with needs should activate")
	}
	a.ComplianceSensitivity = ComplianceStandard
	if a.HighStakes() {
		t.Fatal("standard sensitivity should not activate")
	}
}
