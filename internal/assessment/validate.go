package assessment

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"stackadvisor-backend/internal/catalog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize lowercases and trims every enum-valued field so validation and the
// engine see canonical values.
func Normalize(a Assessment) Assessment {
	a.Stage = catalogStage(string(a.Stage))
	a.TeamSize = catalogTeamSize(string(a.TeamSize))
	a.Automation = AutomationPhilosophy(canon(string(a.Automation)))
	a.TechSavviness = catalogSavviness(string(a.TechSavviness))
	a.CostSensitivity = CostSensitivity(canon(string(a.CostSensitivity)))
	a.ComplianceSensitivity = ComplianceSensitivity(canon(string(a.ComplianceSensitivity)))
	if a.ComplianceSensitivity == "" {
		a.ComplianceSensitivity = ComplianceRelaxed
	}
	for i, need := range a.ComplianceNeeds {
		a.ComplianceNeeds[i] = ComplianceRequirement(canon(string(need)))
	}
	for i, p := range a.PainPoints {
		a.PainPoints[i] = PainPoint(canon(string(p)))
	}
	a.Anchor.Kind = AnchorKind(canon(string(a.Anchor.Kind)))
	if a.Anchor.Kind == "" {
		a.Anchor.Kind = AnchorNone
	}
	a.Anchor.OtherName = strings.TrimSpace(a.Anchor.OtherName)
	return a
}

// Validate checks an already-normalized assessment against its struct tags.
func Validate(a Assessment) error {
	if err := validate.Struct(a); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("invalid assessment fields: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid assessment: %w", err)
	}
	if a.Anchor.Kind == AnchorExplicitOther && a.Anchor.OtherName == "" {
		return fmt.Errorf("invalid assessment fields: anchor.otherName")
	}
	return nil
}

func canon(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func catalogStage(raw string) catalog.Stage {
	switch canon(raw) {
	case "bootstrapping", "bootstrap", "idea":
		return catalog.StageBootstrapping
	case "seed", "pre-seed":
		return catalog.StageSeed
	case "growth":
		return catalog.StageGrowth
	case "scale", "scaling":
		return catalog.StageScale
	default:
		return catalog.Stage(canon(raw))
	}
}

func catalogTeamSize(raw string) catalog.TeamSize {
	switch canon(raw) {
	case "solo", "1":
		return catalog.TeamSolo
	case "small", "2-10":
		return catalog.TeamSmall
	case "medium", "11-50":
		return catalog.TeamMedium
	case "large", "50+":
		return catalog.TeamLarge
	default:
		return catalog.TeamSize(canon(raw))
	}
}

func catalogSavviness(raw string) catalog.TechSavviness {
	switch canon(raw) {
	case "newbie", "beginner":
		return catalog.SavvyNewbie
	case "decent", "comfortable":
		return catalog.SavvyDecent
	case "ninja", "expert":
		return catalog.SavvyNinja
	default:
		return catalog.TechSavviness(canon(raw))
	}
}
