// Package narrative turns a built scenario into the short prose pitch shown
// to the user. The default generator is a deterministic template; an
// LLM-backed generator can be swapped in by config. A narrative failure is
// cosmetic and never fails the recommendation carrying it.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/costs"
	"stackadvisor-backend/internal/recommend/engine"
)

// Input is everything a generator may draw on for one scenario.
type Input struct {
	Assessment assessment.Assessment
	Scenario   engine.BuiltScenario
	Costs      costs.Projection
}

// Generator produces the prose pitch for one scenario.
type Generator interface {
	Narrate(ctx context.Context, in Input) (string, error)
}

// TemplateGenerator is the deterministic default. Same input, same prose.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

var strategyLead = map[engine.Strategy]string{
	engine.StrategyMonoStack:        "consolidates your work into one hub plus a few specialists",
	engine.StrategyNativeIntegrator: "picks a best-in-class tool per job, chosen for how natively they connect",
	engine.StrategyAgenticLean:      "leans on AI-native tools so a small team can run a wide workflow",
}

func (g *TemplateGenerator) Narrate(_ context.Context, in Input) (string, error) {
	s := in.Scenario
	var b strings.Builder

	lead, ok := strategyLead[s.Strategy]
	if !ok {
		lead = "combines the tools below"
	}
	fmt.Fprintf(&b, "%s %s: %s.", s.Name, lead, toolNames(s.Tools))

	if len(s.Displaced) > 0 {
		fmt.Fprintf(&b, " It replaces %s", toolNames(s.Displaced))
		if s.ComplexityReduction > 0 {
			fmt.Fprintf(&b, ", trimming your stack by about %d%%", s.ComplexityReduction)
		}
		b.WriteString(".")
	}

	fmt.Fprintf(&b, " Expect roughly $%.0f per person per month", in.Costs.MonthlyPerUser)
	if in.Costs.MonthlySavingsPerUser > 0 {
		fmt.Fprintf(&b, ", about $%.0f less than today", in.Costs.MonthlySavingsPerUser)
	}
	b.WriteString(".")

	if line := painLine(in.Assessment); line != "" {
		b.WriteString(" ")
		b.WriteString(line)
	}
	return b.String(), nil
}

func painLine(a assessment.Assessment) string {
	switch {
	case a.HasPain(assessment.PainTooManyTools):
		return "Fewer tools means fewer places for work to hide."
	case a.HasPain(assessment.PainTooExpensive):
		return "The lineup favors tools that stay cheap as you grow."
	case a.HasPain(assessment.PainManualWork):
		return "The lineup favors tools that automate the repetitive parts."
	case a.HasPain(assessment.PainHardToFindInfo):
		return "Everything lands where the whole team can search it."
	default:
		return ""
	}
}

func toolNames(tools []catalog.Tool) string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	switch len(names) {
	case 0:
		return "no tools"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
