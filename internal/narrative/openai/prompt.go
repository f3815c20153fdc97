package openai

import (
	"fmt"
	"strings"

	"stackadvisor-backend/internal/narrative"
)

const systemPrompt = "You write short, concrete pitches for SaaS tool stacks. " +
	"Three sentences maximum. Plain language, no bullet points, no headings. " +
	"Mention the tools by name and the monthly cost. Never invent tools or prices."

func buildUserPrompt(in narrative.Input) string {
	s := in.Scenario
	var b strings.Builder

	fmt.Fprintf(&b, "Stack %q (%s strategy): ", s.Name, s.Strategy)
	names := make([]string, 0, len(s.Tools))
	for _, t := range s.Tools {
		names = append(names, t.Name)
	}
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(".\n")

	fmt.Fprintf(&b, "Company: %s stage, %s team, budget $%.0f per user per month.\n",
		in.Assessment.Stage, in.Assessment.TeamSize, in.Assessment.BudgetPerUser)
	if len(in.Assessment.PainPoints) > 0 {
		pains := make([]string, 0, len(in.Assessment.PainPoints))
		for _, p := range in.Assessment.PainPoints {
			pains = append(pains, string(p))
		}
		fmt.Fprintf(&b, "Pain points: %s.\n", strings.Join(pains, ", "))
	}
	fmt.Fprintf(&b, "Projected cost: $%.2f per user per month.", in.Costs.MonthlyPerUser)
	if in.Costs.MonthlySavingsPerUser > 0 {
		fmt.Fprintf(&b, " Saves $%.2f per user versus today.", in.Costs.MonthlySavingsPerUser)
	}
	if len(s.Displaced) > 0 {
		displaced := make([]string, 0, len(s.Displaced))
		for _, t := range s.Displaced {
			displaced = append(displaced, t.Name)
		}
		fmt.Fprintf(&b, "\nIt would replace: %s.", strings.Join(displaced, ", "))
	}
	return b.String()
}
