package engine

import "stackadvisor-backend/internal/catalog"

// Phase is one step of the working workflow, satisfied by any tool in its
// category set.
type Phase struct {
	Name       string             `json:"name"`
	Categories []catalog.Category `json:"categories"`
}

// defaultPhases is the full built-in phase map, used when no externally
// provided map is available.
var defaultPhases = []Phase{
	{Name: "plan", Categories: []catalog.Category{catalog.CategoryProjectManagement}},
	{Name: "document", Categories: []catalog.Category{catalog.CategoryDocumentation}},
	{Name: "collaborate", Categories: []catalog.Category{catalog.CategoryDocumentation, catalog.CategoryCommunication}},
	{Name: "communicate", Categories: []catalog.Category{catalog.CategoryCommunication}},
	{Name: "meet", Categories: []catalog.Category{catalog.CategoryMeetings}},
	{Name: "build", Categories: []catalog.Category{catalog.CategoryDevelopment, catalog.CategoryAIBuilder}},
	{Name: "design", Categories: []catalog.Category{catalog.CategoryDesign}},
	{Name: "automate", Categories: []catalog.Category{catalog.CategoryAutomation, catalog.CategoryAIAssistant}},
	{Name: "measure", Categories: []catalog.Category{catalog.CategoryAnalytics, catalog.CategoryGrowth}},
}

// corePhases is the last-resort minimal phase list.
var corePhases = []Phase{
	{Name: "plan", Categories: []catalog.Category{catalog.CategoryProjectManagement}},
	{Name: "communicate", Categories: []catalog.Category{catalog.CategoryCommunication}},
	{Name: "build", Categories: []catalog.Category{catalog.CategoryDevelopment}},
}

// ResolvePhases picks the phase map by explicit three-tier precedence:
// a provided map with at least one valid phase wins; otherwise the full
// built-in map; otherwise the minimal core list. Invalid entries (no name or
// no categories) are dropped before the tier is judged.
func ResolvePhases(provided []Phase) []Phase {
	if valid := validPhases(provided); len(valid) > 0 {
		return valid
	}
	if valid := validPhases(defaultPhases); len(valid) > 0 {
		return valid
	}
	return corePhases
}

func validPhases(phases []Phase) []Phase {
	var out []Phase
	for _, p := range phases {
		if p.Name == "" || len(p.Categories) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PhaseCoverage counts the phases the tool covers through its primary or
// secondary categories.
func PhaseCoverage(t catalog.Tool, phases []Phase) int {
	count := 0
	for _, p := range phases {
		if phaseCovered(t, p) {
			count++
		}
	}
	return count
}

func phaseCovered(t catalog.Tool, p Phase) bool {
	for _, cat := range p.Categories {
		if t.InCategory(cat) {
			return true
		}
	}
	return false
}

// BuildWorkflow maps each phase to the stack tools covering it. Phases no
// stack tool covers are omitted rather than reported as errors.
func BuildWorkflow(stack []catalog.Tool, phases []Phase) []WorkflowStep {
	var out []WorkflowStep
	for _, p := range phases {
		var covering []catalog.Tool
		for _, t := range stack {
			if phaseCovered(t, p) {
				covering = append(covering, t)
			}
		}
		if len(covering) == 0 {
			continue
		}
		out = append(out, WorkflowStep{Phase: p.Name, Tools: covering})
	}
	return out
}
