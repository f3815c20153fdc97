package overlap

import (
	"context"
	"testing"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

func costPtr(v assessment.CostSensitivity) *assessment.CostSensitivity { return &v }
func boolPtr(v bool) *bool                                             { return &v }

func TestRedundanciesAmongNeedsBothEndpoints(t *testing.T) {
	repo := NewMemoryRepo([]Redundancy{
		{ToolA: "jira", ToolB: "linear", Level: LevelFull, Hint: HintContextDependent},
		{ToolA: "notion", ToolB: "confluence", Level: LevelFull, Hint: HintPreferA},
	}, nil)

	got, err := repo.RedundanciesAmong(context.Background(), []string{"jira", "linear", "notion"})
	if err != nil {
		t.Fatalf("RedundanciesAmong: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d redundancies, want 1", len(got))
	}
	if got[0].ToolA != "jira" || got[0].ToolB != "linear" {
		t.Fatalf("unexpected redundancy: %+v", got[0])
	}
}

func TestBestReplacementPicksHighestMatchingPriority(t *testing.T) {
	repo := NewMemoryRepo(nil, []Replacement{
		{ToolID: "jira", ReplacementID: "trello", CostSensitivity: costPtr(assessment.CostPriceFirst), Priority: 5},
		{ToolID: "jira", ReplacementID: "linear", Priority: 3},
		{ToolID: "jira", ReplacementID: "height", AINative: boolPtr(true), Priority: 8},
	})

	rc := ReplacementContext{CostSensitivity: assessment.CostPriceFirst}
	got, err := repo.BestReplacement(context.Background(), "jira", rc)
	if err != nil {
		t.Fatalf("BestReplacement: %v", err)
	}
	if got != "trello" {
		t.Fatalf("replacement = %q, want trello", got)
	}

	rc.PreferAINative = true
	got, err = repo.BestReplacement(context.Background(), "jira", rc)
	if err != nil {
		t.Fatalf("BestReplacement: %v", err)
	}
	if got != "height" {
		t.Fatalf("replacement = %q, want height", got)
	}
}

func TestBestReplacementNoMatchReturnsEmpty(t *testing.T) {
	repo := NewMemoryRepo(nil, []Replacement{
		{ToolID: "jira", ReplacementID: "linear", TeamSize: func() *catalog.TeamSize { v := catalog.TeamLarge; return &v }(), Priority: 1},
	})
	got, err := repo.BestReplacement(context.Background(), "jira", ReplacementContext{TeamSize: catalog.TeamSolo})
	if err != nil {
		t.Fatalf("BestReplacement: %v", err)
	}
	if got != "" {
		t.Fatalf("replacement = %q, want empty", got)
	}
}

func TestReplacementMatchesIgnoresNilConditions(t *testing.T) {
	rule := Replacement{ToolID: "jira", ReplacementID: "linear"}
	if !rule.Matches(ReplacementContext{TeamSize: catalog.TeamMedium, NeedsCompliance: true}) {
		t.Fatal("unconditional rule should match any context")
	}
	rule.NeedsCompliance = boolPtr(false)
	if rule.Matches(ReplacementContext{NeedsCompliance: true}) {
		t.Fatal("declared condition should bind")
	}
}
