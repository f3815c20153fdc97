package costs

import (
	"testing"

	"stackadvisor-backend/internal/catalog"
)

func money(v float64) *float64 { return &v }

func priced(id string, cost *float64) catalog.Tool {
	return catalog.Tool{ID: id, Name: id, MonthlyCostPerUser: cost}
}

func TestProjectSumsKnownPricingOnly(t *testing.T) {
	stack := []catalog.Tool{
		priced("a", money(10)),
		priced("b", nil),
		priced("c", money(5.5)),
	}
	p := Project(stack, nil, catalog.TeamSmall)
	if p.MonthlyPerUser != 15.5 {
		t.Fatalf("MonthlyPerUser = %v, want 15.5", p.MonthlyPerUser)
	}
	if p.Seats != 5 {
		t.Fatalf("Seats = %d, want 5", p.Seats)
	}
	if p.MonthlyTeam != 77.5 {
		t.Fatalf("MonthlyTeam = %v, want 77.5", p.MonthlyTeam)
	}
}

func TestProjectSavingsAgainstCurrentStack(t *testing.T) {
	stack := []catalog.Tool{priced("a", money(8))}
	current := []catalog.Tool{priced("x", money(12)), priced("y", money(6))}
	p := Project(stack, current, catalog.TeamSolo)
	if p.CurrentMonthlyPerUser != 18 {
		t.Fatalf("CurrentMonthlyPerUser = %v, want 18", p.CurrentMonthlyPerUser)
	}
	if p.MonthlySavingsPerUser != 10 {
		t.Fatalf("MonthlySavingsPerUser = %v, want 10", p.MonthlySavingsPerUser)
	}
}

func TestProjectNegativeSavingsWhenNewStackCostsMore(t *testing.T) {
	stack := []catalog.Tool{priced("a", money(20))}
	current := []catalog.Tool{priced("x", money(5))}
	p := Project(stack, current, catalog.TeamMedium)
	if p.MonthlySavingsPerUser != -15 {
		t.Fatalf("MonthlySavingsPerUser = %v, want -15", p.MonthlySavingsPerUser)
	}
	if p.MonthlyTeam != 400 {
		t.Fatalf("MonthlyTeam = %v, want 400", p.MonthlyTeam)
	}
}

func TestProjectUnknownTeamSizeDefaultsToOneSeat(t *testing.T) {
	p := Project([]catalog.Tool{priced("a", money(3))}, nil, catalog.TeamSize("galactic"))
	if p.Seats != 1 {
		t.Fatalf("Seats = %d, want 1", p.Seats)
	}
	if p.MonthlyTeam != 3 {
		t.Fatalf("MonthlyTeam = %v, want 3", p.MonthlyTeam)
	}
}

func TestProjectEmptyStacks(t *testing.T) {
	p := Project(nil, nil, catalog.TeamLarge)
	if p.MonthlyPerUser != 0 || p.MonthlyTeam != 0 || p.MonthlySavingsPerUser != 0 {
		t.Fatalf("expected all-zero projection, got %+v", p)
	}
	if p.Seats != 50 {
		t.Fatalf("Seats = %d, want 50", p.Seats)
	}
}
