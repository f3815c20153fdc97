// Package costs derives the money figures reported alongside a built
// scenario. All arithmetic is per seat per month; team totals use a
// headcount estimate for the declared team-size bucket.
package costs

import "stackadvisor-backend/internal/catalog"

// headcount is the midpoint estimate for each team-size bucket.
var headcount = map[catalog.TeamSize]int{
	catalog.TeamSolo:   1,
	catalog.TeamSmall:  5,
	catalog.TeamMedium: 20,
	catalog.TeamLarge:  50,
}

// Projection is the cost picture of one scenario against the current stack.
type Projection struct {
	MonthlyPerUser        float64 `json:"monthlyPerUser"`
	MonthlyTeam           float64 `json:"monthlyTeam"`
	CurrentMonthlyPerUser float64 `json:"currentMonthlyPerUser"`
	MonthlySavingsPerUser float64 `json:"monthlySavingsPerUser"`
	Seats                 int     `json:"seats"`
}

// Project computes the scenario's cost figures. Tools with unknown pricing
// count as zero on both sides, so savings compare like with like.
func Project(stack, current []catalog.Tool, size catalog.TeamSize) Projection {
	seats, ok := headcount[size]
	if !ok {
		seats = 1
	}
	perUser := sumMonthly(stack)
	currentPerUser := sumMonthly(current)
	return Projection{
		MonthlyPerUser:        perUser,
		MonthlyTeam:           perUser * float64(seats),
		CurrentMonthlyPerUser: currentPerUser,
		MonthlySavingsPerUser: currentPerUser - perUser,
		Seats:                 seats,
	}
}

func sumMonthly(tools []catalog.Tool) float64 {
	total := 0.0
	for _, t := range tools {
		if t.MonthlyCostPerUser != nil {
			total += *t.MonthlyCostPerUser
		}
	}
	return total
}
