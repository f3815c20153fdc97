package overlap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
)

// PGRepo serves redundancy and replacement rules from Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) RedundanciesAmong(ctx context.Context, toolIDs []string) ([]Redundancy, error) {
	if len(toolIDs) < 2 {
		return nil, nil
	}

	placeholders := make([]string, len(toolIDs))
	args := make([]any, len(toolIDs))
	for i, id := range toolIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	in := strings.Join(placeholders, ", ")

	query := fmt.Sprintf(`
SELECT tool_a, tool_b, level, hint
FROM tool_redundancies
WHERE tool_a IN (%s) AND tool_b IN (%s)`, in, in)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Redundancy
	for rows.Next() {
		var rel Redundancy
		var level, hint string
		if err := rows.Scan(&rel.ToolA, &rel.ToolB, &level, &hint); err != nil {
			return nil, err
		}
		rel.Level = Level(level)
		rel.Hint = Hint(hint)
		out = append(out, rel)
	}
	return out, rows.Err()
}

func (r *PGRepo) BestReplacement(ctx context.Context, toolID string, rc ReplacementContext) (string, error) {
	const query = `
SELECT replacement_id, cost_sensitivity, tech_savviness, team_size, needs_compliance, ai_native, priority
FROM tool_replacements
WHERE tool_id = $1
ORDER BY priority DESC`
	rows, err := r.DB.QueryContext(ctx, query, toolID)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	// Condition matching stays in Go so PG and memory repos agree exactly.
	for rows.Next() {
		rule := Replacement{ToolID: toolID}
		var costSens, savvy, teamSize sql.NullString
		var needsCompliance, aiNative sql.NullBool
		if err := rows.Scan(&rule.ReplacementID, &costSens, &savvy, &teamSize, &needsCompliance, &aiNative, &rule.Priority); err != nil {
			return "", err
		}
		if costSens.Valid {
			v := assessment.CostSensitivity(costSens.String)
			rule.CostSensitivity = &v
		}
		if savvy.Valid {
			v := catalog.TechSavviness(savvy.String)
			rule.TechSavviness = &v
		}
		if teamSize.Valid {
			v := catalog.TeamSize(teamSize.String)
			rule.TeamSize = &v
		}
		if needsCompliance.Valid {
			v := needsCompliance.Bool
			rule.NeedsCompliance = &v
		}
		if aiNative.Valid {
			v := aiNative.Bool
			rule.AINative = &v
		}
		if rule.Matches(rc) {
			return rule.ReplacementID, nil
		}
	}
	return "", rows.Err()
}
