package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo serves the catalog from Postgres. List-valued columns are stored as
// JSONB arrays so the wire shape matches the in-memory model exactly.
type PGRepo struct {
	DB *sql.DB
}

const toolColumns = `
id, name, category, secondary_categories, complexity, pricing_tier,
monthly_cost_per_user, has_free_tier, best_for_team_sizes, best_for_stages,
best_for_savviness, soc2, hipaa, gdpr, eu_residency, self_hosted, air_gapped,
has_ai_features, pop_adoption, pop_sentiment, pop_momentum, pop_ecosystem,
pop_reliability, aliases`

func (r *PGRepo) GetAll(ctx context.Context) ([]Tool, error) {
	query := fmt.Sprintf("SELECT %s FROM tools ORDER BY id", toolColumns)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTools(rows)
}

func (r *PGRepo) GetByCategory(ctx context.Context, cat Category) ([]Tool, error) {
	query := fmt.Sprintf(`
SELECT %s FROM tools
WHERE category = $1 OR secondary_categories @> to_jsonb(ARRAY[$1::text])
ORDER BY id`, toolColumns)
	rows, err := r.DB.QueryContext(ctx, query, string(cat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTools(rows)
}

func (r *PGRepo) GetBundles(ctx context.Context) ([]Bundle, error) {
	const query = `SELECT id, name, COALESCE(description, ''), tool_ids FROM tool_bundles ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bundle
	for rows.Next() {
		var b Bundle
		var toolIDs []byte
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &toolIDs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(toolIDs, &b.ToolIDs); err != nil {
			return nil, fmt.Errorf("bundle %s tool_ids: %w", b.ID, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanTools(rows *sql.Rows) ([]Tool, error) {
	var out []Tool
	for rows.Next() {
		var t Tool
		var secondary, teamSizes, stages, savviness, aliases []byte
		var cost sql.NullFloat64
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Category,
			&secondary,
			&t.Complexity,
			&t.PricingTier,
			&cost,
			&t.HasFreeTier,
			&teamSizes,
			&stages,
			&savviness,
			&t.Compliance.SOC2,
			&t.Compliance.HIPAA,
			&t.Compliance.GDPR,
			&t.Compliance.EUResidency,
			&t.Compliance.SelfHosted,
			&t.Compliance.AirGapped,
			&t.HasAIFeatures,
			&t.Popularity.Adoption,
			&t.Popularity.Sentiment,
			&t.Popularity.Momentum,
			&t.Popularity.Ecosystem,
			&t.Popularity.Reliability,
			&aliases,
		); err != nil {
			return nil, err
		}
		if cost.Valid {
			v := cost.Float64
			t.MonthlyCostPerUser = &v
		}
		if err := firstErr(
			unmarshalList(secondary, &t.SecondaryCategories, t.ID, "secondary_categories"),
			unmarshalList(teamSizes, &t.BestForTeamSizes, t.ID, "best_for_team_sizes"),
			unmarshalList(stages, &t.BestForStages, t.ID, "best_for_stages"),
			unmarshalList(savviness, &t.BestForSavviness, t.ID, "best_for_savviness"),
			unmarshalList(aliases, &t.Aliases, t.ID, "aliases"),
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func unmarshalList(raw []byte, dst any, toolID, col string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("tool %s %s: %w", toolID, col, err)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
