package main

// Load the embedded catalog into Postgres:
//   go run ./cmd/seed
//
// Idempotent: every row is upserted by primary key.

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/catalog/seed"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	data, err := seed.Load()
	if err != nil {
		log.Printf("load embedded catalog: %v", err)
		os.Exit(1)
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	if err := run(ctx, sqlDB, data); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
	log.Printf("seeded %d tools, %d bundles, %d integrations, %d recipes, %d redundancies, %d replacements",
		len(data.Tools), len(data.Bundles), len(data.Integrations), len(data.Recipes), len(data.Redundancies), len(data.Replacements))
}

func run(ctx context.Context, sqlDB *sql.DB, data seed.File) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range data.Tools {
		if err := upsertTool(ctx, tx, t); err != nil {
			return fmt.Errorf("tool %s: %w", t.ID, err)
		}
	}
	for _, b := range data.Bundles {
		toolIDs, err := json.Marshal(b.ToolIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tool_bundles (id, name, description, tool_ids)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, tool_ids = EXCLUDED.tool_ids`,
			b.ID, b.Name, b.Description, toolIDs); err != nil {
			return fmt.Errorf("bundle %s: %w", b.ID, err)
		}
	}
	for _, e := range data.Integrations {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tool_integrations (from_tool, to_tool, quality)
VALUES ($1, $2, $3)
ON CONFLICT (from_tool, to_tool) DO UPDATE SET quality = EXCLUDED.quality`,
			e.FromTool, e.ToTool, string(e.Quality)); err != nil {
			return fmt.Errorf("integration %s->%s: %w", e.FromTool, e.ToTool, err)
		}
	}
	for _, rec := range data.Recipes {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO automation_recipes (id, trigger_tool, action_tool, name)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET trigger_tool = EXCLUDED.trigger_tool, action_tool = EXCLUDED.action_tool, name = EXCLUDED.name`,
			rec.ID, rec.TriggerTool, rec.ActionTool, rec.Name); err != nil {
			return fmt.Errorf("recipe %s: %w", rec.ID, err)
		}
	}
	for _, red := range data.Redundancies {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tool_redundancies (tool_a, tool_b, level, hint)
VALUES ($1, $2, $3, $4)
ON CONFLICT (tool_a, tool_b) DO UPDATE SET level = EXCLUDED.level, hint = EXCLUDED.hint`,
			red.ToolA, red.ToolB, string(red.Level), string(red.Hint)); err != nil {
			return fmt.Errorf("redundancy %s/%s: %w", red.ToolA, red.ToolB, err)
		}
	}
	for _, rep := range data.Replacements {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tool_replacements (tool_id, replacement_id, cost_sensitivity, tech_savviness, team_size, needs_compliance, ai_native, priority)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (tool_id, replacement_id) DO UPDATE SET
  cost_sensitivity = EXCLUDED.cost_sensitivity,
  tech_savviness = EXCLUDED.tech_savviness,
  team_size = EXCLUDED.team_size,
  needs_compliance = EXCLUDED.needs_compliance,
  ai_native = EXCLUDED.ai_native,
  priority = EXCLUDED.priority`,
			rep.ToolID, rep.ReplacementID, rep.CostSensitivity, rep.TechSavviness, rep.TeamSize, rep.NeedsCompliance, rep.AINative, rep.Priority); err != nil {
			return fmt.Errorf("replacement %s->%s: %w", rep.ToolID, rep.ReplacementID, err)
		}
	}
	return tx.Commit()
}

func upsertTool(ctx context.Context, tx *sql.Tx, t catalog.Tool) error {
	secondary, err := json.Marshal(orEmpty(stringsOf(t.SecondaryCategories)))
	if err != nil {
		return err
	}
	teamSizes, err := json.Marshal(orEmpty(stringsOf(t.BestForTeamSizes)))
	if err != nil {
		return err
	}
	stages, err := json.Marshal(orEmpty(stringsOf(t.BestForStages)))
	if err != nil {
		return err
	}
	savviness, err := json.Marshal(orEmpty(stringsOf(t.BestForSavviness)))
	if err != nil {
		return err
	}
	aliases, err := json.Marshal(orEmpty(t.Aliases))
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO tools (
  id, name, category, secondary_categories, complexity, pricing_tier,
  monthly_cost_per_user, has_free_tier, best_for_team_sizes, best_for_stages,
  best_for_savviness, soc2, hipaa, gdpr, eu_residency, self_hosted, air_gapped,
  has_ai_features, pop_adoption, pop_sentiment, pop_momentum, pop_ecosystem,
  pop_reliability, aliases, updated_at
) VALUES (
  $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
  $18, $19, $20, $21, $22, $23, $24, now()
)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  category = EXCLUDED.category,
  secondary_categories = EXCLUDED.secondary_categories,
  complexity = EXCLUDED.complexity,
  pricing_tier = EXCLUDED.pricing_tier,
  monthly_cost_per_user = EXCLUDED.monthly_cost_per_user,
  has_free_tier = EXCLUDED.has_free_tier,
  best_for_team_sizes = EXCLUDED.best_for_team_sizes,
  best_for_stages = EXCLUDED.best_for_stages,
  best_for_savviness = EXCLUDED.best_for_savviness,
  soc2 = EXCLUDED.soc2,
  hipaa = EXCLUDED.hipaa,
  gdpr = EXCLUDED.gdpr,
  eu_residency = EXCLUDED.eu_residency,
  self_hosted = EXCLUDED.self_hosted,
  air_gapped = EXCLUDED.air_gapped,
  has_ai_features = EXCLUDED.has_ai_features,
  pop_adoption = EXCLUDED.pop_adoption,
  pop_sentiment = EXCLUDED.pop_sentiment,
  pop_momentum = EXCLUDED.pop_momentum,
  pop_ecosystem = EXCLUDED.pop_ecosystem,
  pop_reliability = EXCLUDED.pop_reliability,
  aliases = EXCLUDED.aliases,
  updated_at = now()`,
		t.ID, t.Name, string(t.Category), secondary, string(t.Complexity), string(t.PricingTier),
		t.MonthlyCostPerUser, t.HasFreeTier, teamSizes, stages,
		savviness, t.Compliance.SOC2, t.Compliance.HIPAA, t.Compliance.GDPR,
		t.Compliance.EUResidency, t.Compliance.SelfHosted, t.Compliance.AirGapped,
		t.HasAIFeatures, t.Popularity.Adoption, t.Popularity.Sentiment, t.Popularity.Momentum,
		t.Popularity.Ecosystem, t.Popularity.Reliability, aliases)
	return err
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
