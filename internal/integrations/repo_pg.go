package integrations

import (
	"context"
	"database/sql"
)

// PGRepo serves integration data from Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) EdgesFor(ctx context.Context, toolID string) ([]Edge, error) {
	const query = `
SELECT from_tool, to_tool, quality
FROM tool_integrations
WHERE from_tool = $1 OR to_tool = $1`
	rows, err := r.DB.QueryContext(ctx, query, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Edge
	for rows.Next() {
		var e Edge
		var quality string
		if err := rows.Scan(&e.FromTool, &e.ToTool, &quality); err != nil {
			return nil, err
		}
		e.Quality = Quality(quality)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) RecipesFor(ctx context.Context, toolID string) ([]Recipe, error) {
	const query = `
SELECT id, trigger_tool, action_tool, COALESCE(name, '')
FROM automation_recipes
WHERE trigger_tool = $1 OR action_tool = $1`
	rows, err := r.DB.QueryContext(ctx, query, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.TriggerTool, &rec.ActionTool, &rec.Name); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
