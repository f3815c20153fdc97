// Package seed ships the embedded default catalog. It backs the in-memory
// repositories in dev mode and the cmd/seed loader for Postgres.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/integrations"
	"stackadvisor-backend/internal/overlap"
)

//go:embed catalog.yaml
var catalogYAML []byte

// File is the parsed shape of catalog.yaml.
type File struct {
	Tools        []catalog.Tool        `yaml:"tools"`
	Bundles      []catalog.Bundle      `yaml:"bundles"`
	Integrations []integrations.Edge   `yaml:"integrations"`
	Recipes      []integrations.Recipe `yaml:"recipes"`
	Redundancies []overlap.Redundancy  `yaml:"redundancies"`
	Replacements []overlap.Replacement `yaml:"replacements"`
}

// Load parses and validates the embedded catalog.
func Load() (File, error) {
	var f File
	if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
		return File{}, fmt.Errorf("parse catalog seed: %w", err)
	}
	if err := f.validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) validate() error {
	ids := make(map[string]bool, len(f.Tools))
	for _, t := range f.Tools {
		if t.ID == "" {
			return fmt.Errorf("catalog seed: tool with empty id (%q)", t.Name)
		}
		if ids[t.ID] {
			return fmt.Errorf("catalog seed: duplicate tool id %q", t.ID)
		}
		ids[t.ID] = true
	}
	for _, e := range f.Integrations {
		if !ids[e.FromTool] || !ids[e.ToTool] {
			return fmt.Errorf("catalog seed: integration %s->%s references unknown tool", e.FromTool, e.ToTool)
		}
	}
	for _, r := range f.Recipes {
		if !ids[r.TriggerTool] || !ids[r.ActionTool] {
			return fmt.Errorf("catalog seed: recipe %s references unknown tool", r.ID)
		}
	}
	for _, rel := range f.Redundancies {
		if !ids[rel.ToolA] || !ids[rel.ToolB] {
			return fmt.Errorf("catalog seed: redundancy %s/%s references unknown tool", rel.ToolA, rel.ToolB)
		}
	}
	for _, rep := range f.Replacements {
		if !ids[rep.ToolID] || !ids[rep.ReplacementID] {
			return fmt.Errorf("catalog seed: replacement %s->%s references unknown tool", rep.ToolID, rep.ReplacementID)
		}
	}
	for _, b := range f.Bundles {
		for _, id := range b.ToolIDs {
			if !ids[id] {
				return fmt.Errorf("catalog seed: bundle %s references unknown tool %q", b.ID, id)
			}
		}
	}
	return nil
}
