// Package matcher resolves free-text tool names against the catalog. It does
// exact and alias matching over normalized names only; anything it cannot
// resolve is reported back, never guessed.
package matcher

import (
	"context"
	"strings"
	"unicode"

	"stackadvisor-backend/internal/catalog"
)

// Service resolves tool names against a catalog snapshot.
type Service struct {
	Catalog catalog.Repo
}

// NewService constructs a matcher over the given catalog provider.
func NewService(repo catalog.Repo) *Service {
	return &Service{Catalog: repo}
}

// Result carries resolved tools plus the tokens that matched nothing.
type Result struct {
	Tools      []catalog.Tool
	Unresolved []string
}

// Resolve maps each raw name to a catalog tool by normalized id, name, or alias.
// Duplicate mentions of the same tool collapse to one entry, first mention wins.
func (s *Service) Resolve(ctx context.Context, names []string) (Result, error) {
	if len(names) == 0 {
		return Result{}, nil
	}
	tools, err := s.Catalog.GetAll(ctx)
	if err != nil {
		return Result{}, err
	}

	index := buildIndex(tools)
	var res Result
	seen := make(map[string]bool)
	for _, raw := range names {
		key := normalize(raw)
		if key == "" {
			continue
		}
		tool, ok := index[key]
		if !ok {
			res.Unresolved = append(res.Unresolved, strings.TrimSpace(raw))
			continue
		}
		if seen[tool.ID] {
			continue
		}
		seen[tool.ID] = true
		res.Tools = append(res.Tools, tool)
	}
	return res, nil
}

func buildIndex(tools []catalog.Tool) map[string]catalog.Tool {
	index := make(map[string]catalog.Tool, len(tools)*2)
	put := func(key string, t catalog.Tool) {
		if key == "" {
			return
		}
		// First registration wins so catalog order stays authoritative.
		if _, ok := index[key]; !ok {
			index[key] = t
		}
	}
	for _, t := range tools {
		put(normalize(t.ID), t)
		put(normalize(t.Name), t)
		for _, alias := range t.Aliases {
			put(normalize(alias), t)
		}
	}
	return index
}

// normalize lowercases and strips everything but letters and digits, so
// "Notion.so" and "notion so" both key to "notionso".
func normalize(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
