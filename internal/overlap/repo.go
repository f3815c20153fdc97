package overlap

import "context"

// Repo exposes redundancy and replacement reference data.
type Repo interface {
	// RedundanciesAmong returns every pairwise relation whose both endpoints
	// are inside the given id set.
	RedundanciesAmong(ctx context.Context, toolIDs []string) ([]Redundancy, error)
	// BestReplacement returns the id of the best replacement for toolID under
	// the given context, or "" when no rule matches.
	BestReplacement(ctx context.Context, toolID string, rc ReplacementContext) (string, error)
}
