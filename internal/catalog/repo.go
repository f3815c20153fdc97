package catalog

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "tool not found" }

// Repo exposes the catalog. Callers treat results as a snapshot for one request.
type Repo interface {
	GetAll(ctx context.Context) ([]Tool, error)
	GetByCategory(ctx context.Context, cat Category) ([]Tool, error)
	GetBundles(ctx context.Context) ([]Bundle, error)
}
