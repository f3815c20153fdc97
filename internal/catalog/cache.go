package catalog

import (
	"context"
	"sync"
	"time"
)

// CachedRepo is a read-through snapshot cache in front of another Repo.
// One snapshot of the full catalog is held per TTL window; category reads
// and bundle reads are answered from the same snapshot so a request never
// observes a mixed catalog.
type CachedRepo struct {
	inner Repo
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	snapshot  *snapshot
	fetchedAt time.Time
}

type snapshot struct {
	tools   []Tool
	bundles []Bundle
}

// NewCachedRepo wraps inner with a TTL snapshot cache.
func NewCachedRepo(inner Repo, ttl time.Duration) *CachedRepo {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedRepo{inner: inner, ttl: ttl, now: time.Now}
}

func (r *CachedRepo) GetAll(ctx context.Context) ([]Tool, error) {
	snap, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Tool, len(snap.tools))
	copy(out, snap.tools)
	return out, nil
}

func (r *CachedRepo) GetByCategory(ctx context.Context, cat Category) ([]Tool, error) {
	snap, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	var out []Tool
	for _, t := range snap.tools {
		if t.InCategory(cat) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *CachedRepo) GetBundles(ctx context.Context) ([]Bundle, error) {
	snap, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Bundle, len(snap.bundles))
	copy(out, snap.bundles)
	return out, nil
}

// Invalidate drops the current snapshot so the next read refetches.
func (r *CachedRepo) Invalidate() {
	r.mu.Lock()
	r.snapshot = nil
	r.mu.Unlock()
}

func (r *CachedRepo) current(ctx context.Context) (*snapshot, error) {
	r.mu.RLock()
	snap := r.snapshot
	fetchedAt := r.fetchedAt
	r.mu.RUnlock()

	if snap != nil && r.now().Sub(fetchedAt) < r.ttl {
		return snap, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have refreshed while we waited for the lock.
	if r.snapshot != nil && r.now().Sub(r.fetchedAt) < r.ttl {
		return r.snapshot, nil
	}

	tools, err := r.inner.GetAll(ctx)
	if err != nil {
		// Serve the stale snapshot rather than failing the request.
		if r.snapshot != nil {
			return r.snapshot, nil
		}
		return nil, err
	}
	bundles, err := r.inner.GetBundles(ctx)
	if err != nil {
		bundles = nil
	}

	r.snapshot = &snapshot{tools: tools, bundles: bundles}
	r.fetchedAt = r.now()
	return r.snapshot, nil
}
