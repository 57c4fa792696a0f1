package cache

import (
	"context"

	"go.uber.org/zap"

	"prdashboard/internal/domain/assignment"
)

// Backend is one cache tier.
type Backend interface {
	Get(ctx context.Context, key string) (assignment.Table, bool, error)
	Set(ctx context.Context, key string, t assignment.Table) error
	Delete(ctx context.Context, key string) error
}

// Manager stores one table per (query, repository) and answers multi-repo
// lookups by stacking the per-repo tables. Tiers are read in order and a hit
// in a later tier is copied into the earlier ones.
type Manager struct {
	tiers []Backend
	log   *zap.Logger
}

func NewManager(log *zap.Logger, tiers ...Backend) *Manager {
	return &Manager{tiers: tiers, log: log}
}

// Grab returns the stacked table for repos. ok is false while any repository
// is still missing.
func (m *Manager) Grab(ctx context.Context, query string, repos []int64) (assignment.Table, bool, error) {
	tables := make([]assignment.Table, 0, len(repos))
	for _, repo := range repos {
		t, ok, err := m.Get(ctx, assignment.CacheKey{Query: query, RepoID: repo})
		if err != nil {
			return assignment.Table{}, false, err
		}
		if !ok {
			return assignment.Table{}, false, nil
		}
		tables = append(tables, t)
	}
	return assignment.Concat(tables...), true, nil
}

func (m *Manager) Get(ctx context.Context, key assignment.CacheKey) (assignment.Table, bool, error) {
	k := key.String()
	for i, tier := range m.tiers {
		t, ok, err := tier.Get(ctx, k)
		if err != nil {
			return assignment.Table{}, false, err
		}
		if !ok {
			continue
		}
		for _, upper := range m.tiers[:i] {
			if err := upper.Set(ctx, k, t); err != nil {
				m.log.Warn("cache backfill failed", zap.String("key", k), zap.Error(err))
			}
		}
		return t, true, nil
	}
	return assignment.Table{}, false, nil
}

func (m *Manager) Store(ctx context.Context, key assignment.CacheKey, t assignment.Table) error {
	k := key.String()
	for _, tier := range m.tiers {
		if err := tier.Set(ctx, k, t); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) Invalidate(ctx context.Context, key assignment.CacheKey) error {
	k := key.String()
	for _, tier := range m.tiers {
		if err := tier.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
