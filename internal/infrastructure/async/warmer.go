package async

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"prdashboard/internal/domain"
	"prdashboard/internal/domain/assignment"
)

// QueryFunc runs one cached query for one repository.
type QueryFunc func(ctx context.Context, repoID int64) (assignment.Table, error)

type TableStore interface {
	Get(ctx context.Context, key assignment.CacheKey) (assignment.Table, bool, error)
	Store(ctx context.Context, key assignment.CacheKey, t assignment.Table) error
	Invalidate(ctx context.Context, key assignment.CacheKey) error
}

// Warmer loads query results into the cache on background workers. Loads of
// the same key are collapsed into one query.
type Warmer struct {
	pool  *WorkerPool
	store TableStore
	group singleflight.Group
	log   *zap.Logger

	mu      sync.RWMutex
	queries map[string]QueryFunc

	// genMu orders a load's final store against invalidation of the same key.
	genMu sync.Mutex
	gens  map[string]uint64
}

func NewWarmer(pool *WorkerPool, store TableStore, log *zap.Logger) *Warmer {
	return &Warmer{
		pool:    pool,
		store:   store,
		log:     log.With(zap.String("component", "warmer")),
		queries: map[string]QueryFunc{},
		gens:    map[string]uint64{},
	}
}

func (w *Warmer) Register(name string, fn QueryFunc) {
	w.mu.Lock()
	w.queries[name] = fn
	w.mu.Unlock()
}

// Warm schedules a load for every repository. It never blocks; when the queue
// is full the load is dropped and the next cache miss asks again.
func (w *Warmer) Warm(query string, repos []int64) {
	for _, repo := range repos {
		key := assignment.CacheKey{Query: query, RepoID: repo}
		ok := w.pool.TrySubmit(func(ctx context.Context) {
			if err := w.Load(ctx, key); err != nil {
				w.log.Error("load failed", zap.String("key", key.String()), zap.Error(err))
			}
		})
		if !ok {
			w.log.Warn("warm queue full", zap.String("key", key.String()))
		}
	}
}

// Load runs the query for key and stores the result unless it is already
// cached. A result is dropped when the key was invalidated while the query
// ran.
func (w *Warmer) Load(ctx context.Context, key assignment.CacheKey) error {
	w.mu.RLock()
	fn, ok := w.queries[key.Query]
	w.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown query %q", key.Query)
	}

	_, err, _ := w.group.Do(key.String(), func() (any, error) {
		if _, hit, err := w.store.Get(ctx, key); err != nil {
			return nil, err
		} else if hit {
			return nil, nil
		}

		gen := w.generation(key)
		start := time.Now()
		t, err := fn(ctx, key.RepoID)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", key.Query, err)
		}

		w.genMu.Lock()
		defer w.genMu.Unlock()
		if w.gens[key.String()] != gen {
			w.log.Debug("load superseded", zap.String("key", key.String()))
			return nil, nil
		}
		if err := w.store.Store(ctx, key, t); err != nil {
			return nil, fmt.Errorf("store %s: %w", key, err)
		}

		w.log.Info("loaded",
			zap.String("key", key.String()),
			zap.Int("rows", t.Len()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil, nil
	})
	return err
}

// HandleEvent drops every cached query result of the repository the event
// touched.
func (w *Warmer) HandleEvent(ctx context.Context, e domain.Event) {
	repo, ok := e.Payload["repo_id"].(int64)
	if !ok {
		return
	}

	w.mu.RLock()
	names := make([]string, 0, len(w.queries))
	for name := range w.queries {
		names = append(names, name)
	}
	w.mu.RUnlock()

	for _, name := range names {
		w.invalidate(ctx, assignment.CacheKey{Query: name, RepoID: repo})
	}
}

func (w *Warmer) generation(key assignment.CacheKey) uint64 {
	w.genMu.Lock()
	defer w.genMu.Unlock()
	return w.gens[key.String()]
}

// invalidate bumps the key generation so running loads discard their result,
// detaches later loads from any in-flight query and drops the cached table.
func (w *Warmer) invalidate(ctx context.Context, key assignment.CacheKey) {
	k := key.String()

	w.genMu.Lock()
	defer w.genMu.Unlock()
	w.gens[k]++
	w.group.Forget(k)

	if err := w.store.Invalidate(ctx, key); err != nil {
		w.log.Warn("invalidate failed", zap.String("key", k), zap.Error(err))
	}
}
