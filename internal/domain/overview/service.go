package overview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"prdashboard/internal/domain"
	"prdashboard/internal/domain/assignment"
	"prdashboard/internal/domain/chart"
)

const AssigneeQuery = "pr_assignee_query"

// ErrCacheTimeout is returned when the cached table did not appear within the
// poll timeout.
var ErrCacheTimeout = errors.New("timed out waiting for cached data")

var errNotReady = errors.New("cache entry not ready")

// TableSource looks up the cached query result for a set of repositories.
// ok is false until every repository has been loaded.
type TableSource interface {
	Grab(ctx context.Context, query string, repos []int64) (assignment.Table, bool, error)
}

// Loader schedules background loading of query results into the cache.
type Loader interface {
	Warm(query string, repos []int64)
}

type Options struct {
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type Service interface {
	PRAssignment(ctx context.Context, repos []int64, interval string) (chart.Spec, error)
}

type service struct {
	source TableSource
	loader Loader
	clock  domain.Clock
	opts   Options
	log    *zap.Logger
}

func NewService(source TableSource, loader Loader, clock domain.Clock, opts Options, log *zap.Logger) Service {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = time.Minute
	}
	return &service{
		source: source,
		loader: loader,
		clock:  clock,
		opts:   opts,
		log:    log.With(zap.String("viz", "pr_assignment")),
	}
}

func (s *service) PRAssignment(ctx context.Context, repos []int64, interval string) (chart.Spec, error) {
	g, err := assignment.ParseGranularity(interval)
	if err != nil {
		return chart.Spec{}, err
	}

	table, err := s.waitForTable(ctx, repos)
	if err != nil {
		return chart.Spec{}, err
	}

	start := time.Now()
	s.log.Debug("start", zap.Int("repos", len(repos)), zap.String("interval", string(g)))

	if table.Empty() {
		s.log.Warn("no data available", zap.Int64s("repos", repos))
		return chart.NoData(), nil
	}

	events, err := assignment.DecodeTable(table)
	if err != nil {
		return chart.Spec{}, err
	}

	buckets, err := assignment.Bucketize(events, g)
	if errors.Is(err, assignment.ErrNoData) {
		return chart.NoData(), nil
	}
	if err != nil {
		return chart.Spec{}, err
	}

	spec := chart.Build(buckets, g, s.clock.Now())

	s.log.Debug("end",
		zap.Int("events", len(events)),
		zap.Int("buckets", len(buckets)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return spec, nil
}

// waitForTable polls the source at a fixed interval until the table is
// available, the poll timeout passes or ctx is done. The loader is asked to
// warm the cache on the first miss.
func (s *service) waitForTable(ctx context.Context, repos []int64) (assignment.Table, error) {
	var (
		table  assignment.Table
		warmed bool
	)

	backoff := retry.WithMaxDuration(s.opts.PollTimeout, retry.NewConstant(s.opts.PollInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		t, ok, err := s.source.Grab(ctx, AssigneeQuery, repos)
		if err != nil {
			return fmt.Errorf("cache lookup: %w", err)
		}
		if ok {
			table = t
			return nil
		}
		if !warmed && s.loader != nil {
			s.loader.Warm(AssigneeQuery, repos)
			warmed = true
		}
		return retry.RetryableError(errNotReady)
	})

	switch {
	case err == nil:
		return table, nil
	case errors.Is(err, errNotReady):
		s.log.Warn("cache wait timed out",
			zap.String("key", assignment.RepoSetKey(AssigneeQuery, repos)),
			zap.Duration("timeout", s.opts.PollTimeout),
		)
		return assignment.Table{}, ErrCacheTimeout
	default:
		return assignment.Table{}, err
	}
}
