package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"prdashboard/internal/domain/assignment"
)

// Memory is the in-process tier.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (assignment.Table, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return assignment.Table{}, false, nil
	}
	return v.(assignment.Table), true, nil
}

func (m *Memory) Set(_ context.Context, key string, t assignment.Table) error {
	m.c.Set(key, t, gocache.DefaultExpiration)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
