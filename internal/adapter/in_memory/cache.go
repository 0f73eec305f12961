package in_memory

import (
	"context"
	"sync"

	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/port"
)

// Cache is the depth cache used when no redis is configured.
type Cache struct {
	mu   sync.Mutex
	snap *domain.DepthSnapshot
}

var _ port.Cache = (*Cache)(nil)

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) SetDepth(ctx context.Context, snap *domain.DepthSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copySnap := *snap
	c.snap = &copySnap
	return nil
}

func (c *Cache) GetDepth(ctx context.Context) (*domain.DepthSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return nil, nil
	}
	copySnap := *c.snap
	return &copySnap, nil
}
