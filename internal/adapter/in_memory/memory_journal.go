package in_memory

import (
	"context"
	"sync"

	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/port"
)

// MemoryJournal keeps fills in process memory, newest last.
type MemoryJournal struct {
	mu    sync.Mutex
	fills []*domain.Fill
}

var _ port.Journal = (*MemoryJournal)(nil)

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (j *MemoryJournal) SaveFill(ctx context.Context, f *domain.Fill) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	copyFill := *f
	j.fills = append(j.fills, &copyFill)
	return nil
}

func (j *MemoryJournal) RecentFills(ctx context.Context, limit int) ([]*domain.Fill, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := len(j.fills)
	if limit <= 0 || limit > n {
		limit = n
	}
	res := make([]*domain.Fill, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		copyFill := *j.fills[i]
		res = append(res, &copyFill)
	}
	return res, nil
}
