package in_memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exsim/exchange-sim/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	snap, err := c.GetDepth(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	in := &domain.DepthSnapshot{
		Bids:      []domain.Level{{Price: decimal.NewFromInt(10), Quantity: 5}},
		Timestamp: time.Now(),
	}
	require.NoError(t, c.SetDepth(ctx, in))

	out, err := c.GetDepth(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Bids, 1)
	assert.Equal(t, int64(5), out.Bids[0].Quantity)
}

func TestJournalRecentFillsNewestFirst(t *testing.T) {
	j := NewMemoryJournal()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, j.SaveFill(ctx, &domain.Fill{
			ID:       string(rune('a' + i)),
			Quantity: int64(i),
		}))
	}

	fills, err := j.RecentFills(ctx, 2)
	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, int64(3), fills[0].Quantity)
	assert.Equal(t, int64(2), fills[1].Quantity)

	all, err := j.RecentFills(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
