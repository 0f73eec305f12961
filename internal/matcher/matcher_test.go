package matcher

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/exsim/exchange-sim/internal/adapter/in_memory"
	"github.com/exsim/exchange-sim/internal/msg"
)

type fakeChannel struct {
	sent   []any
	closed bool
}

func (c *fakeChannel) Send(v any) error {
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func newTestMatcher() *Matcher {
	return New(zap.NewNop().Sugar(), nil, nil)
}

func TestUnknownMessageKeepsSessionOpen(t *testing.T) {
	m := newTestMatcher()
	ch := &fakeChannel{}
	trader := m.RegisterTrader("D", ch)

	m.HandleMessage(context.Background(), trader, []byte(`{"message":"doSomething"}`))

	require.Len(t, ch.sent, 1)
	assert.Equal(t, msg.Error("unknown message"), ch.sent[0])
	assert.False(t, ch.closed)
}

func TestMalformedMessageDisconnects(t *testing.T) {
	m := newTestMatcher()
	ch := &fakeChannel{}
	trader := m.RegisterTrader("A", ch)

	m.HandleMessage(context.Background(), trader, []byte(`{"message":"createOrder","side":"BUY","quantity":5,"orderId":1}`))

	assert.Empty(t, ch.sent)
	assert.True(t, ch.closed)
}

func TestMissingMessageFieldDisconnects(t *testing.T) {
	m := newTestMatcher()
	ch := &fakeChannel{}
	trader := m.RegisterTrader("A", ch)

	m.HandleMessage(context.Background(), trader, []byte(`{"side":"BUY"}`))

	assert.True(t, ch.closed)
}

func TestDecodeFailureDisconnects(t *testing.T) {
	m := newTestMatcher()
	ch := &fakeChannel{}
	trader := m.RegisterTrader("A", ch)

	m.HandleMessage(context.Background(), trader, []byte(`not json at all`))

	assert.Empty(t, ch.sent)
	assert.True(t, ch.closed)
}

func TestCreateAndCancelFlow(t *testing.T) {
	m := newTestMatcher()
	ctx := context.Background()

	feed := &fakeChannel{}
	m.RegisterClient("md", feed)

	chA := &fakeChannel{}
	a := m.RegisterTrader("A", chA)

	m.HandleMessage(ctx, a, []byte(`{"message":"createOrder","side":"bid","price":10,"quantity":5,"orderId":1}`))

	require.Len(t, chA.sent, 1)
	assert.Equal(t, msg.CreateOrderSuccess(1), chA.sent[0])
	require.Len(t, feed.sent, 1)
	depth := feed.sent[0].(msg.Depth)
	assert.Equal(t, "bid", depth.Side)
	assert.Equal(t, int64(5), depth.Quantity)

	m.HandleMessage(ctx, a, []byte(`{"message":"cancelOrder","orderId":1}`))

	require.Len(t, chA.sent, 2)
	assert.Equal(t, msg.CancelOrderSuccess(1), chA.sent[1])
	require.Len(t, feed.sent, 2)
	assert.Equal(t, int64(0), feed.sent[1].(msg.Depth).Quantity)

	snap := m.Depth(ctx)
	assert.Empty(t, snap.Bids)
	assert.Empty(t, snap.Asks)
}

func TestMatchingAcrossTraders(t *testing.T) {
	m := newTestMatcher()
	ctx := context.Background()

	chA, chB := &fakeChannel{}, &fakeChannel{}
	a := m.RegisterTrader("A", chA)
	b := m.RegisterTrader("B", chB)

	m.HandleMessage(ctx, a, []byte(`{"message":"createOrder","side":"BUY","price":10,"quantity":5,"orderId":1}`))
	m.HandleMessage(ctx, b, []byte(`{"message":"createOrder","side":"SELL","price":10,"quantity":3,"orderId":2}`))

	snap := m.Depth(ctx)
	require.Len(t, snap.Bids, 1)
	assert.Equal(t, int64(2), snap.Bids[0].Quantity)
	assert.Empty(t, snap.Asks)
}

func TestDeregisterTraderRetractsOrders(t *testing.T) {
	m := newTestMatcher()
	ctx := context.Background()

	feed := &fakeChannel{}
	m.RegisterClient("md", feed)

	chA := &fakeChannel{}
	a := m.RegisterTrader("A", chA)
	m.HandleMessage(ctx, a, []byte(`{"message":"createOrder","side":"bid","price":10,"quantity":2,"orderId":1}`))
	feed.sent = nil

	m.DeregisterTrader(ctx, a)

	require.Len(t, feed.sent, 1)
	depth := feed.sent[0].(msg.Depth)
	assert.True(t, depth.Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(0), depth.Quantity)
	assert.Empty(t, m.Depth(ctx).Bids)

	// disconnect-twice is tolerated
	m.DeregisterTrader(ctx, a)
}

func TestSameLabelTradersTearDownIndependently(t *testing.T) {
	m := newTestMatcher()
	ctx := context.Background()

	ch1, ch2 := &fakeChannel{}, &fakeChannel{}
	first := m.RegisterTrader("A", ch1)
	second := m.RegisterTrader("A", ch2)

	m.HandleMessage(ctx, first, []byte(`{"message":"createOrder","side":"bid","price":10,"quantity":5,"orderId":1}`))

	m.DeregisterTrader(ctx, first)
	assert.Empty(t, m.Depth(ctx).Bids)

	// the second session is still registered and fully functional
	m.HandleMessage(ctx, second, []byte(`{"message":"createOrder","side":"bid","price":11,"quantity":2,"orderId":1}`))
	require.Len(t, ch2.sent, 1)
	assert.Equal(t, msg.CreateOrderSuccess(1), ch2.sent[0])

	snap := m.Depth(ctx)
	require.Len(t, snap.Bids, 1)
	assert.Equal(t, int64(2), snap.Bids[0].Quantity)

	m.DeregisterTrader(ctx, second)
	assert.Empty(t, m.Depth(ctx).Bids)
}

func TestDeregisterClientTwiceTolerated(t *testing.T) {
	m := newTestMatcher()
	c := m.RegisterClient("md", &fakeChannel{})

	m.DeregisterClient(c)
	m.DeregisterClient(c)
}

func TestDepthServedFromCache(t *testing.T) {
	depthCache := in_memory.NewCache()
	m := New(zap.NewNop().Sugar(), depthCache, nil)
	ctx := context.Background()

	a := m.RegisterTrader("A", &fakeChannel{})
	m.HandleMessage(ctx, a, []byte(`{"message":"createOrder","side":"bid","price":10,"quantity":5,"orderId":1}`))

	cached, err := depthCache.GetDepth(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	require.Len(t, cached.Bids, 1)
	assert.Equal(t, int64(5), cached.Bids[0].Quantity)

	snap := m.Depth(ctx)
	require.Len(t, snap.Bids, 1)
	assert.Equal(t, int64(5), snap.Bids[0].Quantity)
}

func TestFillsJournaled(t *testing.T) {
	journal := in_memory.NewMemoryJournal()
	m := New(zap.NewNop().Sugar(), nil, journal)
	ctx := context.Background()

	a := m.RegisterTrader("A", &fakeChannel{})
	b := m.RegisterTrader("B", &fakeChannel{})
	m.HandleMessage(ctx, a, []byte(`{"message":"createOrder","side":"bid","price":10,"quantity":5,"orderId":1}`))
	m.HandleMessage(ctx, b, []byte(`{"message":"createOrder","side":"ask","price":10,"quantity":3,"orderId":2}`))

	fills, err := journal.RecentFills(ctx, 10)
	require.NoError(t, err)
	require.Len(t, fills, 1)
	assert.Equal(t, int64(2), fills[0].TakerOrder)
	assert.Equal(t, int64(1), fills[0].MakerOrder)
	assert.Equal(t, "SELL", fills[0].Side)
	assert.Equal(t, int64(3), fills[0].Quantity)
}
