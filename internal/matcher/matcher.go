// Package matcher routes validated commands into the order book and manages
// participant registration and teardown.
package matcher

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/exsim/exchange-sim/internal/book"
	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/msg"
	"github.com/exsim/exchange-sim/internal/participant"
	"github.com/exsim/exchange-sim/internal/port"
)

// Matcher owns the order book and the registries of connected participants.
// All mutating operations, together with the notifications they emit, run
// under one exclusive section per instance.
type Matcher struct {
	mu sync.Mutex

	log   *zap.SugaredLogger
	cache port.Cache

	traders map[*participant.Trader]struct{}
	clients *participant.ClientSet
	book    *book.Book
}

// New wires an empty matcher. cache and journal are optional collaborators.
func New(log *zap.SugaredLogger, cache port.Cache, journal port.Journal) *Matcher {
	clients := participant.NewClientSet()
	m := &Matcher{
		log:     log,
		cache:   cache,
		traders: make(map[*participant.Trader]struct{}),
		clients: clients,
		book:    book.New(clients, journal, log),
	}
	log.Infof("Matcher is ready")
	return m
}

// HandleMessage processes one raw inbound command from a trader. Bytes that
// do not decode into a structured command terminate the session.
func (m *Matcher) HandleMessage(ctx context.Context, trader *participant.Trader, data []byte) {
	env, err := msg.Decode(data)
	if err != nil {
		m.log.Errorf("%s JSON decode error", trader.Name())
		trader.Disconnect()
		return
	}
	m.Dispatch(ctx, trader, env)
}

// Dispatch classifies a decoded command and routes it into the book. A
// malformed command ends the session; a well-formed but unrecognized one is
// reported back and the session stays open.
func (m *Matcher) Dispatch(ctx context.Context, trader *participant.Trader, env msg.Envelope) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, err := msg.ExtractType(env)
	if errors.Is(err, msg.ErrUnknownMessage) {
		trader.NotifyError("unknown message")
		m.log.Errorf("%s sent unknown message", trader.Name())
		return
	}
	if err != nil {
		m.malformed(trader)
		return
	}

	switch name {
	case msg.TypeCreateOrder:
		req, err := msg.ParseCreateOrder(env)
		if err != nil {
			m.malformed(trader)
			return
		}
		m.book.CreateOrder(ctx, trader, req)
	case msg.TypeCancelOrder:
		req, err := msg.ParseCancelOrder(env)
		if err != nil {
			m.malformed(trader)
			return
		}
		m.book.CancelOrder(trader, req)
	}

	m.updateCache(ctx)
}

func (m *Matcher) malformed(trader *participant.Trader) {
	m.log.Errorf("%s sent malformed message", trader.Name())
	trader.Disconnect()
}

// RegisterTrader constructs a trader identity and inserts it into the
// registry. The registry is keyed by session identity, so two sessions
// registered under the same label coexist and tear down independently.
func (m *Matcher) RegisterTrader(label string, ch port.Channel) *participant.Trader {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := participant.NewTrader(label, ch)
	m.traders[t] = struct{}{}
	m.log.Infof("%s created", t.Name())
	return t
}

// DeregisterTrader retracts all of the trader's resting orders, then drops
// it from the registry. Deregistering twice is tolerated.
func (m *Matcher) DeregisterTrader(ctx context.Context, t *participant.Trader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.traders[t]; ok {
		m.book.CancelAll(t)
		delete(m.traders, t)
		m.log.Infof("%s removed", t.Name())
		m.updateCache(ctx)
		return
	}
	m.log.Warnf("%s does not exist", t.Name())
}

// RegisterClient constructs a market-data subscriber identity and inserts it
// into the registry.
func (m *Matcher) RegisterClient(label string, ch port.Channel) *participant.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := participant.NewClient(label, ch)
	m.clients.Add(c)
	m.log.Infof("%s created", c.Name())
	return c
}

// DeregisterClient drops the client from the registry. Clients own no book
// state, so there is nothing to retract.
func (m *Matcher) DeregisterClient(c *participant.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clients.Remove(c) {
		m.log.Infof("%s removed", c.Name())
		return
	}
	m.log.Warnf("%s does not exist", c.Name())
}

// Depth returns the aggregated book, cache-first.
func (m *Matcher) Depth(ctx context.Context) *domain.DepthSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cache != nil {
		if snap, err := m.cache.GetDepth(ctx); err == nil && snap != nil {
			return snap
		}
	}
	return m.book.Depth()
}

func (m *Matcher) updateCache(ctx context.Context) {
	if m.cache != nil {
		_ = m.cache.SetDepth(ctx, m.book.Depth())
	}
}
