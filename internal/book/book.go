// Package book implements the matching engine: two price-time ordered order
// containers, self-match prevention, execution and price-level aggregation.
package book

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/participant"
	"github.com/exsim/exchange-sim/internal/port"
	"github.com/exsim/exchange-sim/internal/side"
)

// Order is a resting limit order. Quantity only decreases, through execution.
type Order struct {
	ID       int64
	Side     side.Side
	Price    decimal.Decimal
	Quantity int64
	Trader   *participant.Trader

	seq uint64 // arrival sequence, assigned at insertion, never reused
}

// Book owns all order data exclusively. It is not safe for concurrent use;
// callers serialize every mutating operation together with its
// notifications.
type Book struct {
	clients *participant.ClientSet
	journal port.Journal
	log     *zap.SugaredLogger

	bids sideBook
	asks sideBook

	seq uint64
}

// New creates an empty book. The journal is optional; clients and log are
// not.
func New(clients *participant.ClientSet, journal port.Journal, log *zap.SugaredLogger) *Book {
	return &Book{
		clients: clients,
		journal: journal,
		log:     log,
		bids:    newSideBook(side.Bid),
		asks:    newSideBook(side.Ask),
	}
}

func (b *Book) sideFor(s side.Side) *sideBook {
	switch s {
	case side.Bid:
		return &b.bids
	case side.Ask:
		return &b.asks
	default:
		panic(fmt.Sprintf("book: invalid side %d", s))
	}
}

func (b *Book) nextSeq() uint64 {
	b.seq++
	return b.seq
}

// Depth returns the aggregated book, best levels first.
func (b *Book) Depth() *domain.DepthSnapshot {
	return &domain.DepthSnapshot{
		Bids:      b.bids.levels(),
		Asks:      b.asks.levels(),
		Timestamp: time.Now(),
	}
}
