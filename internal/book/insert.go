package book

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/msg"
	"github.com/exsim/exchange-sim/internal/participant"
	"github.com/exsim/exchange-sim/internal/side"
)

// CreateOrder inserts a validated order, runs self-match prevention and the
// execution sweep, and rests or removes the remainder. After it returns the
// book is fully rejected, fully filled or resting with the correct remaining
// quantity; price levels always match container contents.
func (b *Book) CreateOrder(ctx context.Context, trader *participant.Trader, req msg.CreateOrderRequest) {
	own := b.sideFor(req.Side)
	opp := b.sideFor(req.Side.Opposite())

	order := &Order{
		ID:       req.OrderID,
		Side:     req.Side,
		Price:    req.Price,
		Quantity: req.Quantity,
		Trader:   trader,
		seq:      b.nextSeq(),
	}

	if !own.insert(order) {
		// duplicate id is a protocol violation, not a benign no-op
		b.log.Warnf("%s adding order id %d, but it already exists", trader.Name(), order.ID)
		trader.NotifyOrderAlreadyExists(order.ID)
		trader.Disconnect()
		return
	}

	if b.wouldSelfMatch(opp, trader, order) {
		// cancel-the-aggressor policy: the whole incoming order is
		// voided, nothing executes
		own.remove(order)
		return
	}

	trader.NotifyCreateOrderSuccess(order.ID)

	touched := b.execute(ctx, opp, order)
	b.notifyPriceLevels(opp.side, touched)

	if order.Quantity > 0 {
		b.notifyPriceLevel(own.side, order.Price)
		b.log.Infof("%s added %s order id %d at price %s of quantity %d",
			trader.Name(), order.Side, order.ID, order.Price, order.Quantity)
	} else {
		// fully executed, no resting presence
		own.remove(order)
	}
}

// wouldSelfMatch scans the opposing orders the incoming order could execute
// against, in priority order. Any crossing counterparty owned by the same
// trader voids the whole order.
func (b *Book) wouldSelfMatch(opp *sideBook, trader *participant.Trader, order *Order) bool {
	for _, maker := range opp.queue {
		if !crosses(order, maker) {
			break
		}
		if maker.Trader == trader {
			return true
		}
	}
	return false
}

// execute fills the incoming order against the opposing side in price-time
// priority until it is exhausted or no longer crosses. Returns the opposing
// prices whose levels were touched, in consumption order.
func (b *Book) execute(ctx context.Context, opp *sideBook, order *Order) []decimal.Decimal {
	var touched []decimal.Decimal
	for order.Quantity > 0 {
		maker := opp.best()
		if maker == nil || !crosses(order, maker) {
			break
		}
		fill := min(order.Quantity, maker.Quantity)
		order.Quantity -= fill
		maker.Quantity -= fill
		touched = appendPrice(touched, maker.Price)

		b.log.Infof("order id %d executed %d at price %s against order id %d",
			order.ID, fill, maker.Price, maker.ID)
		b.journalFill(ctx, order, maker, fill)

		if maker.Quantity == 0 {
			opp.remove(maker)
		}
	}
	return touched
}

func (b *Book) journalFill(ctx context.Context, taker, maker *Order, quantity int64) {
	if b.journal == nil {
		return
	}
	_ = b.journal.SaveFill(ctx, &domain.Fill{
		ID:         uuid.NewString(),
		Side:       taker.Side.BuySell(),
		TakerOrder: taker.ID,
		MakerOrder: maker.ID,
		Taker:      taker.Trader.Name(),
		Maker:      maker.Trader.Name(),
		Price:      maker.Price,
		Quantity:   quantity,
		Timestamp:  time.Now(),
	})
}

// crosses reports whether the incoming order's price crosses a resting
// opposing order: a bid crosses any ask at or below its price, an ask
// crosses any bid at or above it.
func crosses(order, maker *Order) bool {
	if order.Side == side.Bid {
		return maker.Price.LessThanOrEqual(order.Price)
	}
	return maker.Price.GreaterThanOrEqual(order.Price)
}

func appendPrice(prices []decimal.Decimal, p decimal.Decimal) []decimal.Decimal {
	for _, q := range prices {
		if q.Equal(p) {
			return prices
		}
	}
	return append(prices, p)
}
