package book

import (
	"github.com/shopspring/decimal"

	"github.com/exsim/exchange-sim/internal/msg"
	"github.com/exsim/exchange-sim/internal/participant"
)

// CancelOrder removes a resting order owned by the calling trader. A missing
// or foreign order id is reported as a failure without mutating the book.
// Order ids are unique per side, so the same id can rest on both sides at
// once; the request carries no side, and the bid-side order is cancelled
// first.
func (b *Book) CancelOrder(trader *participant.Trader, req msg.CancelOrderRequest) {
	if b.cancel(&b.bids, trader, req.OrderID) || b.cancel(&b.asks, trader, req.OrderID) {
		trader.NotifyCancelOrderSuccess(req.OrderID)
		b.log.Infof("%s cancelled order id %d", trader.Name(), req.OrderID)
		return
	}
	trader.NotifyCancelOrderError(req.OrderID)
}

func (b *Book) cancel(sb *sideBook, trader *participant.Trader, orderID int64) bool {
	order, ok := sb.byID[orderID]
	if !ok || order.Trader != trader {
		return false
	}
	sb.remove(order)
	b.notifyPriceLevel(sb.side, order.Price)
	return true
}

// CancelAll retracts every order owned by the trader from both sides. Used
// on disconnect: the trader gets no notification, but clients still observe
// the affected levels, including their removal. Safe to call for a trader
// with no resting orders.
func (b *Book) CancelAll(trader *participant.Trader) {
	for _, sb := range []*sideBook{&b.bids, &b.asks} {
		var touched []decimal.Decimal
		for _, order := range sb.ownedBy(trader) {
			sb.remove(order)
			touched = appendPrice(touched, order.Price)
		}
		b.notifyPriceLevels(sb.side, touched)
	}
}
