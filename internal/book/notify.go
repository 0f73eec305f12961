package book

import (
	"github.com/shopspring/decimal"

	"github.com/exsim/exchange-sim/internal/msg"
	"github.com/exsim/exchange-sim/internal/side"
)

// notifyPriceLevel recomputes the aggregate quantity at a price and
// broadcasts it to every registered client. An emptied level is broadcast
// once with quantity zero.
func (b *Book) notifyPriceLevel(s side.Side, price decimal.Decimal) {
	quantity := b.sideFor(s).aggregate(price)
	b.clients.Broadcast(msg.DepthUpdate(s, price, quantity))
}

// notifyPriceLevels reports every price touched by a compound operation, in
// the order the levels were touched.
func (b *Book) notifyPriceLevels(s side.Side, prices []decimal.Decimal) {
	for _, price := range prices {
		b.notifyPriceLevel(s, price)
	}
}
