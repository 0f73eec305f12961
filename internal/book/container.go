package book

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/participant"
	"github.com/exsim/exchange-sim/internal/side"
)

// sideBook holds one side of the book with two access paths: by order id and
// by price-time priority.
type sideBook struct {
	side side.Side
	byID map[int64]*Order

	// queue is kept sorted by price-time priority: bids by descending
	// price, asks by ascending price, ties by arrival sequence.
	queue []*Order
}

func newSideBook(s side.Side) sideBook {
	return sideBook{side: s, byID: make(map[int64]*Order)}
}

// insert adds the order to both indices. A duplicate id is rejected, not
// overwritten.
func (sb *sideBook) insert(o *Order) bool {
	if _, exists := sb.byID[o.ID]; exists {
		return false
	}
	sb.byID[o.ID] = o
	i := sort.Search(len(sb.queue), func(i int) bool {
		return sb.before(o, sb.queue[i])
	})
	sb.queue = append(sb.queue, nil)
	copy(sb.queue[i+1:], sb.queue[i:])
	sb.queue[i] = o
	return true
}

func (sb *sideBook) remove(o *Order) {
	delete(sb.byID, o.ID)
	for i, q := range sb.queue {
		if q == o {
			sb.queue = append(sb.queue[:i], sb.queue[i+1:]...)
			return
		}
	}
}

// best returns the highest-priority resting order, or nil on an empty side.
func (sb *sideBook) best() *Order {
	if len(sb.queue) == 0 {
		return nil
	}
	return sb.queue[0]
}

// before reports whether a has strictly higher priority than b.
func (sb *sideBook) before(a, b *Order) bool {
	if !a.Price.Equal(b.Price) {
		if sb.side == side.Bid {
			return a.Price.GreaterThan(b.Price)
		}
		return a.Price.LessThan(b.Price)
	}
	return a.seq < b.seq
}

// aggregate recomputes the resting quantity at a price as the sum over all
// orders resting at exactly that price.
func (sb *sideBook) aggregate(price decimal.Decimal) int64 {
	var quantity int64
	for _, o := range sb.queue {
		if o.Price.Equal(price) {
			quantity += o.Quantity
		}
	}
	return quantity
}

// levels walks the priority queue and folds contiguous equal prices into
// aggregate levels, best price first.
func (sb *sideBook) levels() []domain.Level {
	var levels []domain.Level
	for _, o := range sb.queue {
		if n := len(levels); n > 0 && levels[n-1].Price.Equal(o.Price) {
			levels[n-1].Quantity += o.Quantity
			continue
		}
		levels = append(levels, domain.Level{Price: o.Price, Quantity: o.Quantity})
	}
	return levels
}

func (sb *sideBook) ownedBy(t *participant.Trader) []*Order {
	var owned []*Order
	for _, o := range sb.queue {
		if o.Trader == t {
			owned = append(owned, o)
		}
	}
	return owned
}
