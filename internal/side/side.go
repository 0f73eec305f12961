package side

import "fmt"

// Side of the book an order belongs to.
type Side int8

const (
	Bid Side = 1
	Ask Side = 2
)

const (
	bid = "bid"
	ask = "ask"

	buy  = "BUY"
	sell = "SELL"
)

func (s Side) Valid() bool {
	return s == Bid || s == Ask
}

// Opposite converts bid to ask and ask to bid. Calling it with anything else
// is a contract violation and panics.
func (s Side) Opposite() Side {
	switch s {
	case Bid:
		return Ask
	case Ask:
		return Bid
	default:
		panic(fmt.Sprintf("side: invalid side %d", s))
	}
}

// String renders the side in bid/ask convention, as used in depth updates.
func (s Side) String() string {
	switch s {
	case Bid:
		return bid
	case Ask:
		return ask
	default:
		return fmt.Sprintf("side(%d)", s)
	}
}

// BuySell renders the side in the BUY/SELL convention used by order entry.
func (s Side) BuySell() string {
	switch s {
	case Bid:
		return buy
	case Ask:
		return sell
	default:
		return fmt.Sprintf("side(%d)", s)
	}
}

// Parse accepts both conventions: bid/ask and BUY/SELL.
func Parse(v string) (Side, error) {
	switch v {
	case bid, buy:
		return Bid, nil
	case ask, sell:
		return Ask, nil
	default:
		return 0, fmt.Errorf("side: unknown side %q", v)
	}
}
