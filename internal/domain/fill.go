package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fill records one execution between an incoming order and a resting order.
// Fills are journaled for audit only; the book is never rebuilt from them.
type Fill struct {
	ID         string          `json:"id"`
	Side       string          `json:"side"` // aggressor side, BUY/SELL
	TakerOrder int64           `json:"taker_order"`
	MakerOrder int64           `json:"maker_order"`
	Taker      string          `json:"taker"`
	Maker      string          `json:"maker"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	Timestamp  time.Time       `json:"timestamp"`
}
