package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Level is the aggregate resting quantity at one price on one side.
type Level struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// DepthSnapshot is the full aggregated book, best levels first.
type DepthSnapshot struct {
	Bids      []Level   `json:"bids"`
	Asks      []Level   `json:"asks"`
	Timestamp time.Time `json:"timestamp"`
}
