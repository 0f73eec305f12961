package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type Level struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type DepthResponse struct {
	Bids      []Level   `json:"bids"`
	Asks      []Level   `json:"asks"`
	Timestamp time.Time `json:"timestamp"`
}

type Fill struct {
	ID         string          `json:"id"`
	Side       string          `json:"side"`
	TakerOrder int64           `json:"taker_order"`
	MakerOrder int64           `json:"maker_order"`
	Taker      string          `json:"taker"`
	Maker      string          `json:"maker"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	Timestamp  time.Time       `json:"timestamp"`
}

type FillsResponse struct {
	Fills []Fill `json:"fills"`
}
