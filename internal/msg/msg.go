// Package msg defines the decoded command schema and the outbound
// notification payloads exchanged with participants.
package msg

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/exsim/exchange-sim/internal/side"
)

// Recognized inbound message types.
const (
	TypeCreateOrder = "createOrder"
	TypeCancelOrder = "cancelOrder"
)

// Outbound message types.
const (
	TypeOrderBook          = "orderBook"
	TypeCreateOrderSuccess = "createOrderSuccess"
	TypeCreateOrderError   = "createOrderError"
	TypeCancelOrderSuccess = "cancelOrderSuccess"
	TypeCancelOrderError   = "cancelOrderError"
	TypeError              = "error"
)

var (
	// ErrMalformedMessage marks a command with a missing or wrongly-typed
	// required field. The session does not survive it.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrUnknownMessage marks a well-formed command whose message type is
	// not recognized. The session survives it.
	ErrUnknownMessage = errors.New("unknown message")
)

// Envelope is a structurally decoded command before schema validation.
type Envelope map[string]json.RawMessage

// Decode turns raw bytes into an Envelope. A failure here is a decode
// failure, distinct from schema-level malformation.
func Decode(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}

// ExtractType reads the message-type field of an envelope. A missing or
// non-string field is a malformed message; a string outside the recognized
// command set is an unknown message.
func ExtractType(e Envelope) (string, error) {
	raw, ok := e["message"]
	if !ok {
		return "", fmt.Errorf("%w: missing message field", ErrMalformedMessage)
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return "", fmt.Errorf("%w: message field is not a string", ErrMalformedMessage)
	}
	switch name {
	case TypeCreateOrder, TypeCancelOrder:
		return name, nil
	default:
		return "", ErrUnknownMessage
	}
}

// CreateOrderRequest is a validated createOrder command.
type CreateOrderRequest struct {
	Side     side.Side
	Price    decimal.Decimal
	Quantity int64
	OrderID  int64
}

// CancelOrderRequest is a validated cancelOrder command.
type CancelOrderRequest struct {
	OrderID int64
}

// ParseCreateOrder validates the createOrder schema: side in either wire
// convention, strictly positive price, strictly positive integer quantity
// and a caller-chosen order id.
func ParseCreateOrder(e Envelope) (CreateOrderRequest, error) {
	var req CreateOrderRequest

	var rawSide string
	if err := field(e, "side", &rawSide); err != nil {
		return req, err
	}
	s, err := side.Parse(rawSide)
	if err != nil {
		return req, fmt.Errorf("%w: %s", ErrMalformedMessage, err)
	}
	req.Side = s

	if err := field(e, "price", &req.Price); err != nil {
		return req, err
	}
	if !req.Price.IsPositive() {
		return req, fmt.Errorf("%w: price must be positive", ErrMalformedMessage)
	}

	if err := field(e, "quantity", &req.Quantity); err != nil {
		return req, err
	}
	if req.Quantity <= 0 {
		return req, fmt.Errorf("%w: quantity must be positive", ErrMalformedMessage)
	}

	if err := field(e, "orderId", &req.OrderID); err != nil {
		return req, err
	}
	return req, nil
}

// ParseCancelOrder validates the cancelOrder schema.
func ParseCancelOrder(e Envelope) (CancelOrderRequest, error) {
	var req CancelOrderRequest
	if err := field(e, "orderId", &req.OrderID); err != nil {
		return req, err
	}
	return req, nil
}

func field(e Envelope, name string, dst any) error {
	raw, ok := e[name]
	if !ok {
		return fmt.Errorf("%w: missing %s field", ErrMalformedMessage, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: bad %s field", ErrMalformedMessage, name)
	}
	return nil
}

// OrderReport acknowledges or rejects an order-entry command.
type OrderReport struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

// ErrorReport carries a generic error back to a trader.
type ErrorReport struct {
	Message string `json:"message"`
	Text    string `json:"text"`
}

// Depth reports the aggregate resting quantity at one price level.
type Depth struct {
	Message  string          `json:"message"`
	Side     string          `json:"side"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

func CreateOrderSuccess(orderID int64) OrderReport {
	return OrderReport{Message: TypeCreateOrderSuccess, OrderID: orderID}
}

// CreateOrderError reports a rejected creation, e.g. a duplicate order id.
func CreateOrderError(orderID int64) OrderReport {
	return OrderReport{Message: TypeCreateOrderError, OrderID: orderID}
}

func CancelOrderSuccess(orderID int64) OrderReport {
	return OrderReport{Message: TypeCancelOrderSuccess, OrderID: orderID}
}

func CancelOrderError(orderID int64) OrderReport {
	return OrderReport{Message: TypeCancelOrderError, OrderID: orderID}
}

func Error(text string) ErrorReport {
	return ErrorReport{Message: TypeError, Text: text}
}

func DepthUpdate(s side.Side, price decimal.Decimal, quantity int64) Depth {
	return Depth{Message: TypeOrderBook, Side: s.String(), Price: price, Quantity: quantity}
}
