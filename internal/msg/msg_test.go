package msg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exsim/exchange-sim/internal/side"
)

func TestDecodeRejectsNonJSON(t *testing.T) {
	_, err := Decode([]byte("garbage"))
	assert.Error(t, err)
}

func TestExtractType(t *testing.T) {
	e, err := Decode([]byte(`{"message":"createOrder"}`))
	require.NoError(t, err)
	name, err := ExtractType(e)
	require.NoError(t, err)
	assert.Equal(t, TypeCreateOrder, name)

	e, _ = Decode([]byte(`{"side":"BUY"}`))
	_, err = ExtractType(e)
	assert.ErrorIs(t, err, ErrMalformedMessage)

	e, _ = Decode([]byte(`{"message":42}`))
	_, err = ExtractType(e)
	assert.ErrorIs(t, err, ErrMalformedMessage)

	e, _ = Decode([]byte(`{"message":"doSomething"}`))
	_, err = ExtractType(e)
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

func TestParseCreateOrder(t *testing.T) {
	e, err := Decode([]byte(`{"message":"createOrder","side":"BUY","price":10,"quantity":5,"orderId":1}`))
	require.NoError(t, err)

	req, err := ParseCreateOrder(e)
	require.NoError(t, err)
	assert.Equal(t, side.Bid, req.Side)
	assert.True(t, req.Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(5), req.Quantity)
	assert.Equal(t, int64(1), req.OrderID)
}

func TestParseCreateOrderAcceptsStringPrice(t *testing.T) {
	e, _ := Decode([]byte(`{"message":"createOrder","side":"bid","price":"10.5","quantity":5,"orderId":1}`))
	req, err := ParseCreateOrder(e)
	require.NoError(t, err)
	assert.True(t, req.Price.Equal(decimal.RequireFromString("10.5")))
}

func TestParseCreateOrderRejections(t *testing.T) {
	cases := map[string]string{
		"missing side":      `{"message":"createOrder","price":10,"quantity":5,"orderId":1}`,
		"bad side":          `{"message":"createOrder","side":"sideways","price":10,"quantity":5,"orderId":1}`,
		"missing price":     `{"message":"createOrder","side":"BUY","quantity":5,"orderId":1}`,
		"zero price":        `{"message":"createOrder","side":"BUY","price":0,"quantity":5,"orderId":1}`,
		"negative price":    `{"message":"createOrder","side":"BUY","price":-1,"quantity":5,"orderId":1}`,
		"missing quantity":  `{"message":"createOrder","side":"BUY","price":10,"orderId":1}`,
		"zero quantity":     `{"message":"createOrder","side":"BUY","price":10,"quantity":0,"orderId":1}`,
		"missing order id":  `{"message":"createOrder","side":"BUY","price":10,"quantity":5}`,
		"non-integer qty":   `{"message":"createOrder","side":"BUY","price":10,"quantity":1.5,"orderId":1}`,
		"string quantity":   `{"message":"createOrder","side":"BUY","price":10,"quantity":"5","orderId":1}`,
		"non-number id":     `{"message":"createOrder","side":"BUY","price":10,"quantity":5,"orderId":"abc"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			e, err := Decode([]byte(raw))
			require.NoError(t, err)
			_, err = ParseCreateOrder(e)
			assert.ErrorIs(t, err, ErrMalformedMessage)
		})
	}
}

func TestParseCancelOrder(t *testing.T) {
	e, _ := Decode([]byte(`{"message":"cancelOrder","orderId":7}`))
	req, err := ParseCancelOrder(e)
	require.NoError(t, err)
	assert.Equal(t, int64(7), req.OrderID)

	e, _ = Decode([]byte(`{"message":"cancelOrder"}`))
	_, err = ParseCancelOrder(e)
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestDepthUpdate(t *testing.T) {
	d := DepthUpdate(side.Bid, decimal.NewFromInt(10), 5)
	assert.Equal(t, TypeOrderBook, d.Message)
	assert.Equal(t, "bid", d.Side)
	assert.Equal(t, int64(5), d.Quantity)
}
