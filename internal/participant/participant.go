// Package participant holds the connected-endpoint identities: traders, who
// may place and cancel orders, and clients, who only subscribe to depth.
package participant

import (
	"fmt"

	"github.com/exsim/exchange-sim/internal/msg"
	"github.com/exsim/exchange-sim/internal/port"
)

// Trader is a named order-entry endpoint. The display name is derived
// deterministically from the human-readable label it was registered with.
type Trader struct {
	name string
	ch   port.Channel
}

func NewTrader(label string, ch port.Channel) *Trader {
	return &Trader{name: fmt.Sprintf("<Trader %s>", label), ch: ch}
}

func (t *Trader) Name() string { return t.name }

// Send delivers a notification to the trader. Write failures are the
// transport's concern, not the book's.
func (t *Trader) Send(v any) {
	_ = t.ch.Send(v)
}

// Disconnect terminates the trader's session. The transport is expected to
// deregister the trader once the connection is gone.
func (t *Trader) Disconnect() {
	_ = t.ch.Close()
}

func (t *Trader) NotifyCreateOrderSuccess(orderID int64) {
	t.Send(msg.CreateOrderSuccess(orderID))
}

func (t *Trader) NotifyOrderAlreadyExists(orderID int64) {
	t.Send(msg.CreateOrderError(orderID))
}

func (t *Trader) NotifyCancelOrderSuccess(orderID int64) {
	t.Send(msg.CancelOrderSuccess(orderID))
}

func (t *Trader) NotifyCancelOrderError(orderID int64) {
	t.Send(msg.CancelOrderError(orderID))
}

func (t *Trader) NotifyError(text string) {
	t.Send(msg.Error(text))
}

// Client is a named market-data subscriber.
type Client struct {
	name string
	ch   port.Channel
}

func NewClient(label string, ch port.Channel) *Client {
	return &Client{name: fmt.Sprintf("<Client %s>", label), ch: ch}
}

func (c *Client) Name() string { return c.name }

func (c *Client) Send(v any) {
	_ = c.ch.Send(v)
}

func (c *Client) Disconnect() {
	_ = c.ch.Close()
}

// ClientSet is the registry of connected market-data subscribers. Membership
// is the sole authority for "is connected". The set is keyed by session
// identity, not by name: labels are caller-chosen and may collide.
type ClientSet struct {
	members map[*Client]struct{}
}

func NewClientSet() *ClientSet {
	return &ClientSet{members: make(map[*Client]struct{})}
}

func (s *ClientSet) Add(c *Client) {
	s.members[c] = struct{}{}
}

// Remove drops the client from the set, reporting whether it was present.
func (s *ClientSet) Remove(c *Client) bool {
	if _, ok := s.members[c]; !ok {
		return false
	}
	delete(s.members, c)
	return true
}

func (s *ClientSet) Len() int { return len(s.members) }

// Broadcast delivers a message to every registered client.
func (s *ClientSet) Broadcast(v any) {
	for c := range s.members {
		c.Send(v)
	}
}
