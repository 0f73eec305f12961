// Package ws is the participant transport: one websocket session per trader
// or client, delivering decoded bytes to the matcher and notifications back.
package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/exsim/exchange-sim/internal/matcher"
	"github.com/exsim/exchange-sim/internal/port"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Session is the notification channel over one websocket connection. Writes
// come from the matcher while the read loop runs, so they are serialized.
type Session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

var _ port.Channel = (*Session)(nil)

func (s *Session) Send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Session) Close() error {
	return s.conn.Close()
}

// Server accepts participant connections and binds them to the matcher.
type Server struct {
	m   *matcher.Matcher
	log *zap.SugaredLogger
}

func NewServer(m *matcher.Matcher, log *zap.SugaredLogger) *Server {
	return &Server{m: m, log: log}
}

// HandleTrader runs an order-entry session: register, pump inbound commands
// into the matcher, retract and deregister when the connection goes away.
func (s *Server) HandleTrader(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("trader upgrade failed: %v", err)
		return
	}
	sess := &Session{conn: conn}
	trader := s.m.RegisterTrader(label(r), sess)
	defer func() {
		// the request context is gone once the connection drops
		s.m.DeregisterTrader(context.Background(), trader)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.m.HandleMessage(r.Context(), trader, data)
	}
}

// HandleClient runs a market-data session: the client only listens, inbound
// frames are drained and dropped.
func (s *Server) HandleClient(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("client upgrade failed: %v", err)
		return
	}
	sess := &Session{conn: conn}
	client := s.m.RegisterClient(label(r), sess)
	defer func() {
		s.m.DeregisterClient(client)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func label(r *http.Request) string {
	if name := r.URL.Query().Get("name"); name != "" {
		return name
	}
	return uuid.NewString()[:8]
}
