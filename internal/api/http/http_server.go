// Package http is the read-only market-data REST surface. Order entry goes
// through the websocket transport, never through here.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/exsim/exchange-sim/internal/api/dto"
	"github.com/exsim/exchange-sim/internal/api/ws"
	"github.com/exsim/exchange-sim/internal/domain"
	"github.com/exsim/exchange-sim/internal/matcher"
	"github.com/exsim/exchange-sim/internal/middleware"
	"github.com/exsim/exchange-sim/internal/port"
)

type HTTPServer struct {
	m       *matcher.Matcher
	journal port.Journal
	ws      *ws.Server
}

func NewHTTPServer(m *matcher.Matcher, journal port.Journal, wsrv *ws.Server) *HTTPServer {
	return &HTTPServer{m: m, journal: journal, ws: wsrv}
}

func (s *HTTPServer) Run(addr string) error {
	r := gin.Default()

	// rate limiting applies to the REST surface only, not to the
	// long-lived participant sessions
	rl := middleware.NewRateLimiter(time.Millisecond * 100)
	api := r.Group("/", rl.Middleware())
	api.GET("/depth", s.getDepth)
	api.GET("/fills", s.getFills)

	r.GET("/healthz", s.healthz)
	r.GET("/ws/trader", gin.WrapF(s.ws.HandleTrader))
	r.GET("/ws/client", gin.WrapF(s.ws.HandleClient))

	return r.Run(addr)
}

func (s *HTTPServer) getDepth(c *gin.Context) {
	snap := s.m.Depth(c.Request.Context())
	c.JSON(http.StatusOK, dto.DepthResponse{
		Bids:      convertLevels(snap.Bids),
		Asks:      convertLevels(snap.Asks),
		Timestamp: snap.Timestamp,
	})
}

func (s *HTTPServer) getFills(c *gin.Context) {
	if s.journal == nil {
		c.JSON(http.StatusOK, dto.FillsResponse{Fills: []dto.Fill{}})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	fills, err := s.journal.RecentFills(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FillsResponse{Fills: convertFills(fills)})
}

func (s *HTTPServer) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func convertLevels(levels []domain.Level) []dto.Level {
	res := make([]dto.Level, len(levels))
	for i, l := range levels {
		res[i] = dto.Level{Price: l.Price, Quantity: l.Quantity}
	}
	return res
}

func convertFills(fills []*domain.Fill) []dto.Fill {
	res := make([]dto.Fill, len(fills))
	for i, f := range fills {
		res[i] = dto.Fill{
			ID:         f.ID,
			Side:       f.Side,
			TakerOrder: f.TakerOrder,
			MakerOrder: f.MakerOrder,
			Taker:      f.Taker,
			Maker:      f.Maker,
			Price:      f.Price,
			Quantity:   f.Quantity,
			Timestamp:  f.Timestamp,
		}
	}
	return res
}
