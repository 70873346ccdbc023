package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tradeyard/tradeyard-auction-service/internal/delivery/http/handlers"
	"github.com/tradeyard/tradeyard-auction-service/internal/delivery/http/middleware"
)

type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer wires the route tree. Everything under /api/v1 requires a valid
// token; /metrics and /healthz are open.
func NewServer(
	addr string,
	jwtSecret string,
	bidHandler *handlers.BidHandler,
	escrowHandler *handlers.EscrowHandler,
	disputeHandler *handlers.DisputeHandler,
	adminHandler *handlers.AdminHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.JWTAuth(jwtSecret))

	api.POST("/items/:id/bids", bidHandler.PlaceBid)
	api.GET("/items/:id/bids", bidHandler.ListBids)

	api.GET("/transactions/:id", escrowHandler.GetTransaction)
	api.GET("/transactions/:id/escrow", escrowHandler.GetEscrow)
	api.POST("/transactions/:id/escrow/fund", escrowHandler.Fund)
	api.POST("/transactions/:id/escrow/release", escrowHandler.Release)
	api.POST("/transactions/:id/escrow/refund", escrowHandler.Refund)

	api.POST("/disputes", disputeHandler.Open)
	api.GET("/disputes", disputeHandler.List)
	api.GET("/disputes/:id", disputeHandler.Get)
	api.POST("/disputes/:id/messages", disputeHandler.AddMessage)
	api.GET("/disputes/:id/messages", disputeHandler.ListMessages)
	api.POST("/disputes/:id/escalate", disputeHandler.Escalate)
	api.POST("/disputes/:id/resolve", disputeHandler.Resolve)

	api.POST("/admin/items/:id/settle", adminHandler.SettleItem)
	api.POST("/admin/items/:id/repair-cache", adminHandler.RepairItemCache)
	api.GET("/admin/audit/:entity_type/:entity_id", adminHandler.GetAuditTrail)

	return &Server{echo: e, addr: addr}
}

func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
