// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/madjo-travel/voyage-reservation/internal/handler"
)

// BasePath is the prefix every business route lives under. It is kept
// verbatim from the agency's existing clients, which have it baked in.
const BasePath = "/tg/voyage_pro/reservation/auth"

// Handlers bundles the handler set the API needs. Every field must be
// non-nil when passed to Register.
type Handlers struct {
	Client      *handler.ClientHandler
	Agent       *handler.AgentHandler
	Voyage      *handler.VoyageHandler
	TicketType  *handler.TicketTypeHandler
	Reservation *handler.ReservationHandler
	Payment     *handler.PaymentHandler
}

// RegisterRoutes registers routes that sit outside the business prefix.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// Register mounts the whole business API under BasePath. The optional
// middleware (rate limiting) applies to every business route but not to
// the health check.
func Register(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	g := e.Group(BasePath, mw...)

	registerClient(g, h.Client)
	registerAgent(g, h.Agent)
	registerVoyage(g, h.Voyage)
	registerTicketType(g, h.TicketType)
	registerReservation(g, h.Reservation)
	registerPayment(g, h.Payment)
}

func registerClient(g *echo.Group, c *handler.ClientHandler) {
	g.POST("/client/create", c.Create)
	g.POST("/client/login", c.Login)
	g.GET("/client", c.GetAll)
	g.GET("/client/getAll", c.GetAll)
	g.GET("/client/get/:id", c.Get)
	g.PUT("/client/update/:id", c.Update)
	// Search takes its criteria in the request body, hence PUT.
	g.PUT("/client/search", c.Search)
	g.DELETE("/client/delete/:id", c.Delete)
}

func registerAgent(g *echo.Group, a *handler.AgentHandler) {
	g.POST("/agent/create", a.Create)
	g.POST("/agent/login", a.Login)
	g.GET("/agent", a.GetAll)
	g.GET("/agent/getAll", a.GetAll)
	g.GET("/agent/get/:id", a.Get)
	g.PUT("/agent/update/:id", a.Update)
	g.DELETE("/agent/delete/:id", a.Delete)
}

func registerVoyage(g *echo.Group, v *handler.VoyageHandler) {
	g.POST("/voyage/create", v.Create)
	g.GET("/voyage", v.GetAll)
	g.GET("/voyage/getAll", v.GetAll)
	g.GET("/voyage/get/:id", v.Get)
	g.PUT("/voyage/update/:id", v.Update)
	g.DELETE("/voyage/delete/:id", v.Delete)
}

func registerTicketType(g *echo.Group, t *handler.TicketTypeHandler) {
	g.POST("/ticket/create", t.Create)
	g.GET("/ticket", t.GetAll)
	g.GET("/ticket/getAll", t.GetAll)
	g.GET("/ticket/get/:id", t.Get)
	g.PUT("/ticket/update/:id", t.Update)
	g.DELETE("/ticket/delete/:id", t.Delete)
}

func registerReservation(g *echo.Group, r *handler.ReservationHandler) {
	g.POST("/reservation/create", r.Create)
	g.GET("/reservation/all", r.All)
	g.GET("/reservation/get/:id", r.Get)
	// Update carries the reservation id in the body, not the path.
	g.PUT("/reservation/update", r.Update)
	g.PUT("/reservation/:id/status", r.UpdateStatus)
	g.DELETE("/reservation/delete/:id", r.Delete)
}

func registerPayment(g *echo.Group, p *handler.PaymentHandler) {
	g.POST("/paiement/create", p.Create)
	g.GET("/paiement", p.GetAll)
	g.GET("/paiement/getAll", p.GetAll)
	g.GET("/paiement/get/:code", p.Get)
	g.PUT("/paiement/update/:code", p.Update)
	g.DELETE("/paiement/delete/:code", p.Delete)
}
