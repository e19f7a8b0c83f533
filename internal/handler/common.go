// Package handler implements the HTTP workflow layer: referential
// preconditions, status transitions and field defaulting, on top of the
// repository stores. Each handler declares the narrow store interfaces
// it needs; the concrete repositories satisfy them.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madjo-travel/voyage-reservation/internal/model"
)

// dbTimeout bounds every store call issued on behalf of a request.
const dbTimeout = 5 * time.Second

// ClientResolver loads a client by id; used to verify references.
type ClientResolver interface {
	GetByID(ctx context.Context, id uint64) (model.Client, error)
}

// AgentResolver loads an agent by id; used to verify references.
type AgentResolver interface {
	GetByID(ctx context.Context, id uint64) (model.Agent, error)
}

// VoyageResolver loads a voyage by id; used to verify references.
type VoyageResolver interface {
	GetByID(ctx context.Context, id uint64) (model.Voyage, error)
}

// TicketTypeResolver loads a ticket type by id; used to verify references.
type TicketTypeResolver interface {
	GetByID(ctx context.Context, id uint64) (model.TicketType, error)
}

// reqContext derives a bounded context from the incoming request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pathID parses the named numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
