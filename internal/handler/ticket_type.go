package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/madjo-travel/voyage-reservation/internal/model"
	"github.com/madjo-travel/voyage-reservation/internal/repository"
)

// TicketTypeStore is the persistence surface the ticket-type endpoints
// need. *repository.TicketTypeRepo satisfies it.
type TicketTypeStore interface {
	Create(ctx context.Context, t *model.TicketType) error
	GetByID(ctx context.Context, id uint64) (model.TicketType, error)
	ListAll(ctx context.Context) ([]model.TicketType, error)
	Update(ctx context.Context, t *model.TicketType) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

type TicketTypeHandler struct {
	Tickets TicketTypeStore
}

func NewTicketTypeHandler(store TicketTypeStore) *TicketTypeHandler {
	if store == nil {
		panic("nil store passed to NewTicketTypeHandler")
	}
	return &TicketTypeHandler{Tickets: store}
}

type ticketTypeReq struct {
	Libelle string   `json:"libelleTypeBillet"`
	Prix    *float64 `json:"prixTypeBillet"`
}

// Create handles POST /ticket/create.
func (h *TicketTypeHandler) Create(c echo.Context) error {
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Libelle) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "libelleTypeBillet is required"})
	}
	if req.Prix != nil && *req.Prix < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prixTypeBillet must not be negative"})
	}

	t := model.TicketType{Libelle: strings.TrimSpace(req.Libelle)}
	if req.Prix != nil {
		t.Prix = *req.Prix
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Tickets.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create ticket type"})
	}
	return c.JSON(http.StatusCreated, t)
}

// GetAll handles GET /ticket and GET /ticket/getAll.
func (h *TicketTypeHandler) GetAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Tickets.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /ticket/get/:id.
func (h *TicketTypeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

// Update handles PUT /ticket/update/:id as a full replace.
func (h *TicketTypeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Libelle) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "libelleTypeBillet is required"})
	}
	if req.Prix != nil && *req.Prix < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prixTypeBillet must not be negative"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Tickets.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	upd := model.TicketType{ID: id, Libelle: strings.TrimSpace(req.Libelle)}
	if req.Prix != nil {
		upd.Prix = *req.Prix
	}
	if err := h.Tickets.Update(ctx, &upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, upd)
}

// Delete handles DELETE /ticket/delete/:id and reports whether a row was
// removed. Reservations holding the type and their payments go with it.
func (h *TicketTypeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	deleted, err := h.Tickets.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, deleted)
}
