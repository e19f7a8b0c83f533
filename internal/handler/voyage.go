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

// VoyageStore is the persistence surface the voyage endpoints need.
// *repository.VoyageRepo satisfies it.
type VoyageStore interface {
	Create(ctx context.Context, v *model.Voyage) error
	GetByID(ctx context.Context, id uint64) (model.Voyage, error)
	ListAll(ctx context.Context) ([]model.Voyage, error)
	Update(ctx context.Context, v *model.Voyage) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

// VoyageHandler exposes voyage CRUD. Update replaces the itinerary
// fields but leaves the stored price alone.
type VoyageHandler struct {
	Voyages VoyageStore
}

func NewVoyageHandler(store VoyageStore) *VoyageHandler {
	if store == nil {
		panic("nil store passed to NewVoyageHandler")
	}
	return &VoyageHandler{Voyages: store}
}

type voyageReq struct {
	Depart       string     `json:"departVoyage"`
	Arrivee      string     `json:"arriveVoyage"`
	HeureDepart  string     `json:"heureDepart"`
	HeureArrivee string     `json:"heureArrivee"`
	Date         model.Date `json:"dateVoyage"`
	Prix         *float64   `json:"prix"`
}

// Create handles POST /voyage/create.
func (h *VoyageHandler) Create(c echo.Context) error {
	var req voyageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Depart) == "" || strings.TrimSpace(req.Arrivee) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departVoyage and arriveVoyage are required"})
	}
	if req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dateVoyage is required"})
	}

	v := model.Voyage{
		Depart:       strings.TrimSpace(req.Depart),
		Arrivee:      strings.TrimSpace(req.Arrivee),
		HeureDepart:  strings.TrimSpace(req.HeureDepart),
		HeureArrivee: strings.TrimSpace(req.HeureArrivee),
		DateVoyage:   req.Date,
	}
	if req.Prix != nil {
		if *req.Prix < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "prix must not be negative"})
		}
		v.Prix = *req.Prix
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Voyages.Create(ctx, &v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create voyage"})
	}
	return c.JSON(http.StatusCreated, v)
}

// GetAll handles GET /voyage and GET /voyage/getAll, most recent travel
// date first.
func (h *VoyageHandler) GetAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Voyages.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /voyage/get/:id.
func (h *VoyageHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	v, err := h.Voyages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVoyageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "voyage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, v)
}

// Update handles PUT /voyage/update/:id. The itinerary is replaced; the
// price keeps its stored value even when the body carries one.
func (h *VoyageHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req voyageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cur, err := h.Voyages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVoyageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "voyage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	upd := model.Voyage{
		ID:           id,
		Depart:       strings.TrimSpace(req.Depart),
		Arrivee:      strings.TrimSpace(req.Arrivee),
		HeureDepart:  strings.TrimSpace(req.HeureDepart),
		HeureArrivee: strings.TrimSpace(req.HeureArrivee),
		DateVoyage:   req.Date,
		Prix:         cur.Prix,
	}
	if err := h.Voyages.Update(ctx, &upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, upd)
}

// Delete handles DELETE /voyage/delete/:id and reports whether a row was
// removed. Reservations on the voyage and their payments go with it.
func (h *VoyageHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	deleted, err := h.Voyages.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, deleted)
}
