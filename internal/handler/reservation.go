package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/madjo-travel/voyage-reservation/internal/model"
	"github.com/madjo-travel/voyage-reservation/internal/queue"
	"github.com/madjo-travel/voyage-reservation/internal/repository"
)

// ReservationStore is the persistence surface the reservation workflow
// needs. *repository.ReservationRepo satisfies it.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	ListDetailed(ctx context.Context) ([]model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) error
	UpdateStatus(ctx context.Context, id uint64, status model.ReservationStatus) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

// ReservationHandler enforces the reservation lifecycle: referential
// preconditions on create/update, the PENDING default, and the closed
// status transition rules.
type ReservationHandler struct {
	Reservations ReservationStore
	Clients      ClientResolver
	Voyages      VoyageResolver
	TicketTypes  TicketTypeResolver

	// Publish, when set, is invoked after a reservation reaches
	// CONFIRMED. Failures are logged by the publisher and ignored here;
	// confirmation events are best effort.
	Publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

func NewReservationHandler(res ReservationStore, cl ClientResolver, vo VoyageResolver, tt TicketTypeResolver) *ReservationHandler {
	if res == nil || cl == nil || vo == nil || tt == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: res, Clients: cl, Voyages: vo, TicketTypes: tt}
}

type reservationReq struct {
	ID           *uint64    `json:"idReservation"`
	ClientID     *uint64    `json:"clientId"`
	VoyageID     *uint64    `json:"voyageId"`
	TypeBilletID *uint64    `json:"typeBilletId"`
	Places       *int       `json:"nombrePlacesReservees"`
	Date         model.Date `json:"dateReservation"`
	Status       string     `json:"status"`
}

// resolveRefs verifies that the three referenced entities exist. The
// returned echo error is a ready-to-send 400 or 500 response; nil means
// all references resolved.
func (h *ReservationHandler) resolveRefs(ctx context.Context, c echo.Context, clientID, voyageID, typeBilletID uint64) error {
	if _, err := h.Clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "client not found", "clientId": clientID})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if _, err := h.Voyages.GetByID(ctx, voyageID); err != nil {
		if errors.Is(err, repository.ErrVoyageNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "voyage not found", "voyageId": voyageID})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if _, err := h.TicketTypes.GetByID(ctx, typeBilletID); err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket type not found", "typeBilletId": typeBilletID})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return nil
}

// Create handles POST /reservation/create. The client, voyage and ticket
// type must all exist before anything is written; the status defaults to
// PENDING when absent. No seat-capacity check is performed.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ClientID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "clientId is required"})
	}
	if req.VoyageID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "voyageId is required"})
	}
	if req.TypeBilletID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "typeBilletId is required"})
	}
	if req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dateReservation is required"})
	}
	if req.Places == nil || *req.Places <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombrePlacesReservees must be greater than zero"})
	}

	status := model.ReservationPending
	if strings.TrimSpace(req.Status) != "" {
		parsed, err := model.ParseReservationStatus(req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		status = parsed
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if errResp := h.resolveRefs(ctx, c, *req.ClientID, *req.VoyageID, *req.TypeBilletID); errResp != nil {
		return errResp
	}

	res := model.Reservation{
		ClientID:     *req.ClientID,
		VoyageID:     *req.VoyageID,
		TypeBilletID: *req.TypeBilletID,
		Places:       *req.Places,
		Date:         req.Date,
		Status:       status,
	}
	if err := h.Reservations.Create(ctx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}
	return c.JSON(http.StatusCreated, res)
}

// Get handles GET /reservation/get/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, res)
}

// All handles GET /reservation/all. Every reservation carries its
// resolved client, voyage and ticket type so callers avoid follow-up
// lookups per row.
func (h *ReservationHandler) All(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Reservations.ListDetailed(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Update handles PUT /reservation/update: a wholesale replacement of
// date, references, seat count and status. The reservation must exist
// and every reference must resolve; the status change must be a legal
// transition from the stored status.
func (h *ReservationHandler) Update(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "idReservation is required"})
	}
	if req.ClientID == nil || req.VoyageID == nil || req.TypeBilletID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "clientId, voyageId and typeBilletId are required"})
	}
	if req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dateReservation is required"})
	}
	if req.Places == nil || *req.Places <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombrePlacesReservees must be greater than zero"})
	}
	status, err := model.ParseReservationStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cur, err := h.Reservations.GetByID(ctx, *req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !cur.Status.CanTransition(status) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition", "from": cur.Status, "to": status})
	}
	if errResp := h.resolveRefs(ctx, c, *req.ClientID, *req.VoyageID, *req.TypeBilletID); errResp != nil {
		return errResp
	}

	upd := model.Reservation{
		ID:           *req.ID,
		ClientID:     *req.ClientID,
		VoyageID:     *req.VoyageID,
		TypeBilletID: *req.TypeBilletID,
		Places:       *req.Places,
		Date:         req.Date,
		Status:       status,
	}
	if err := h.Reservations.Update(ctx, &upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if status == model.ReservationConfirmed && cur.Status != model.ReservationConfirmed {
		h.publishConfirmed(upd)
	}
	return c.JSON(http.StatusOK, upd)
}

// UpdateStatus handles PUT /reservation/:id/status, the single partial
// update in the model. A blank status is rejected before any store call.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Status) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must not be empty"})
	}
	status, err := model.ParseReservationStatus(body.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !res.Status.CanTransition(status) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition", "from": res.Status, "to": status})
	}
	if err := h.Reservations.UpdateStatus(ctx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	prev := res.Status
	res.Status = status
	if status == model.ReservationConfirmed && prev != model.ReservationConfirmed {
		h.publishConfirmed(res)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /reservation/delete/:id and reports a boolean
// outcome: absence is a negative result, not an error. Payments attached
// to the reservation are removed with it.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	deleted, err := h.Reservations.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, deleted)
}

// publishConfirmed emits a confirmation event in the background. The
// voyage and ticket type are re-read to enrich the payload; any failure
// along the way drops the event silently.
func (h *ReservationHandler) publishConfirmed(res model.Reservation) {
	if h.Publish == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			ClientID:      res.ClientID,
			VoyageID:      res.VoyageID,
			Places:        res.Places,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if v, err := h.Voyages.GetByID(ctx, res.VoyageID); err == nil {
			ev.Depart = v.Depart
			ev.Arrivee = v.Arrivee
			ev.DateVoyage = v.DateVoyage.String()
		}
		if t, err := h.TicketTypes.GetByID(ctx, res.TypeBilletID); err == nil {
			ev.Montant = t.Prix * float64(res.Places)
		}
		_ = h.Publish(ctx, ev)
	}()
}
