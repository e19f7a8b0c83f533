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

// PaymentStore is the persistence surface the payment workflow needs.
// *repository.PaymentRepo satisfies it.
type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByCode(ctx context.Context, code string) (model.Payment, error)
	ListAll(ctx context.Context) ([]model.Payment, error)
	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, code string) (bool, error)
}

// ReservationResolver loads a reservation by id; used to verify payment
// references.
type ReservationResolver interface {
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
}

// PaymentHandler enforces the payment workflow: both links mandatory at
// creation and immutable afterwards, status and method defaulted when
// omitted.
type PaymentHandler struct {
	Payments     PaymentStore
	Reservations ReservationResolver
	Agents       AgentResolver
}

func NewPaymentHandler(p PaymentStore, r ReservationResolver, a AgentResolver) *PaymentHandler {
	if p == nil || r == nil || a == nil {
		panic("nil store passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: p, Reservations: r, Agents: a}
}

type paymentReq struct {
	CodePaiement  string     `json:"codePaiement"`
	ReservationID *uint64    `json:"reservationId"`
	AgentID       *uint64    `json:"agentId"`
	Date          model.Date `json:"datePaiement"`
	Montant       *float64   `json:"montantPaiement"`
	Status        string     `json:"status"`
	Method        string     `json:"method"`
}

// Create handles POST /paiement/create. A missing agent or reservation
// reference is an input defect (400), distinct from a reference that
// does not resolve, which is also rejected before any write, naming the
// offending id. Status and method fall back to their defaults.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.CodePaiement) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "codePaiement is required"})
	}
	if req.AgentID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "agent information is missing for payment"})
	}
	if req.ReservationID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation information is missing for payment"})
	}
	if req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "datePaiement is required"})
	}
	if req.Montant == nil || *req.Montant <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "montantPaiement must be greater than zero"})
	}

	status := model.PaymentPaid
	if strings.TrimSpace(req.Status) != "" {
		parsed, err := model.ParsePaymentStatus(req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		status = parsed
	}
	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = model.DefaultPaymentMethod
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Agents.GetByID(ctx, *req.AgentID); err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "agent not found", "agentId": *req.AgentID})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if _, err := h.Reservations.GetByID(ctx, *req.ReservationID); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation not found", "reservationId": *req.ReservationID})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p := model.Payment{
		CodePaiement:  strings.TrimSpace(req.CodePaiement),
		ReservationID: *req.ReservationID,
		AgentID:       *req.AgentID,
		Date:          req.Date,
		Montant:       *req.Montant,
		Status:        status,
		Method:        method,
	}
	if err := h.Payments.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrPaymentExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "payment code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create payment"})
	}
	return c.JSON(http.StatusCreated, p)
}

// Get handles GET /paiement/get/:code.
func (h *PaymentHandler) Get(c echo.Context) error {
	code := c.Param("code")
	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Payments.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found", "codePaiement": code})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// GetAll handles GET /paiement and GET /paiement/getAll.
func (h *PaymentHandler) GetAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Payments.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Update handles PUT /paiement/update/:code. Only date, amount, status
// and method are replaced; the agent and reservation links stay as
// created even when the body carries different ids.
func (h *PaymentHandler) Update(c echo.Context) error {
	code := c.Param("code")
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "datePaiement is required"})
	}
	if req.Montant == nil || *req.Montant <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "montantPaiement must be greater than zero"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Payments.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found", "codePaiement": code})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p.Date = req.Date
	p.Montant = *req.Montant
	if strings.TrimSpace(req.Status) != "" {
		status, err := model.ParsePaymentStatus(req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		p.Status = status
	}
	if m := strings.TrimSpace(req.Method); m != "" {
		p.Method = m
	}
	if err := h.Payments.Update(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /paiement/delete/:code: 204 on removal, 404 when
// the code does not exist.
func (h *PaymentHandler) Delete(c echo.Context) error {
	code := c.Param("code")
	ctx, cancel := reqContext(c)
	defer cancel()

	deleted, err := h.Payments.Delete(ctx, code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found", "codePaiement": code})
	}
	return c.NoContent(http.StatusNoContent)
}
