package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/madjo-travel/voyage-reservation/internal/model"
	"github.com/madjo-travel/voyage-reservation/internal/repository"
	"github.com/madjo-travel/voyage-reservation/internal/utils"
)

// AgentStore is the persistence surface the agent endpoints need.
// *repository.AgentRepo satisfies it.
type AgentStore interface {
	Create(ctx context.Context, a *model.Agent) error
	GetByID(ctx context.Context, id uint64) (model.Agent, error)
	GetByMail(ctx context.Context, mail string) (model.Agent, error)
	ListAll(ctx context.Context) ([]model.Agent, error)
	Update(ctx context.Context, a *model.Agent) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

// AgentHandler exposes agent CRUD plus login. Agents authenticate with
// their mail address since they carry no separate login field.
type AgentHandler struct {
	Agents     AgentStore
	BcryptCost int
}

func NewAgentHandler(store AgentStore, bcryptCost int) *AgentHandler {
	if store == nil {
		panic("nil store passed to NewAgentHandler")
	}
	return &AgentHandler{Agents: store, BcryptCost: bcryptCost}
}

type agentReq struct {
	Nom      string          `json:"nomAgent"`
	Prenom   string          `json:"prenomAgent"`
	Date     model.BirthDate `json:"dateNaiss"`
	Mail     string          `json:"mailAgent"`
	Tel      string          `json:"telAgent"`
	Sexe     string          `json:"sexeAgent"`
	Password string          `json:"password"`
}

type agentLoginReq struct {
	Mail     string `json:"mailAgent"`
	Password string `json:"password"`
}

// Create handles POST /agent/create.
func (h *AgentHandler) Create(c echo.Context) error {
	var req agentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Mail = strings.ToLower(strings.TrimSpace(req.Mail))
	if strings.TrimSpace(req.Nom) == "" || req.Mail == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nomAgent, mailAgent and password are required"})
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	a := model.Agent{
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		DateNaiss:    req.Date,
		Mail:         req.Mail,
		Tel:          strings.TrimSpace(req.Tel),
		Sexe:         strings.TrimSpace(req.Sexe),
		PasswordHash: hash,
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Agents.Create(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create agent"})
	}
	return c.JSON(http.StatusCreated, a)
}

// Login handles POST /agent/login. Unknown mail and wrong password
// produce the same 401.
func (h *AgentHandler) Login(c echo.Context) error {
	var req agentLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Mail) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mailAgent and password are required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	a, err := h.Agents.GetByMail(ctx, req.Mail)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return c.JSON(http.StatusOK, a)
}

// GetAll handles GET /agent and GET /agent/getAll, newest first.
func (h *AgentHandler) GetAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Agents.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /agent/get/:id.
func (h *AgentHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	a, err := h.Agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "agent not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, a)
}

// Update handles PUT /agent/update/:id. Profile fields are replaced; the
// stored password hash is carried through untouched.
func (h *AgentHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req agentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cur, err := h.Agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "agent not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	upd := model.Agent{
		ID:           id,
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		DateNaiss:    req.Date,
		Mail:         strings.ToLower(strings.TrimSpace(req.Mail)),
		Tel:          strings.TrimSpace(req.Tel),
		Sexe:         strings.TrimSpace(req.Sexe),
		PasswordHash: cur.PasswordHash,
	}
	if err := h.Agents.Update(ctx, &upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, upd)
}

// Delete handles DELETE /agent/delete/:id: 204 on removal, 404 when the
// agent does not exist. Payments registered by the agent are removed
// with it.
func (h *AgentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	deleted, err := h.Agents.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "agent not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
