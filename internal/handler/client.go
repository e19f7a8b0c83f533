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

// ClientStore is the persistence surface the client endpoints need.
// *repository.ClientRepo satisfies it.
type ClientStore interface {
	Create(ctx context.Context, cl *model.Client) error
	GetByID(ctx context.Context, id uint64) (model.Client, error)
	GetByLogin(ctx context.Context, login string) (model.Client, error)
	ListAll(ctx context.Context) ([]model.Client, error)
	Search(ctx context.Context, f repository.ClientFilter) ([]model.Client, error)
	Update(ctx context.Context, cl *model.Client) error
	Delete(ctx context.Context, id uint64) (bool, error)
}

// ClientHandler exposes client CRUD plus login. Passwords are stored as
// bcrypt hashes; update never touches the stored credentials even when
// the request carries new ones.
type ClientHandler struct {
	Clients    ClientStore
	BcryptCost int
}

func NewClientHandler(store ClientStore, bcryptCost int) *ClientHandler {
	if store == nil {
		panic("nil store passed to NewClientHandler")
	}
	return &ClientHandler{Clients: store, BcryptCost: bcryptCost}
}

type clientReq struct {
	Nom      string     `json:"nomClient"`
	Prenom   string     `json:"prenomClient"`
	Date     model.Date `json:"dateNaiss"`
	Mail     string     `json:"mailClient"`
	Tel      string     `json:"telClient"`
	Sexe     string     `json:"sexeClient"`
	Login    string     `json:"login"`
	Password string     `json:"password"`
}

type loginReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Create handles POST /client/create.
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Login = strings.TrimSpace(req.Login)
	if strings.TrimSpace(req.Nom) == "" || req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nomClient, login and password are required"})
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	cl := model.Client{
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		DateNaiss:    req.Date,
		Mail:         strings.ToLower(strings.TrimSpace(req.Mail)),
		Tel:          strings.TrimSpace(req.Tel),
		Sexe:         strings.TrimSpace(req.Sexe),
		Login:        req.Login,
		PasswordHash: hash,
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Clients.Create(ctx, &cl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create client"})
	}
	return c.JSON(http.StatusCreated, cl)
}

// Login handles POST /client/login: exact login lookup plus bcrypt
// verification. Both failure modes collapse into the same 401 so the
// response does not reveal which part was wrong.
func (h *ClientHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Login) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login and password are required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cl, err := h.Clients.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !utils.VerifyPassword(cl.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return c.JSON(http.StatusOK, cl)
}

// GetAll handles GET /client and GET /client/getAll, newest first.
func (h *ClientHandler) GetAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Clients.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /client/get/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	cl, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cl)
}

// Update handles PUT /client/update/:id. The profile fields are replaced
// wholesale; the stored login and password hash are carried through
// regardless of what the request body contains.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cur, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	upd := model.Client{
		ID:           id,
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		DateNaiss:    req.Date,
		Mail:         strings.ToLower(strings.TrimSpace(req.Mail)),
		Tel:          strings.TrimSpace(req.Tel),
		Sexe:         strings.TrimSpace(req.Sexe),
		Login:        cur.Login,
		PasswordHash: cur.PasswordHash,
	}
	if err := h.Clients.Update(ctx, &upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, upd)
}

// Search handles PUT /client/search with partial criteria in the body.
func (h *ClientHandler) Search(c echo.Context) error {
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Clients.Search(ctx, repository.ClientFilter{
		Nom:  strings.TrimSpace(req.Nom),
		Mail: strings.TrimSpace(req.Mail),
		Sexe: strings.TrimSpace(req.Sexe),
		Tel:  strings.TrimSpace(req.Tel),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Delete handles DELETE /client/delete/:id: 204 on removal, 404 when the
// client does not exist. Reservations and their payments go with it.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	deleted, err := h.Clients.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
