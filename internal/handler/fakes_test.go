package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/madjo-travel/voyage-reservation/internal/model"
	"github.com/madjo-travel/voyage-reservation/internal/repository"
)

// newTestContext builds an echo context backed by httptest. A non-empty
// body is sent as JSON.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func setParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

type fakeClientStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Client
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{items: map[uint64]model.Client{}}
}

func (s *fakeClientStore) Create(_ context.Context, c *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	s.items[c.ID] = *c
	return nil
}

func (s *fakeClientStore) GetByID(_ context.Context, id uint64) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return model.Client{}, repository.ErrClientNotFound
	}
	return c, nil
}

func (s *fakeClientStore) GetByLogin(_ context.Context, login string) (model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.items {
		if c.Login == login {
			return c, nil
		}
	}
	return model.Client{}, repository.ErrClientNotFound
}

func (s *fakeClientStore) ListAll(_ context.Context) ([]model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Client, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeClientStore) Search(_ context.Context, f repository.ClientFilter) ([]model.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Client
	for _, c := range s.items {
		if f.Nom != "" && !strings.Contains(c.Nom, f.Nom) {
			continue
		}
		if f.Mail != "" && !strings.Contains(c.Mail, f.Mail) {
			continue
		}
		if f.Sexe != "" && c.Sexe != f.Sexe {
			continue
		}
		if f.Tel != "" && !strings.Contains(c.Tel, f.Tel) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeClientStore) Update(_ context.Context, c *model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = *c
	return nil
}

func (s *fakeClientStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type fakeAgentStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Agent
}

func newFakeAgentStore() *fakeAgentStore {
	return &fakeAgentStore{items: map[uint64]model.Agent{}}
}

func (s *fakeAgentStore) Create(_ context.Context, a *model.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	s.items[a.ID] = *a
	return nil
}

func (s *fakeAgentStore) GetByID(_ context.Context, id uint64) (model.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[id]
	if !ok {
		return model.Agent{}, repository.ErrAgentNotFound
	}
	return a, nil
}

func (s *fakeAgentStore) GetByMail(_ context.Context, mail string) (model.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mail = strings.ToLower(strings.TrimSpace(mail))
	for _, a := range s.items {
		if a.Mail == mail {
			return a, nil
		}
	}
	return model.Agent{}, repository.ErrAgentNotFound
}

func (s *fakeAgentStore) ListAll(_ context.Context) ([]model.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Agent, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeAgentStore) Update(_ context.Context, a *model.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[a.ID] = *a
	return nil
}

func (s *fakeAgentStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type fakeVoyageStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Voyage
}

func newFakeVoyageStore() *fakeVoyageStore {
	return &fakeVoyageStore{items: map[uint64]model.Voyage{}}
}

func (s *fakeVoyageStore) Create(_ context.Context, v *model.Voyage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	v.ID = s.nextID
	s.items[v.ID] = *v
	return nil
}

func (s *fakeVoyageStore) GetByID(_ context.Context, id uint64) (model.Voyage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		return model.Voyage{}, repository.ErrVoyageNotFound
	}
	return v, nil
}

func (s *fakeVoyageStore) ListAll(_ context.Context) ([]model.Voyage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Voyage, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateVoyage.After(out[j].DateVoyage.Time) })
	return out, nil
}

func (s *fakeVoyageStore) Update(_ context.Context, v *model.Voyage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[v.ID] = *v
	return nil
}

func (s *fakeVoyageStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type fakeTicketStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.TicketType
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{items: map[uint64]model.TicketType{}}
}

func (s *fakeTicketStore) Create(_ context.Context, t *model.TicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	s.items[t.ID] = *t
	return nil
}

func (s *fakeTicketStore) GetByID(_ context.Context, id uint64) (model.TicketType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	if !ok {
		return model.TicketType{}, repository.ErrTicketTypeNotFound
	}
	return t, nil
}

func (s *fakeTicketStore) ListAll(_ context.Context) ([]model.TicketType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TicketType, 0, len(s.items))
	for _, t := range s.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeTicketStore) Update(_ context.Context, t *model.TicketType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[t.ID] = *t
	return nil
}

func (s *fakeTicketStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type fakeReservationStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{items: map[uint64]model.Reservation{}}
}

func (s *fakeReservationStore) Create(_ context.Context, r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	s.items[r.ID] = *r
	return nil
}

func (s *fakeReservationStore) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return r, nil
}

func (s *fakeReservationStore) ListDetailed(_ context.Context) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeReservationStore) Update(_ context.Context, r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[r.ID] = *r
	return nil
}

func (s *fakeReservationStore) UpdateStatus(_ context.Context, id uint64, status model.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.Status = status
	s.items[id] = r
	return nil
}

func (s *fakeReservationStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type fakePaymentStore struct {
	mu    sync.Mutex
	items map[string]model.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{items: map[string]model.Payment{}}
}

func (s *fakePaymentStore) Create(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.CodePaiement]; ok {
		return repository.ErrPaymentExists
	}
	s.items[p.CodePaiement] = *p
	return nil
}

func (s *fakePaymentStore) GetByCode(_ context.Context, code string) (model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[code]
	if !ok {
		return model.Payment{}, repository.ErrPaymentNotFound
	}
	return p, nil
}

func (s *fakePaymentStore) ListAll(_ context.Context) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Payment, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodePaiement < out[j].CodePaiement })
	return out, nil
}

func (s *fakePaymentStore) Update(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.CodePaiement] = *p
	return nil
}

func (s *fakePaymentStore) Delete(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[code]; !ok {
		return false, nil
	}
	delete(s.items, code)
	return true, nil
}
