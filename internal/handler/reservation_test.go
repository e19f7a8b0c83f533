package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/madjo-travel/voyage-reservation/internal/model"
	"github.com/madjo-travel/voyage-reservation/internal/queue"
)

// seedRefs creates one client, one voyage and one ticket type and
// returns a handler wired to fresh fakes.
func newReservationHandlerForTest(t *testing.T) (*ReservationHandler, *fakeReservationStore) {
	t.Helper()

	clients := newFakeClientStore()
	voyages := newFakeVoyageStore()
	tickets := newFakeTicketStore()
	reservations := newFakeReservationStore()

	if err := clients.Create(context.Background(), &model.Client{Nom: "Kodjo", Login: "kodjo"}); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	date, _ := model.ParseDate("2026-09-15")
	if err := voyages.Create(context.Background(), &model.Voyage{Depart: "Lomé", Arrivee: "Kara", DateVoyage: date, Prix: 5000}); err != nil {
		t.Fatalf("seed voyage: %v", err)
	}
	if err := tickets.Create(context.Background(), &model.TicketType{Libelle: "VIP", Prix: 7500}); err != nil {
		t.Fatalf("seed ticket type: %v", err)
	}

	return NewReservationHandler(reservations, clients, voyages, tickets), reservations
}

func TestReservationCreateDefaultsToPending(t *testing.T) {
	h, _ := newReservationHandlerForTest(t)

	body := `{"clientId":1,"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":2,"dateReservation":"2026-09-01"}`
	c, rec := newTestContext(http.MethodPost, "/reservation/create", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	var got model.Reservation
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != model.ReservationPending {
		t.Errorf("status = %q, want PENDING", got.Status)
	}
	if got.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestReservationCreateRejectsMissingFields(t *testing.T) {
	h, _ := newReservationHandlerForTest(t)

	cases := []struct {
		name string
		body string
	}{
		{"no clientId", `{"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":1,"dateReservation":"2026-09-01"}`},
		{"no voyageId", `{"clientId":1,"typeBilletId":1,"nombrePlacesReservees":1,"dateReservation":"2026-09-01"}`},
		{"no typeBilletId", `{"clientId":1,"voyageId":1,"nombrePlacesReservees":1,"dateReservation":"2026-09-01"}`},
		{"no date", `{"clientId":1,"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":1}`},
		{"zero places", `{"clientId":1,"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":0,"dateReservation":"2026-09-01"}`},
		{"bad status", `{"clientId":1,"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":1,"dateReservation":"2026-09-01","status":"MAYBE"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/reservation/create", tc.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReservationCreateRejectsUnknownReferences(t *testing.T) {
	h, _ := newReservationHandlerForTest(t)

	cases := []struct {
		name string
		body string
	}{
		{"unknown client", `{"clientId":99,"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":1,"dateReservation":"2026-09-01"}`},
		{"unknown voyage", `{"clientId":1,"voyageId":99,"typeBilletId":1,"nombrePlacesReservees":1,"dateReservation":"2026-09-01"}`},
		{"unknown ticket type", `{"clientId":1,"voyageId":1,"typeBilletId":99,"nombrePlacesReservees":1,"dateReservation":"2026-09-01"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/reservation/create", tc.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReservationUpdateRequiresID(t *testing.T) {
	h, _ := newReservationHandlerForTest(t)

	body := `{"clientId":1,"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":1,"dateReservation":"2026-09-01","status":"PENDING"}`
	c, rec := newTestContext(http.MethodPut, "/reservation/update", body)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func seedReservation(t *testing.T, store *fakeReservationStore, status model.ReservationStatus) uint64 {
	t.Helper()
	date, _ := model.ParseDate("2026-09-01")
	r := model.Reservation{ClientID: 1, VoyageID: 1, TypeBilletID: 1, Places: 2, Date: date, Status: status}
	if err := store.Create(context.Background(), &r); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return r.ID
}

func TestReservationStatusTransitions(t *testing.T) {
	cases := []struct {
		name     string
		from     model.ReservationStatus
		to       string
		wantCode int
	}{
		{"pending to confirmed", model.ReservationPending, "CONFIRMED", http.StatusOK},
		{"pending to cancelled", model.ReservationPending, "CANCELLED", http.StatusOK},
		{"confirmed to cancelled", model.ReservationConfirmed, "CANCELLED", http.StatusOK},
		{"confirmed to pending", model.ReservationConfirmed, "PENDING", http.StatusConflict},
		{"cancelled to confirmed", model.ReservationCancelled, "CONFIRMED", http.StatusConflict},
		{"cancelled to pending", model.ReservationCancelled, "PENDING", http.StatusConflict},
		{"same state no-op", model.ReservationConfirmed, "CONFIRMED", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, store := newReservationHandlerForTest(t)
			id := seedReservation(t, store, tc.from)

			c, rec := newTestContext(http.MethodPut, "/reservation/1/status", `{"status":"`+tc.to+`"}`)
			setParam(c, "id", "1")
			if err := h.UpdateStatus(c); err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tc.wantCode, rec.Body.String())
			}

			stored, err := store.GetByID(context.Background(), id)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			want := tc.from
			if tc.wantCode == http.StatusOK {
				want = model.ReservationStatus(tc.to)
			}
			if stored.Status != want {
				t.Errorf("stored status = %q, want %q", stored.Status, want)
			}
		})
	}
}

func TestReservationUpdateStatusRejectsBlankBeforeStore(t *testing.T) {
	h, store := newReservationHandlerForTest(t)
	seedReservation(t, store, model.ReservationPending)

	c, rec := newTestContext(http.MethodPut, "/reservation/1/status", `{"status":"  "}`)
	setParam(c, "id", "1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}

	stored, _ := store.GetByID(context.Background(), 1)
	if stored.Status != model.ReservationPending {
		t.Errorf("stored status changed to %q", stored.Status)
	}
}

func TestReservationUpdateStatusUnknownID(t *testing.T) {
	h, _ := newReservationHandlerForTest(t)

	c, rec := newTestContext(http.MethodPut, "/reservation/42/status", `{"status":"CONFIRMED"}`)
	setParam(c, "id", "42")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
}

func TestReservationConfirmationPublishesEvent(t *testing.T) {
	h, store := newReservationHandlerForTest(t)
	seedReservation(t, store, model.ReservationPending)

	events := make(chan queue.ReservationConfirmedEvent, 1)
	h.Publish = func(_ context.Context, ev queue.ReservationConfirmedEvent) error {
		events <- ev
		return nil
	}

	c, rec := newTestContext(http.MethodPut, "/reservation/1/status", `{"status":"CONFIRMED"}`)
	setParam(c, "id", "1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	select {
	case ev := <-events:
		if ev.ReservationID != 1 {
			t.Errorf("event reservation id = %d, want 1", ev.ReservationID)
		}
		if ev.Depart != "Lomé" || ev.Arrivee != "Kara" {
			t.Errorf("event itinerary = %q -> %q", ev.Depart, ev.Arrivee)
		}
		if want := 7500 * 2.0; ev.Montant != want {
			t.Errorf("event montant = %v, want %v", ev.Montant, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no confirmation event published")
	}
}

func TestReservationConfirmingTwicePublishesOnce(t *testing.T) {
	h, store := newReservationHandlerForTest(t)
	seedReservation(t, store, model.ReservationPending)

	events := make(chan queue.ReservationConfirmedEvent, 2)
	h.Publish = func(_ context.Context, ev queue.ReservationConfirmedEvent) error {
		events <- ev
		return nil
	}

	for i := 0; i < 2; i++ {
		c, rec := newTestContext(http.MethodPut, "/reservation/1/status", `{"status":"CONFIRMED"}`)
		setParam(c, "id", "1")
		if err := h.UpdateStatus(c); err != nil {
			t.Fatalf("UpdateStatus #%d: %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("UpdateStatus #%d status = %d", i+1, rec.Code)
		}
	}

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("no confirmation event published")
	}
	select {
	case <-events:
		t.Error("second confirmation republished the event")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestReservationDeleteReportsBool(t *testing.T) {
	h, store := newReservationHandlerForTest(t)
	seedReservation(t, store, model.ReservationPending)

	c, rec := newTestContext(http.MethodDelete, "/reservation/delete/1", "")
	setParam(c, "id", "1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "true\n" {
		t.Errorf("first delete = %d %q, want 200 true", rec.Code, rec.Body.String())
	}

	c, rec = newTestContext(http.MethodDelete, "/reservation/delete/1", "")
	setParam(c, "id", "1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "false\n" {
		t.Errorf("second delete = %d %q, want 200 false", rec.Code, rec.Body.String())
	}
}

func TestReservationGetUnknownIs404(t *testing.T) {
	h, _ := newReservationHandlerForTest(t)

	c, rec := newTestContext(http.MethodGet, "/reservation/get/7", "")
	setParam(c, "id", "7")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// Full lifecycle: create pending, confirm, cancel, delete.
func TestReservationLifecycle(t *testing.T) {
	h, store := newReservationHandlerForTest(t)

	body := `{"clientId":1,"voyageId":1,"typeBilletId":1,"nombrePlacesReservees":3,"dateReservation":"2026-09-10"}`
	c, rec := newTestContext(http.MethodPost, "/reservation/create", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body %s", rec.Code, rec.Body.String())
	}

	for _, next := range []string{"CONFIRMED", "CANCELLED"} {
		c, rec = newTestContext(http.MethodPut, "/reservation/1/status", `{"status":"`+next+`"}`)
		setParam(c, "id", "1")
		if err := h.UpdateStatus(c); err != nil {
			t.Fatalf("UpdateStatus(%s): %v", next, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("UpdateStatus(%s) = %d; body %s", next, rec.Code, rec.Body.String())
		}
	}

	stored, _ := store.GetByID(context.Background(), 1)
	if stored.Status != model.ReservationCancelled {
		t.Fatalf("final status = %q, want CANCELLED", stored.Status)
	}

	c, rec = newTestContext(http.MethodDelete, "/reservation/delete/1", "")
	setParam(c, "id", "1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "true\n" {
		t.Fatalf("delete = %d %q", rec.Code, rec.Body.String())
	}
}
