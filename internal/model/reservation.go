package model

// Reservation is a client's booking of seats on a voyage at a given
// ticket type. A reservation cannot exist without its client, voyage
// and ticket type rows; deleting any of those parents removes the
// reservation, and deleting a reservation removes its payments.
//
// The nested Client/Voyage/TypeBillet projections are populated only by
// the denormalized listing query so a single call carries everything a
// consumer needs; elsewhere they stay nil and are omitted from JSON.
type Reservation struct {
	ID           uint64            `json:"idReservation"`
	ClientID     uint64            `json:"clientId"`
	VoyageID     uint64            `json:"voyageId"`
	TypeBilletID uint64            `json:"typeBilletId"`
	Places       int               `json:"nombrePlacesReservees"`
	Date         Date              `json:"dateReservation"`
	Status       ReservationStatus `json:"status"`

	Client     *Client     `json:"client,omitempty"`
	Voyage     *Voyage     `json:"voyage,omitempty"`
	TypeBillet *TicketType `json:"typeBillet,omitempty"`
}
