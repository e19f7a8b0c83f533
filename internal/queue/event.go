// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// ReservationConfirmedEvent is published when a reservation transitions
// to CONFIRMED. It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	ClientID      uint64  `json:"client_id"`
	VoyageID      uint64  `json:"voyage_id"`
	Depart        string  `json:"depart"`
	Arrivee       string  `json:"arrivee"`
	DateVoyage    string  `json:"date_voyage"`
	Places        int     `json:"nombre_places"`
	Montant       float64 `json:"montant"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
