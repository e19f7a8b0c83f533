package model

// Voyage is a scheduled trip between two locations. Departure and
// arrival hours are stored as free text, matching the wire contract.
// There is no capacity field; reservations never decrement seats.
type Voyage struct {
	ID           uint64  `json:"idVoyage"`
	Depart       string  `json:"departVoyage"`
	Arrivee      string  `json:"arriveVoyage"`
	HeureDepart  string  `json:"heureDepart"`
	HeureArrivee string  `json:"heureArrivee"`
	DateVoyage   Date    `json:"dateVoyage"`
	Prix         float64 `json:"prix"`
}
