package model

// TicketType is a fare class (e.g. Economy) with its own price, chosen
// per reservation.
type TicketType struct {
	ID      uint64  `json:"idTypeBillet"`
	Libelle string  `json:"libelleTypeBillet"`
	Prix    float64 `json:"prixTypeBillet"`
}
