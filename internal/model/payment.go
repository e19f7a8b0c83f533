package model

// Payment is a recorded payment transaction against a reservation,
// attributed to the agent who processed it. The code is supplied by the
// caller and acts as the primary key; uniqueness is enforced by the
// store. The reservation and agent links are immutable after creation.
type Payment struct {
	CodePaiement  string        `json:"codePaiement"`
	ReservationID uint64        `json:"reservationId"`
	AgentID       uint64        `json:"agentId"`
	Date          Date          `json:"datePaiement"`
	Montant       float64       `json:"montantPaiement"`
	Status        PaymentStatus `json:"status"`
	Method        string        `json:"method"`

	Reservation *Reservation `json:"reservation,omitempty"`
	Agent       *Agent       `json:"agent,omitempty"`
}
