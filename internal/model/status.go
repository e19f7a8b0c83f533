package model

import "fmt"

// ReservationStatus is the lifecycle state of a reservation. The set is
// closed; free-form strings are rejected at the boundary.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// ParseReservationStatus validates a wire value against the closed set.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return ReservationStatus(s), nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// CanTransition reports whether a reservation may move from s to next.
// Writing the current status back is always allowed. CANCELLED is terminal.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCancelled
	}
	return false
}

// PaymentStatus is the lifecycle state of a recorded payment.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Payée"
	PaymentRefunded PaymentStatus = "Remboursée"
	PaymentFailed   PaymentStatus = "Échouée"
)

// DefaultPaymentMethod is used when the caller omits the method field.
const DefaultPaymentMethod = "Carte bancaire"

// ParsePaymentStatus validates a wire value against the closed set.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPaid, PaymentRefunded, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}
