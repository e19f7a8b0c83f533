// Package repository implements persistence for the reservation domain
// on top of database/sql. Sentinel errors let handlers distinguish
// failure cases without inspecting driver errors: each entity has a
// not-found value, and ErrPaymentExists signals a duplicate caller-
// supplied payment code.
package repository

import "errors"

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrAgentNotFound       = errors.New("agent not found")
	ErrVoyageNotFound      = errors.New("voyage not found")
	ErrTicketTypeNotFound  = errors.New("ticket type not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	// ErrPaymentExists is returned when a payment is created with a code
	// that is already in use. Handlers translate this into HTTP 409.
	ErrPaymentExists = errors.New("payment code already exists")
)
