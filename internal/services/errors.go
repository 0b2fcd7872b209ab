// Package services defines the business logic for the ticket queue and the
// service catalog. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Queue-related errors.
var (
	// ErrUnknownService is returned when a ticket references a service type
	// that does not exist in the catalog. No ticket is created and no
	// counter is mutated.
	ErrUnknownService = errors.New("unknown service type")

	// ErrNoPendingTickets is returned by CallNext when nothing is waiting.
	// It is an empty-queue signal, not a defect.
	ErrNoPendingTickets = errors.New("no pending tickets")

	// ErrEmptyHolder is returned when a ticket request carries no holder name.
	ErrEmptyHolder = errors.New("holder name is empty")

	// ErrNotCalled is returned when MarkAttended targets a ticket that is
	// not currently in the called state.
	ErrNotCalled = errors.New("ticket is not called")
)

// Catalog-related errors.
var (
	// ErrServiceExists is returned when adding a catalog entry whose name
	// is already taken.
	ErrServiceExists = errors.New("service already exists")

	// ErrEmptyServiceName is returned when a catalog operation receives a
	// blank service name.
	ErrEmptyServiceName = errors.New("service name is empty")
)
