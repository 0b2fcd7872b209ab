// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Ticket model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Serializing the read-then-write queue
// operations is the responsibility of services.QueueService; these functions
// only guarantee that each individual statement is consistent.
//
// Error semantics:
//   - When a ticket is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Ordering:
//
// Every queue-order query sorts by the monotonic seq column assigned at
// issuance. CreatedAt is stored for display but never used for ordering,
// so two tickets created in the same clock instant still have a total order.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-turnero-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// LastTicket returns the most recently issued ticket (highest seq),
// regardless of state. It returns ErrNotFound when no tickets exist.
func LastTicket(ctx context.Context, db *gorm.DB) (*domain.Ticket, error) {
	var t domain.Ticket
	err := db.WithContext(ctx).
		Order("seq desc").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTicket inserts a new Pending ticket with the given number, sequence
// slot, holder, and service type. The ticket ID is a randomly generated UUID
// and CreatedAt is set to UTC.
//
// Callers that also mutate the service counter must run both writes inside
// the same transaction handle.
func CreateTicket(ctx context.Context, db *gorm.DB, number string, seq uint64, holderName, serviceType string) (*domain.Ticket, error) {
	t := &domain.Ticket{
		ID:          uuid.NewString(),
		Number:      number,
		Seq:         seq,
		HolderName:  holderName,
		ServiceType: serviceType,
		State:       domain.StatePending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTicketByNumber fetches a single ticket by its public number.
// It returns ErrNotFound if the number was never issued.
func GetTicketByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Ticket, error) {
	var t domain.Ticket
	err := db.WithContext(ctx).
		Where("number = ?", number).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FirstPending returns the pending ticket with the lowest seq (the head of
// the queue), or ErrNotFound when nothing is pending.
func FirstPending(ctx context.Context, db *gorm.DB) (*domain.Ticket, error) {
	var t domain.Ticket
	err := db.WithContext(ctx).
		Where("state = ?", domain.StatePending).
		Order("seq asc").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListPending returns up to limit pending tickets ordered by seq ascending
// (earliest first). It returns an empty slice when nothing is pending.
func ListPending(ctx context.Context, db *gorm.DB, limit int) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := db.WithContext(ctx).
		Where("state = ?", domain.StatePending).
		Order("seq asc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateTicketState sets the state of the ticket identified by number.
// If no rows are affected (number never issued), it returns ErrNotFound.
// On DB error, the raw error is returned.
func UpdateTicketState(ctx context.Context, db *gorm.DB, number, state string) error {
	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("number = ?", number).
		Update("state", state)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateTicketStateFrom sets the ticket's state only when it currently
// equals from, in a single conditional UPDATE. It returns ErrNotFound when
// the number was never issued or the ticket has since left from, so a
// terminal state can never be overwritten through this path.
func UpdateTicketStateFrom(ctx context.Context, db *gorm.DB, number, from, to string) error {
	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("number = ? AND state = ?", number, from).
		Update("state", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountTicketsByState returns the number of tickets currently in state.
func CountTicketsByState(ctx context.Context, db *gorm.DB, state string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("state = ?", state).
		Count(&total).Error
	return total, err
}

// DeleteAllTickets removes every ticket row. Used by the admin queue reset;
// numbering restarts at the beginning afterwards because LastTicket no longer
// sees any rows. History rows are intentionally left untouched.
func DeleteAllTickets(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.Ticket{}).Error
}
