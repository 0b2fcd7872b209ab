// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the append-only history log written
// after committed ticket state transitions.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-turnero-backend/internal/domain"
)

// AppendHistory inserts one TicketHistory row recording that the ticket
// entered state at the given time. Rows are write-once; there are no update
// or delete helpers on purpose.
func AppendHistory(ctx context.Context, db *gorm.DB, ticketNumber, state string, at time.Time) (*domain.TicketHistory, error) {
	h := &domain.TicketHistory{
		ID:           uuid.NewString(),
		TicketNumber: ticketNumber,
		State:        state,
		RecordedAt:   at.UTC(),
	}
	if err := db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, err
	}
	return h, nil
}

// ListHistory returns the transition log for one ticket number, oldest
// first. Useful for support queries; the engine itself never reads history.
func ListHistory(ctx context.Context, db *gorm.DB, ticketNumber string) ([]domain.TicketHistory, error) {
	var out []domain.TicketHistory
	err := db.WithContext(ctx).
		Where("ticket_number = ?", ticketNumber).
		Order("recorded_at asc").
		Find(&out).Error
	return out, err
}
