// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries feeding the
// statistics endpoint and the display ETag in the HTTP layer. Each function
// is context-aware and safe to call from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-turnero-backend/internal/domain"
)

// ServiceRequestCount pairs a catalog service name with its lifetime
// ticket-request counter.
type ServiceRequestCount struct {
	Name     string `json:"name"`
	Requests int64  `json:"requests"`
}

// ServiceRequestCounts returns the per-service request counters ordered by
// most requested first (ties by name for a stable order).
func ServiceRequestCounts(ctx context.Context, db *gorm.DB) ([]ServiceRequestCount, error) {
	var out []ServiceRequestCount
	err := db.WithContext(ctx).
		Model(&domain.Service{}).
		Select("name, request_count as requests").
		Order("request_count desc, name asc").
		Scan(&out).Error
	return out, err
}

// QueueStats returns aggregate metadata for the ticket queue: the total
// number of rows and the maximum UpdatedAt timestamp among them.
//
// When the queue is empty, the returned count is 0 and maxUpdatedAt is nil.
// Used for weak ETags on the upcoming-list endpoint so idle displays can
// poll cheaply.
//
// Return values:
//   - count:        total tickets
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func QueueStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Ticket{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
