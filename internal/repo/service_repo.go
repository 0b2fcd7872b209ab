// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Service
// catalog model.
//
// The request counter is only ever incremented inside the same transaction
// as the ticket insert it accounts for (see services.QueueService.Issue),
// so the increment here is expressed as a single relative UPDATE rather
// than a read-modify-write.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-turnero-backend/internal/domain"
)

// CreateService inserts a new catalog entry with a zero request counter.
// The unique index on name rejects duplicates with a gorm error.
func CreateService(ctx context.Context, db *gorm.DB, name string) (*domain.Service, error) {
	s := &domain.Service{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetServiceByName fetches a catalog entry by its unique name, or
// ErrNotFound when no such service exists.
func GetServiceByName(ctx context.Context, db *gorm.DB, name string) (*domain.Service, error) {
	var s domain.Service
	err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListServices returns all catalog entries ordered by name ascending.
func ListServices(ctx context.Context, db *gorm.DB) ([]domain.Service, error) {
	var out []domain.Service
	err := db.WithContext(ctx).
		Order("name asc").
		Find(&out).Error
	return out, err
}

// IncrementRequestCount adds one to the request counter of the named
// service. If no rows are affected (service missing), it returns
// ErrNotFound.
func IncrementRequestCount(ctx context.Context, db *gorm.DB, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.Service{}).
		Where("name = ?", name).
		UpdateColumn("request_count", gorm.Expr("request_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteService removes the named catalog entry. If no rows are affected,
// it returns ErrNotFound.
func DeleteService(ctx context.Context, db *gorm.DB, name string) error {
	res := db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&domain.Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
