// Package services – CatalogService
//
// This file implements CatalogService, which manages the service catalog
// customers request tickets against. Catalog entries are created and removed
// by explicit admin operations; their request counters are mutated only by
// the queue engine at issuance time.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-turnero-backend/internal/domain"
	"github.com/tbourn/go-turnero-backend/internal/repo"
)

// CatalogService provides admin operations over the service catalog.
type CatalogService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// Add creates a new catalog entry. It returns ErrServiceExists when the
// name is already taken and ErrEmptyServiceName for blank input.
func (s *CatalogService) Add(ctx context.Context, name string) (*domain.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyServiceName
	}

	if _, err := repo.GetServiceByName(ctx, s.DB, name); err == nil {
		return nil, ErrServiceExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	return repo.CreateService(ctx, s.DB, name)
}

// List returns all catalog entries ordered by name.
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	return repo.ListServices(ctx, s.DB)
}

// Remove deletes the named catalog entry. It returns false when the service
// does not exist; existing tickets issued against the name keep it.
func (s *CatalogService) Remove(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyServiceName
	}

	err := repo.DeleteService(ctx, s.DB, name)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
