// Package repositories defines the persistence contracts the service layer
// depends on. Postgres, Mongo and in-memory implementations live in
// subpackages and are selected once at process start.
package repositories

import (
	"context"

	"github.com/okamel/cvbank/internal/models"
)

type CVRepository interface {
	// ListAll returns up to limit records ordered by upload_date descending.
	ListAll(ctx context.Context, limit int) ([]models.CV, error)
	ListByNationality(ctx context.Context, nationality string, limit int) ([]models.CV, error)
	// GetByID returns utils.ErrNotFound for unknown and malformed ids alike.
	GetByID(ctx context.Context, id string) (*models.CV, error)
	Create(ctx context.Context, cv *models.CV) error
	// Update applies only the fields set in upd and returns the stored record.
	Update(ctx context.Context, id string, upd models.CVUpdate) (*models.CV, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
