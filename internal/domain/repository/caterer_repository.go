package repository

import (
	"context"
	"errors"

	"lunchorder/internal/domain/entity"
)

// ErrCatererNotFound is returned when a caterer id does not exist.
var ErrCatererNotFound = errors.New("caterer not found")

// CatererRepository defines operations for the small, fixed caterer set.
type CatererRepository interface {
	// List returns all caterers ordered by name.
	List(ctx context.Context) ([]*entity.Caterer, error)

	// FindByID retrieves a single caterer.
	FindByID(ctx context.Context, id int64) (*entity.Caterer, error)
}
