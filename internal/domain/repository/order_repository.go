package repository

import (
	"context"
	"errors"
	"time"

	"lunchorder/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order id does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows admin order listings and exports.
type OrderFilter struct {
	ISOYear   int
	ISOWeek   int
	DayOfWeek int             // 0 = all weekdays
	Search    string          // case-insensitive substring over first/last name
	Location  entity.Location // empty = all locations
}

// MenuNumberCount is one row of the per-day order summary.
type MenuNumberCount struct {
	MenuNumber int
	Count      int64
}

// OrderRepository defines operations for orders.
type OrderRepository interface {
	// FindByID retrieves a single order joined with its menu.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)

	// FindByUserAndWeek returns the user's orders for one ISO week.
	FindByUserAndWeek(ctx context.Context, userID uuid.UUID, isoYear, isoWeek int) ([]*entity.Order, error)

	// FindByUserAndMenu returns the user's order for one menu, or ErrOrderNotFound.
	FindByUserAndMenu(ctx context.Context, userID uuid.UUID, weekMenuID int64) (*entity.Order, error)

	// FindByFilter returns orders matching the filter, joined with menu and
	// caterer, ordered by weekday, menu number, last name.
	FindByFilter(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus sets the release state and audit timestamp of one order.
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, releasedAt *time.Time) error

	// DeleteByID removes a single order.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteByWeekday removes all orders of one weekday of one ISO week and
	// returns how many rows went away.
	DeleteByWeekday(ctx context.Context, isoYear, isoWeek, dayOfWeek int) (int64, error)

	// CountByMenuNumber aggregates the day's orders per menu number.
	CountByMenuNumber(ctx context.Context, isoYear, isoWeek, dayOfWeek int) ([]MenuNumberCount, error)

	// DetachUser clears the user link on all orders of a user, keeping the
	// name snapshot, so order history survives account deletion.
	DetachUser(ctx context.Context, userID uuid.UUID) error
}
