package usecase

import (
	"context"

	"lunchorder/internal/domain/entity"

	"github.com/google/uuid"
)

// UserOrdersInput selects the requesting user's orders of one ISO week.
type UserOrdersInput struct {
	UserID  uuid.UUID
	ISOYear int
	ISOWeek int
}

// ToggleOrderInput orders or cancels one menu for the requesting user.
type ToggleOrderInput struct {
	UserID     uuid.UUID
	WeekMenuID int64
}

// ToggleOrderOutput reports the resulting state after a toggle.
type ToggleOrderOutput struct {
	Ordered bool
	Order   *entity.Order
}

// AdminOrdersInput filters the admin order list of one ISO week.
type AdminOrdersInput struct {
	ISOYear   int
	ISOWeek   int
	DayOfWeek int
	Search    string
	Location  entity.Location
}

// DaySummaryInput selects one weekday of one ISO week.
type DaySummaryInput struct {
	ISOYear   int
	ISOWeek   int
	DayOfWeek int
}

// DaySummaryRow is the order count of one menu on the selected day.
type DaySummaryRow struct {
	MenuNumber int
	Count      int64
}

// ManualOrderInput creates an order on behalf of a person who is not
// ordering through their own account (Nachtrag). The order is not linked
// to any user.
type ManualOrderInput struct {
	WeekMenuID int64
	FirstName  string
	LastName   string
	Location   entity.Location
}

// DeleteDayOrdersInput removes all orders of one weekday of one ISO week.
type DeleteDayOrdersInput struct {
	ISOYear   int
	ISOWeek   int
	DayOfWeek int
}

// OrderUsecase defines the ordering operations: the user's own toggle
// flow and the admin order management.
type OrderUsecase interface {
	UserOrders(ctx context.Context, input *UserOrdersInput) ([]*entity.Order, error)
	ToggleOrder(ctx context.Context, input *ToggleOrderInput) (*ToggleOrderOutput, error)

	AdminOrders(ctx context.Context, input *AdminOrdersInput) ([]*entity.Order, error)
	DaySummary(ctx context.Context, input *DaySummaryInput) ([]DaySummaryRow, error)
	CreateManualOrder(ctx context.Context, input *ManualOrderInput) (*entity.Order, error)
	ReleaseOrder(ctx context.Context, orderID int64) (*entity.Order, error)
	UnreleaseOrder(ctx context.Context, orderID int64) (*entity.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	DeleteDayOrders(ctx context.Context, input *DeleteDayOrdersInput) (int64, error)
}
