package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the explicit two-state release flag on an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusReleased marks an order as handed off to the caterer.
	OrderStatusReleased OrderStatus = "released"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusReleased:
		return true
	default:
		return false
	}
}

// Order is one person's order for one WeekMenu. Name and location are
// snapshotted at creation so exports survive profile edits and user
// deletion. UserID is nil for manual admin entries (Nachtrag) and for
// orders whose user account has since been removed.
type Order struct {
	ID         int64
	WeekMenuID int64
	UserID     *uuid.UUID
	FirstName  string
	LastName   string
	Location   Location
	Status     OrderStatus
	ReleasedAt *time.Time
	CreatedAt  time.Time

	WeekMenu *WeekMenu // joined attribute for admin listing and exports
}

// FullName returns the snapshotted person name.
func (o *Order) FullName() string {
	if o.FirstName == "" {
		return o.LastName
	}
	if o.LastName == "" {
		return o.FirstName
	}

	return o.FirstName + " " + o.LastName
}

// Release marks the order as processed and stamps the audit time.
func (o *Order) Release(now time.Time) {
	o.Status = OrderStatusReleased
	o.ReleasedAt = &now
}

// Unrelease restores the order to its pending state.
func (o *Order) Unrelease() {
	o.Status = OrderStatusPending
	o.ReleasedAt = nil
}

// Released reports whether the order has been handed off.
func (o *Order) Released() bool {
	return o.Status == OrderStatusReleased
}

// MenuCard is one badge-style card of the PDF export: all people of one
// location who ordered the same menu on the same weekday.
type MenuCard struct {
	Title    string
	Subtitle string
	Names    []string
}
