package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. UserID is nullable: manual admin
// entries never had one, and deleting an account detaches its orders. The
// partial unique index (user_id, week_menu_id) WHERE user_id IS NOT NULL
// enforces one self-service order per user and menu.
type OrderModel struct {
	ID         int64          `gorm:"primaryKey;autoIncrement"`
	WeekMenuID int64          `gorm:"not null;index;index:idx_orders_user_menu,unique,where:user_id IS NOT NULL"`
	WeekMenu   *WeekMenuModel `gorm:"foreignKey:WeekMenuID;constraint:OnDelete:CASCADE"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index:idx_orders_user_menu,unique,where:user_id IS NOT NULL"`
	FirstName  string         `gorm:"type:varchar(100);not null"`
	LastName   string         `gorm:"type:varchar(100);not null"`
	Location   string         `gorm:"type:varchar(32);not null"`
	Status     string         `gorm:"type:varchar(16);not null;default:pending"`
	ReleasedAt *time.Time
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
