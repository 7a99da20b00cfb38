package model

import "time"

// CatererModel mirrors the 'caterers' table.
type CatererModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CatererModel) TableName() string {
	return "caterers"
}

// WeekMenuModel mirrors the 'week_menus' table. The composite unique index
// enforces one menu number per weekday per ISO week.
type WeekMenuModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	ISOYear       int    `gorm:"column:iso_year;not null;uniqueIndex:idx_week_menu_slot"`
	ISOWeek       int    `gorm:"column:iso_week;not null;uniqueIndex:idx_week_menu_slot"`
	DayOfWeek     int    `gorm:"not null;uniqueIndex:idx_week_menu_slot;check:day_of_week BETWEEN 1 AND 5"`
	MenuNumber    int    `gorm:"not null;uniqueIndex:idx_week_menu_slot"`
	Description   string `gorm:"type:text"`
	CatererID     int64  `gorm:"not null"`
	Caterer       *CatererModel `gorm:"foreignKey:CatererID"`
	OrderDeadline time.Time     `gorm:"not null"`
	Veggie        bool
	Vegan         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (WeekMenuModel) TableName() string {
	return "week_menus"
}
