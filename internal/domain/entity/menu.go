package entity

import "time"

// Caterer is a kitchen that supplies menus. The set is small and rarely
// changes.
type Caterer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeekMenu is one dish offered on one weekday of one ISO week.
// (ISOYear, ISOWeek, DayOfWeek, MenuNumber) is unique.
type WeekMenu struct {
	ID            int64
	ISOYear       int
	ISOWeek       int
	DayOfWeek     int // 1 = Monday ... 5 = Friday
	MenuNumber    int
	Description   string
	CatererID     int64
	CatererName   string // joined attribute, not persisted on this row
	OrderDeadline time.Time
	Veggie        bool
	Vegan         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderableAt reports whether self-service orders are still accepted.
func (m *WeekMenu) OrderableAt(now time.Time) bool {
	return now.Before(m.OrderDeadline)
}
