// Package handler contains the HTTP handlers for the application.
package handler

import (
	"strconv"
	"time"

	"lunchorder/internal/domain/entity"
	"lunchorder/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// userView is the JSON shape of an account.
type userView struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Location        string    `json:"location"`
	Role            string    `json:"role"`
	ProfileComplete bool      `json:"profileComplete"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toUserView(user *entity.User) userView {
	return userView{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Location:        user.Location.String(),
		Role:            user.Role.String(),
		ProfileComplete: user.ProfileComplete(),
		CreatedAt:       user.CreatedAt,
	}
}

func toUserViews(users []*entity.User) []userView {
	views := make([]userView, len(users))
	for i, user := range users {
		views[i] = toUserView(user)
	}

	return views
}

// menuView is the JSON shape of one menu row of the week plan.
type menuView struct {
	ID            int64     `json:"id"`
	ISOYear       int       `json:"isoYear"`
	ISOWeek       int       `json:"isoWeek"`
	DayOfWeek     int       `json:"dayOfWeek"`
	MenuNumber    int       `json:"menuNumber"`
	Description   string    `json:"description"`
	CatererID     int64     `json:"catererId"`
	CatererName   string    `json:"catererName"`
	OrderDeadline time.Time `json:"orderDeadline"`
	Veggie        bool      `json:"veggie"`
	Vegan         bool      `json:"vegan"`
}

func toMenuView(menu *entity.WeekMenu) menuView {
	return menuView{
		ID:            menu.ID,
		ISOYear:       menu.ISOYear,
		ISOWeek:       menu.ISOWeek,
		DayOfWeek:     menu.DayOfWeek,
		MenuNumber:    menu.MenuNumber,
		Description:   menu.Description,
		CatererID:     menu.CatererID,
		CatererName:   menu.CatererName,
		OrderDeadline: menu.OrderDeadline,
		Veggie:        menu.Veggie,
		Vegan:         menu.Vegan,
	}
}

// weekView is the JSON shape of one week plan.
type weekView struct {
	ISOYear int        `json:"isoYear"`
	ISOWeek int        `json:"isoWeek"`
	Monday  time.Time  `json:"monday"`
	Menus   []menuView `json:"menus"`
}

func toWeekView(output *usecase.WeekMenusOutput) weekView {
	menus := make([]menuView, len(output.Menus))
	for i, menu := range output.Menus {
		menus[i] = toMenuView(menu)
	}

	return weekView{
		ISOYear: output.ISOYear,
		ISOWeek: output.ISOWeek,
		Monday:  output.Monday,
		Menus:   menus,
	}
}

// orderView is the JSON shape of one order.
type orderView struct {
	ID         int64      `json:"id"`
	WeekMenuID int64      `json:"weekMenuId"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Location   string     `json:"location"`
	Status     string     `json:"status"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	Menu       *menuView  `json:"menu,omitempty"`
}

func toOrderView(order *entity.Order) orderView {
	view := orderView{
		ID:         order.ID,
		WeekMenuID: order.WeekMenuID,
		UserID:     order.UserID,
		FirstName:  order.FirstName,
		LastName:   order.LastName,
		Location:   order.Location.String(),
		Status:     string(order.Status),
		ReleasedAt: order.ReleasedAt,
		CreatedAt:  order.CreatedAt,
	}
	if order.WeekMenu != nil {
		menu := toMenuView(order.WeekMenu)
		view.Menu = &menu
	}

	return view
}

func toOrderViews(orders []*entity.Order) []orderView {
	views := make([]orderView, len(orders))
	for i, order := range orders {
		views[i] = toOrderView(order)
	}

	return views
}

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("userID").(uuid.UUID)

	return userID, ok
}

// intQueryParam parses an optional integer query parameter, returning 0
// when absent or malformed.
func intQueryParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}
