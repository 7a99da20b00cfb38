// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lunchorder/internal/delivery/http/middleware"
	"lunchorder/internal/delivery/http/router/handler"
	"lunchorder/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler    *handler.AccountHandler
	MenuHandler       *handler.MenuHandler
	OrderHandler      *handler.OrderHandler
	AdminOrderHandler *handler.AdminOrderHandler
	AdminUserHandler  *handler.AdminUserHandler
	ExportHandler     *handler.ExportHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.AccountHandler.Register)
		authGroup.POST("/login", r.params.AccountHandler.Login)
		authGroup.POST("/refresh", r.params.AccountHandler.RefreshToken)
		authGroup.POST("/logout", r.params.AccountHandler.Logout)
		authGroup.POST("/forgot-password", r.params.AccountHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.params.AccountHandler.ResetPassword)
	}

	// Routes for any authenticated account
	userGroup := e.Group("/user")
	userGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.params.AccountHandler.GetProfile)
		userGroup.PUT("/profile", r.params.AccountHandler.UpdateProfile)
		userGroup.GET("/orders", r.params.OrderHandler.UserOrders)
		userGroup.POST("/orders/toggle", r.params.OrderHandler.ToggleOrder)
	}

	// The week plan is visible to every authenticated account.
	menuGroup := e.Group("/menus")
	menuGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		menuGroup.GET("", r.params.MenuHandler.WeekMenus)
	}

	// Admin console routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.params.AuthMiddleware.Authenticate)
	adminGroup.Use(r.params.AuthMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.GET("/caterers", r.params.MenuHandler.Caterers)
		adminGroup.GET("/menus", r.params.MenuHandler.WeekMenus)
		adminGroup.PUT("/menus", r.params.MenuHandler.SaveWeek)
		adminGroup.DELETE("/menus/:id", r.params.MenuHandler.DeleteMenu)

		adminGroup.GET("/orders", r.params.AdminOrderHandler.ListOrders)
		adminGroup.GET("/orders/summary", r.params.AdminOrderHandler.DaySummary)
		adminGroup.POST("/orders", r.params.AdminOrderHandler.CreateManualOrder)
		adminGroup.POST("/orders/:id/release", r.params.AdminOrderHandler.ReleaseOrder)
		adminGroup.POST("/orders/:id/unrelease", r.params.AdminOrderHandler.UnreleaseOrder)
		adminGroup.DELETE("/orders/:id", r.params.AdminOrderHandler.DeleteOrder)
		adminGroup.DELETE("/orders", r.params.AdminOrderHandler.DeleteDayOrders)

		adminGroup.GET("/users", r.params.AdminUserHandler.ListUsers)
		adminGroup.POST("/users", r.params.AdminUserHandler.CreateUser)
		adminGroup.PUT("/users/:id", r.params.AdminUserHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", r.params.AdminUserHandler.DeleteUser)

		adminGroup.GET("/export/csv", r.params.ExportHandler.OrdersCSV)
		adminGroup.GET("/export/pdf", r.params.ExportHandler.MenuCardsZip)
	}
}
