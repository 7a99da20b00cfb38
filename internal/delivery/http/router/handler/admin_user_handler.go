package handler

import (
	"log/slog"
	"net/http"

	"lunchorder/internal/delivery/http/response"
	"lunchorder/internal/domain/entity"
	"lunchorder/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminUserHandler serves the admin user management.
type AdminUserHandler struct {
	uc     usecase.AdminUserUsecase
	logger *slog.Logger
}

// NewAdminUserHandler is the constructor for AdminUserHandler, injected by Fx.
func NewAdminUserHandler(uc usecase.AdminUserUsecase, logger *slog.Logger) *AdminUserHandler {
	return &AdminUserHandler{uc: uc, logger: logger}
}

type userListResponse struct {
	Users    []userView `json:"users"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// ListUsers returns one page of all accounts.
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	output, err := h.uc.ListUsers(c.Request().Context(), &usecase.ListUsersInput{
		Page:     intQueryParam(c, "page"),
		PageSize: intQueryParam(c, "pageSize"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, userListResponse{
		Users:    toUserViews(output.Users),
		Total:    output.Total,
		Page:     output.Page,
		PageSize: output.PageSize,
	}, "")
}

type createUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Location  string `json:"location"`
	Role      string `json:"role"`
}

// CreateUser creates a complete account on behalf of an admin.
func (h *AdminUserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.CreateUser(c.Request().Context(), &usecase.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Location:  entity.Location(req.Location),
		Role:      entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(user), "Benutzer angelegt")
}

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Location  string `json:"location"`
	Role      string `json:"role" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password"`
}

// UpdateUser changes profile fields and the role of an account. A
// non-empty password resets the login credential.
func (h *AdminUserHandler) UpdateUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), userID, &usecase.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Location:  entity.Location(req.Location),
		Role:      entity.Role(req.Role),
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Benutzer aktualisiert")
}

// DeleteUser removes an account; its orders stay as detached snapshots.
func (h *AdminUserHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user id")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Benutzer gelöscht")
}
