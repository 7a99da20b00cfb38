package usecase

import (
	"context"

	"lunchorder/internal/domain/entity"

	"github.com/google/uuid"
)

// ListUsersInput controls the server-side paging of the user list.
type ListUsersInput struct {
	Page     int
	PageSize int
}

// ListUsersOutput is one page of users plus the total count.
type ListUsersOutput struct {
	Users    []*entity.User
	Total    int64
	Page     int
	PageSize int
}

// CreateUserInput defines the data an admin provides to create an account.
// An empty Role defaults to the regular user role.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Location  entity.Location
	Role      entity.Role
}

// UpdateUserInput defines the fields an admin may change on an account.
// Only Role is mandatory; every other field changes the account only
// when set. A non-empty Password resets the login credential; a
// non-empty Email moves the account to a new address.
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Location  entity.Location
	Role      entity.Role
	Email     string
	Password  string
}

// AdminUserUsecase defines the user administration operations of the
// admin console.
type AdminUserUsecase interface {
	ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
