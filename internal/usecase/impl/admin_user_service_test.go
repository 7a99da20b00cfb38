package impl

import (
	"context"
	"testing"

	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	mockRepo "lunchorder/internal/mocks/repository"
	mockSvc "lunchorder/internal/mocks/service"
	"lunchorder/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminUserServiceMocks struct {
	userRepo    *mockRepo.MockUserRepository
	authRepo    *mockRepo.MockAuthRepository
	refreshRepo *mockRepo.MockRefreshTokenRepository
	resetRepo   *mockRepo.MockPasswordResetRepository
	orderRepo   *mockRepo.MockOrderRepository
	hasher      *mockSvc.MockPasswordHasher
}

func newAdminUserService(t *testing.T) (*adminUserService, *adminUserServiceMocks) {
	t.Helper()

	mocks := &adminUserServiceMocks{
		userRepo:    mockRepo.NewMockUserRepository(t),
		authRepo:    mockRepo.NewMockAuthRepository(t),
		refreshRepo: mockRepo.NewMockRefreshTokenRepository(t),
		resetRepo:   mockRepo.NewMockPasswordResetRepository(t),
		orderRepo:   mockRepo.NewMockOrderRepository(t),
		hasher:      mockSvc.NewMockPasswordHasher(t),
	}

	txManager := &mockRepo.FakeTransactionManager{
		Factory: &mockRepo.FakeRepositoryFactory{
			Users:          mocks.userRepo,
			Auths:          mocks.authRepo,
			RefreshTokens:  mocks.refreshRepo,
			PasswordResets: mocks.resetRepo,
			Orders:         mocks.orderRepo,
		},
	}

	service := NewAdminUserService(AdminUserServiceParams{
		TxManager: txManager,
		UserRepo:  mocks.userRepo,
		AuthRepo:  mocks.authRepo,
		Hasher:    mocks.hasher,
		Logger:    discardLogger(),
	}).(*adminUserService)

	return service, mocks
}

func TestAdminUserService_ListUsers_DefaultsPaging(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	users := []*entity.User{completeUser()}
	mocks.userRepo.On("List", ctx, 0, defaultPageSize).Return(users, int64(1), nil)

	output, err := service.ListUsers(ctx, &usecase.ListUsersInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, defaultPageSize, output.PageSize)
	assert.Equal(t, int64(1), output.Total)
	assert.Len(t, output.Users, 1)
}

func TestAdminUserService_ListUsers_CapsPageSize(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	mocks.userRepo.On("List", ctx, maxPageSize, maxPageSize).Return(nil, int64(0), nil)

	output, err := service.ListUsers(ctx, &usecase.ListUsersInput{Page: 2, PageSize: 10_000})
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, output.PageSize)
}

func TestAdminUserService_CreateUser(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	mocks.hasher.On("ValidatePasswordStrength", "geheim123").Return(nil)
	mocks.hasher.On("Hash", "geheim123").Return("hashed", nil)
	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "carla@example.org").
		Return(nil, repository.ErrAuthNotFound)
	mocks.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	mocks.authRepo.On("CreateAuthentication", ctx, mock.AnythingOfType("*entity.Authentication")).Return(nil)

	user, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:     "carla@example.org",
		Password:  "geheim123",
		FirstName: "Carla",
		LastName:  "Chaos",
		Location:  entity.LocationSouth,
		Role:      entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.True(t, user.ProfileComplete())
}

func TestAdminUserService_CreateUser_DuplicateEmail(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	mocks.hasher.On("ValidatePasswordStrength", "geheim123").Return(nil)
	mocks.hasher.On("Hash", "geheim123").Return("hashed", nil)
	mocks.authRepo.On("FindAuthentication", ctx, entity.ProviderTypeEmail, "anna@example.org").
		Return(&entity.Authentication{UserID: uuid.New()}, nil)

	_, err := service.CreateUser(ctx, &usecase.CreateUserInput{
		Email:    "anna@example.org",
		Password: "geheim123",
		Role:     entity.RoleUser,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAdminUserService_CreateUser_InvalidRole(t *testing.T) {
	service, _ := newAdminUserService(t)

	_, err := service.CreateUser(context.Background(), &usecase.CreateUserInput{
		Email:    "x@example.org",
		Password: "geheim123",
		Role:     "superuser",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAdminUserService_UpdateUser_ResetsPassword(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	user := completeUser()
	mocks.hasher.On("ValidatePasswordStrength", "neuundsicher").Return(nil)
	mocks.hasher.On("Hash", "neuundsicher").Return("new-hash", nil)
	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.userRepo.On("Update", ctx, user).Return(nil)
	mocks.authRepo.On("UpdatePasswordHash", ctx, user.ID, "new-hash").Return(nil)
	mocks.refreshRepo.On("DeleteByUserID", ctx, user.ID).Return(nil)

	updated, err := service.UpdateUser(ctx, user.ID, &usecase.UpdateUserInput{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Location:  user.Location,
		Role:      user.Role,
		Password:  "neuundsicher",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, updated.ID)
}

func TestAdminUserService_UpdateUser_PasswordOnlyKeepsProfile(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	user := completeUser()
	mocks.hasher.On("ValidatePasswordStrength", "neuundsicher").Return(nil)
	mocks.hasher.On("Hash", "neuundsicher").Return("new-hash", nil)
	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.userRepo.On("Update", ctx, user).Return(nil)
	mocks.authRepo.On("UpdatePasswordHash", ctx, user.ID, "new-hash").Return(nil)
	mocks.refreshRepo.On("DeleteByUserID", ctx, user.ID).Return(nil)

	updated, err := service.UpdateUser(ctx, user.ID, &usecase.UpdateUserInput{
		Role:     user.Role,
		Password: "neuundsicher",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "Ampel", updated.LastName)
	assert.Equal(t, entity.LocationNorth, updated.Location)
}

func TestAdminUserService_UpdateUser_ChangesEmail(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	user := completeUser()
	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.userRepo.On("Update", ctx, user).Return(nil)
	mocks.authRepo.On("UpdateProviderUserID", ctx, user.ID, "neu@example.org").Return(nil)

	updated, err := service.UpdateUser(ctx, user.ID, &usecase.UpdateUserInput{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Location:  user.Location,
		Role:      user.Role,
		Email:     "neu@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "neu@example.org", updated.Email)
}

func TestAdminUserService_DeleteUser_DetachesOrders(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	user := completeUser()
	mocks.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mocks.orderRepo.On("DetachUser", ctx, user.ID).Return(nil)
	mocks.refreshRepo.On("DeleteByUserID", ctx, user.ID).Return(nil)
	mocks.resetRepo.On("DeleteByUserID", ctx, user.ID).Return(nil)
	mocks.authRepo.On("DeleteByUserID", ctx, user.ID).Return(nil)
	mocks.userRepo.On("Delete", ctx, user.ID).Return(nil)

	err := service.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
}

func TestAdminUserService_DeleteUser_NotFound(t *testing.T) {
	service, mocks := newAdminUserService(t)
	ctx := context.Background()

	unknownID := uuid.New()
	mocks.userRepo.On("FindByID", ctx, unknownID).Return(nil, repository.ErrUserNotFound)

	err := service.DeleteUser(ctx, unknownID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
