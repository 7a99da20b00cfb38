// Package repository provides hand-written testify mocks for the
// persistence interfaces.
package repository

import (
	"context"
	"time"

	"lunchorder/internal/domain/entity"
	"lunchorder/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	users, _ := args.Get(0).([]*entity.User)

	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockAuthRepository mocks repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func NewMockAuthRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuthRepository {
	m := &MockAuthRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	auth, _ := args.Get(0).(*entity.Authentication)

	return auth, args.Error(1)
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *MockAuthRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *MockAuthRepository) UpdateProviderUserID(ctx context.Context, userID uuid.UUID, providerUserID string) error {
	return m.Called(ctx, userID, providerUserID).Error(0)
}

func (m *MockAuthRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func NewMockRefreshTokenRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	token, _ := args.Get(0).(*entity.RefreshToken)

	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockPasswordResetRepository mocks repository.PasswordResetRepository.
type MockPasswordResetRepository struct {
	mock.Mock
}

func NewMockPasswordResetRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordResetRepository {
	m := &MockPasswordResetRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordResetRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockPasswordResetRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordResetToken, error) {
	args := m.Called(ctx, tokenHash)
	token, _ := args.Get(0).(*entity.PasswordResetToken)

	return token, args.Error(1)
}

func (m *MockPasswordResetRepository) Consume(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockPasswordResetRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockCatererRepository mocks repository.CatererRepository.
type MockCatererRepository struct {
	mock.Mock
}

func NewMockCatererRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatererRepository {
	m := &MockCatererRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCatererRepository) List(ctx context.Context) ([]*entity.Caterer, error) {
	args := m.Called(ctx)
	caterers, _ := args.Get(0).([]*entity.Caterer)

	return caterers, args.Error(1)
}

func (m *MockCatererRepository) FindByID(ctx context.Context, id int64) (*entity.Caterer, error) {
	args := m.Called(ctx, id)
	caterer, _ := args.Get(0).(*entity.Caterer)

	return caterer, args.Error(1)
}

// MockWeekMenuRepository mocks repository.WeekMenuRepository.
type MockWeekMenuRepository struct {
	mock.Mock
}

func NewMockWeekMenuRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWeekMenuRepository {
	m := &MockWeekMenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockWeekMenuRepository) FindByWeek(ctx context.Context, isoYear, isoWeek int) ([]*entity.WeekMenu, error) {
	args := m.Called(ctx, isoYear, isoWeek)
	menus, _ := args.Get(0).([]*entity.WeekMenu)

	return menus, args.Error(1)
}

func (m *MockWeekMenuRepository) FindByID(ctx context.Context, id int64) (*entity.WeekMenu, error) {
	args := m.Called(ctx, id)
	menu, _ := args.Get(0).(*entity.WeekMenu)

	return menu, args.Error(1)
}

func (m *MockWeekMenuRepository) Upsert(ctx context.Context, menu *entity.WeekMenu) error {
	return m.Called(ctx, menu).Error(0)
}

func (m *MockWeekMenuRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockWeekMenuRepository) DeleteByWeekExcept(ctx context.Context, isoYear, isoWeek int, keepIDs []int64) error {
	return m.Called(ctx, isoYear, isoWeek, keepIDs).Error(0)
}

// MockOrderRepository mocks repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockOrderRepository) FindByUserAndWeek(ctx context.Context, userID uuid.UUID, isoYear, isoWeek int) ([]*entity.Order, error) {
	args := m.Called(ctx, userID, isoYear, isoWeek)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindByUserAndMenu(ctx context.Context, userID uuid.UUID, weekMenuID int64) (*entity.Order, error) {
	args := m.Called(ctx, userID, weekMenuID)
	order, _ := args.Get(0).(*entity.Order)

	return order, args.Error(1)
}

func (m *MockOrderRepository) FindByFilter(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*entity.Order)

	return orders, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, releasedAt *time.Time) error {
	return m.Called(ctx, id, status, releasedAt).Error(0)
}

func (m *MockOrderRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) DeleteByWeekday(ctx context.Context, isoYear, isoWeek, dayOfWeek int) (int64, error) {
	args := m.Called(ctx, isoYear, isoWeek, dayOfWeek)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByMenuNumber(ctx context.Context, isoYear, isoWeek, dayOfWeek int) ([]repository.MenuNumberCount, error) {
	args := m.Called(ctx, isoYear, isoWeek, dayOfWeek)
	counts, _ := args.Get(0).([]repository.MenuNumberCount)

	return counts, args.Error(1)
}

func (m *MockOrderRepository) DetachUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// FakeRepositoryFactory hands out the configured mocks, so a test can
// drive code running inside a transaction.
type FakeRepositoryFactory struct {
	Users          *MockUserRepository
	Auths          *MockAuthRepository
	RefreshTokens  *MockRefreshTokenRepository
	PasswordResets *MockPasswordResetRepository
	WeekMenus      *MockWeekMenuRepository
	Orders         *MockOrderRepository
}

func (f *FakeRepositoryFactory) UserRepo() repository.UserRepository { return f.Users }
func (f *FakeRepositoryFactory) AuthRepo() repository.AuthRepository { return f.Auths }
func (f *FakeRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokens
}
func (f *FakeRepositoryFactory) PasswordResetRepo() repository.PasswordResetRepository {
	return f.PasswordResets
}
func (f *FakeRepositoryFactory) WeekMenuRepo() repository.WeekMenuRepository { return f.WeekMenus }
func (f *FakeRepositoryFactory) OrderRepo() repository.OrderRepository       { return f.Orders }

// FakeTransactionManager runs the callback immediately against the fake
// factory, standing in for a real database transaction.
type FakeTransactionManager struct {
	Factory *FakeRepositoryFactory
}

func (f *FakeTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.Factory)
}
