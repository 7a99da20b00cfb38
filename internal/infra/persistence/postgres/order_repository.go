package postgres

import (
	"context"
	"time"

	"lunchorder/internal/domain/entity"
	domainerrors "lunchorder/internal/domain/errors"
	"lunchorder/internal/domain/repository"
	"lunchorder/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order joined with its menu.
func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("WeekMenu").
		Preload("WeekMenu.Caterer").
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUserAndWeek returns the user's orders for one ISO week.
func (repo *orderRepository) FindByUserAndWeek(ctx context.Context, userID uuid.UUID, isoYear, isoWeek int) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("WeekMenu").
		Joins("JOIN week_menus ON week_menus.id = orders.week_menu_id").
		Where("orders.user_id = ? AND week_menus.iso_year = ? AND week_menus.iso_week = ?", userID, isoYear, isoWeek).
		Order("week_menus.day_of_week, week_menus.menu_number").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user orders")
	}

	return toOrderDomainSlice(orderMs), nil
}

// FindByUserAndMenu returns the user's order for one menu, or ErrOrderNotFound.
func (repo *orderRepository) FindByUserAndMenu(ctx context.Context, userID uuid.UUID, weekMenuID int64) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		First(&orderM, "user_id = ? AND week_menu_id = ?", userID, weekMenuID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by user and menu")
	}

	return toOrderDomain(&orderM), nil
}

// FindByFilter returns orders matching the filter, joined with menu and caterer.
func (repo *orderRepository) FindByFilter(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).
		Preload("WeekMenu").
		Preload("WeekMenu.Caterer").
		Joins("JOIN week_menus ON week_menus.id = orders.week_menu_id").
		Where("week_menus.iso_year = ? AND week_menus.iso_week = ?", filter.ISOYear, filter.ISOWeek)

	if filter.DayOfWeek != 0 {
		query = query.Where("week_menus.day_of_week = ?", filter.DayOfWeek)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("orders.first_name ILIKE ? OR orders.last_name ILIKE ?", pattern, pattern)
	}
	if filter.Location != "" {
		query = query.Where("orders.location = ?", filter.Location.String())
	}

	var orderMs []model.OrderModel
	err := query.
		Order("week_menus.day_of_week, week_menus.menu_number, orders.last_name, orders.first_name").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by filter")
	}

	return toOrderDomainSlice(orderMs), nil
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrOrderAlreadyExists.WrapMessage("order already exists for this menu")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrMenuNotFound.WrapMessage("unknown week menu")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// UpdateStatus sets the release state and audit timestamp of one order.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, releasedAt *time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      string(status),
			"released_at": releasedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// DeleteByID removes a single order.
func (repo *orderRepository) DeleteByID(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// DeleteByWeekday removes all orders of one weekday of one ISO week.
func (repo *orderRepository) DeleteByWeekday(ctx context.Context, isoYear, isoWeek, dayOfWeek int) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("week_menu_id IN (?)", repo.db.
			Model(&model.WeekMenuModel{}).
			Select("id").
			Where("iso_year = ? AND iso_week = ? AND day_of_week = ?", isoYear, isoWeek, dayOfWeek),
		).
		Delete(&model.OrderModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete day orders")
	}

	return result.RowsAffected, nil
}

// CountByMenuNumber aggregates the day's orders per menu number.
func (repo *orderRepository) CountByMenuNumber(ctx context.Context, isoYear, isoWeek, dayOfWeek int) ([]repository.MenuNumberCount, error) {
	var counts []repository.MenuNumberCount
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("week_menus.menu_number AS menu_number, COUNT(*) AS count").
		Joins("JOIN week_menus ON week_menus.id = orders.week_menu_id").
		Where("week_menus.iso_year = ? AND week_menus.iso_week = ? AND week_menus.day_of_week = ?", isoYear, isoWeek, dayOfWeek).
		Group("week_menus.menu_number").
		Order("menu_number").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders by menu number")
	}

	return counts, nil
}

// DetachUser clears the user link on all orders of a user, keeping the name snapshot.
func (repo *orderRepository) DetachUser(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to detach user orders")
	}

	return nil
}

func toOrderDomain(m *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:         m.ID,
		WeekMenuID: m.WeekMenuID,
		UserID:     m.UserID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Location:   entity.Location(m.Location),
		Status:     entity.OrderStatus(m.Status),
		ReleasedAt: m.ReleasedAt,
		CreatedAt:  m.CreatedAt,
	}
	if m.WeekMenu != nil {
		order.WeekMenu = toWeekMenuDomain(m.WeekMenu)
	}

	return order
}

func toOrderDomainSlice(orderMs []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, len(orderMs))
	for i := range orderMs {
		orders[i] = toOrderDomain(&orderMs[i])
	}

	return orders
}

func fromOrderDomain(o *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:         o.ID,
		WeekMenuID: o.WeekMenuID,
		UserID:     o.UserID,
		FirstName:  o.FirstName,
		LastName:   o.LastName,
		Location:   o.Location.String(),
		Status:     string(o.Status),
		ReleasedAt: o.ReleasedAt,
		CreatedAt:  o.CreatedAt,
	}
}
