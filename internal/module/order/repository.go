package order

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

var allowedSortFields = []string{"id", "status", "total", "created_at", "updated_at"}

// orderRepository implements domain.OrderRepository using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository backed by the given GORM database.
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts an order with its items. Used by storefront forwarding and
// development seeding; the console itself never creates orders.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves an order with its items and customer.
func (r *orderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		First(&order, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &order, nil
}

// List returns one page of orders. The search term matches the customer's
// email or the order status, so it needs a join rather than the shared
// search scope.
func (r *orderRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	base := r.db.WithContext(ctx).Model(&domain.Order{})
	if term := strings.TrimSpace(req.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		base = base.
			Select("orders.*").
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Where("lower(users.email) LIKE ? OR lower(orders.status) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	page := pkg.ClampPage(req.Page, total, req.PageSize)

	var orders []domain.Order
	err := base.
		Preload("Items").
		Preload("User").
		Scopes(
			pkg.Paginate(page, req.PageSize),
			pkg.Sort(req, allowedSortFields),
		).
		Find(&orders).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageOf(orders, total, page, req.PageSize), nil
}

// UpdateStatus sets the order's status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the total number of orders.
func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error; err != nil {
		return 0, pkg.MapDBError(err)
	}
	return total, nil
}

// Revenue sums the totals of all non-cancelled orders.
func (r *orderRepository) Revenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status <> ?", domain.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, pkg.MapDBError(err)
	}
	return revenue, nil
}

// Recent returns the newest orders, customer preloaded.
func (r *orderRepository) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("id desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return orders, nil
}
