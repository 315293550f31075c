package dashboard

import (
	"context"

	"github.com/soletrade/admin/internal/domain"
)

// Stats aggregates the figures shown on the dashboard.
type Stats struct {
	UserCount    int64          `json:"user_count"`
	OrderCount   int64          `json:"order_count"`
	ProductCount int64          `json:"product_count"`
	CouponCount  int64          `json:"coupon_count"`
	TotalRevenue float64        `json:"total_revenue"`
	RecentOrders []domain.Order `json:"recent_orders"`
}

// Service computes dashboard statistics from the resource repositories.
type Service struct {
	users    domain.UserRepository
	orders   domain.OrderRepository
	products domain.ProductRepository
	coupons  domain.CouponRepository
}

// NewService creates a dashboard Service over the given repositories.
func NewService(users domain.UserRepository, orders domain.OrderRepository, products domain.ProductRepository, coupons domain.CouponRepository) *Service {
	return &Service{users: users, orders: orders, products: products, coupons: coupons}
}

const recentOrderLimit = 5

// Stats gathers counts, total revenue excluding cancelled orders, and the
// most recent orders.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.UserCount, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.OrderCount, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ProductCount, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.CouponCount, err = s.coupons.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.orders.Revenue(ctx); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.orders.Recent(ctx, recentOrderLimit); err != nil {
		return nil, err
	}

	return stats, nil
}
