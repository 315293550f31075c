package order

import (
	"context"
	"fmt"

	"github.com/soletrade/admin/internal/domain"
)

// orderService implements domain.OrderService.
type orderService struct {
	repo domain.OrderRepository
}

// NewOrderService creates a new OrderService with the given repository.
func NewOrderService(repo domain.OrderRepository) domain.OrderService {
	return &orderService{repo: repo}
}

// GetOrder retrieves an order by ID.
func (s *orderService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns a paginated list of orders.
func (s *orderService) ListOrders(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Order], error) {
	return s.repo.List(ctx, req)
}

// UpdateOrderStatus moves the order to the given status. Delivered and
// cancelled orders are terminal: any further transition is rejected. The
// returned order carries the new status only after the repository commits.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid order status %q", status), nil)
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if domain.TerminalOrderStatus(order.Status) {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("order is %s and can no longer change status", order.Status), nil)
	}

	if order.Status == status {
		return order, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}
