package domain

import (
	"context"
	"slices"
)

// Order statuses, in their usual lifecycle order.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	return slices.Contains(OrderStatuses, s)
}

// TerminalOrderStatus reports whether s is a final status. Terminal orders
// accept no further status transitions.
func TerminalOrderStatus(s string) bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order represents a storefront order as seen by the console.
type Order struct {
	BaseModel
	UserID uint        `gorm:"index;not null" json:"user_id"`
	User   *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status string      `gorm:"size:20;not null;default:pending" json:"status"`
	Total  float64     `gorm:"not null" json:"total"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a single line of an order. Price is the unit price captured at
// order time, not the product's current price.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"-"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// OrderRepository defines the data access interface for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Order], error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Count(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (float64, error)
	Recent(ctx context.Context, limit int) ([]Order, error)
}

// OrderService defines the console operations for the order screen. Orders
// are created by the storefront; the console only inspects them and moves
// them through the status lifecycle.
type OrderService interface {
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListOrders(ctx context.Context, req PageRequest) (*PageResult[Order], error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) (*Order, error)
}
