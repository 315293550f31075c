package coupon

import "time"

// CreateCouponRequest represents the input for creating a coupon. UsedCount
// and UsedBy have no request fields; they are server-owned.
type CreateCouponRequest struct {
	Code              string    `json:"code" binding:"required,min=3,max=50"`
	Description       string    `json:"description" binding:"max=500"`
	DiscountType      string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue     float64   `json:"discount_value" binding:"required,gt=0"`
	MinOrderValue     *float64  `json:"min_order_value" binding:"omitempty,gte=0"`
	MaxDiscountAmount *float64  `json:"max_discount_amount" binding:"omitempty,gt=0"`
	StartDate         time.Time `json:"start_date" binding:"required"`
	EndDate           time.Time `json:"end_date" binding:"required"`
	IsActive          *bool     `json:"is_active"`
	UsageLimit        int       `json:"usage_limit" binding:"min=0"`
}

// UpdateCouponRequest represents a partial coupon update. Absent fields are
// left unchanged.
type UpdateCouponRequest struct {
	Code              *string    `json:"code" binding:"omitempty,min=3,max=50"`
	Description       *string    `json:"description" binding:"omitempty,max=500"`
	DiscountType      *string    `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue     *float64   `json:"discount_value" binding:"omitempty,gt=0"`
	MinOrderValue     *float64   `json:"min_order_value" binding:"omitempty,gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" binding:"omitempty,gt=0"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	IsActive          *bool      `json:"is_active"`
	UsageLimit        *int       `json:"usage_limit" binding:"omitempty,min=0"`
}

// RedeemRequest represents a redemption recorded through the console.
type RedeemRequest struct {
	User string `json:"user" binding:"required,max=255"`
}
