package domain

import (
	"context"
	"time"
)

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// ValidDiscountType reports whether s is a known discount type.
func ValidDiscountType(s string) bool {
	return s == DiscountPercentage || s == DiscountFixed
}

// Coupon represents a discount code. Code is stored upper-case and unique.
// UsedCount and UsedBy are server-owned bookkeeping: they start at zero/empty
// and only Redeem mutates them.
type Coupon struct {
	BaseModel
	Code              string        `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description       string        `gorm:"size:500" json:"description"`
	DiscountType      string        `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue     float64       `gorm:"not null" json:"discount_value"`
	MinOrderValue     *float64      `json:"min_order_value,omitempty"`
	MaxDiscountAmount *float64      `json:"max_discount_amount,omitempty"`
	StartDate         time.Time     `gorm:"not null" json:"start_date"`
	EndDate           time.Time     `gorm:"not null" json:"end_date"`
	IsActive          bool          `gorm:"not null;default:true" json:"is_active"`
	UsageLimit        int           `gorm:"not null" json:"usage_limit"`
	UsedCount         int           `gorm:"not null;default:0" json:"used_count"`
	UsedBy            []CouponUsage `gorm:"foreignKey:CouponID;constraint:OnDelete:CASCADE" json:"used_by,omitempty"`
}

// CouponUsage records one redemption of a coupon.
type CouponUsage struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	CouponID uint      `gorm:"index;not null" json:"-"`
	User     string    `gorm:"size:255;not null" json:"user"`
	UsedAt   time.Time `gorm:"not null" json:"used_at"`
}

// Exhausted reports whether the coupon's usage limit has been reached.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// WithinWindow reports whether t falls inside the coupon's validity window.
func (c *Coupon) WithinWindow(t time.Time) bool {
	return !t.Before(c.StartDate) && !t.After(c.EndDate)
}

// CouponRepository defines the data access interface for coupons.
type CouponRepository interface {
	Create(ctx context.Context, coupon *Coupon) error
	GetByID(ctx context.Context, id uint) (*Coupon, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Coupon], error)
	Update(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id uint) error
	Redeem(ctx context.Context, id uint, user string, at time.Time) (*Coupon, error)
	Count(ctx context.Context) (int64, error)
}

// CouponService defines the console operations for the coupon screen.
type CouponService interface {
	GetCoupon(ctx context.Context, id uint) (*Coupon, error)
	ListCoupons(ctx context.Context, req PageRequest) (*PageResult[Coupon], error)
	CreateCoupon(ctx context.Context, draft CouponDraft) (*Coupon, error)
	UpdateCoupon(ctx context.Context, id uint, draft CouponDraft) (*Coupon, error)
	DeleteCoupon(ctx context.Context, id uint) error
	RedeemCoupon(ctx context.Context, id uint, user string) (*Coupon, error)
}

// CouponDraft is the form's working copy of a coupon. UsedCount and UsedBy
// are deliberately absent: they cannot be written through the draft.
type CouponDraft struct {
	Code              string
	Description       string
	DiscountType      string
	DiscountValue     float64
	MinOrderValue     *float64
	MaxDiscountAmount *float64
	StartDate         time.Time
	EndDate           time.Time
	IsActive          bool
	UsageLimit        int
}
