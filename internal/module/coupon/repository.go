package coupon

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// Allowed fields for sorting and searching in List queries.
var (
	allowedSortFields = []string{"id", "code", "discount_type", "start_date", "end_date", "is_active", "used_count", "created_at", "updated_at"}
	searchFields      = []string{"code", "description"}
)

// couponRepository implements domain.CouponRepository using GORM.
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a new CouponRepository backed by the given GORM database.
func NewCouponRepository(db *gorm.DB) domain.CouponRepository {
	return &couponRepository{db: db}
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a coupon with its redemption history.
func (r *couponRepository) GetByID(ctx context.Context, id uint) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.db.WithContext(ctx).
		Preload("UsedBy").
		First(&coupon, id).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &coupon, nil
}

// List returns one page of coupons matching the search term. The requested
// page is clamped against the matching total before the page query runs.
func (r *couponRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Coupon], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Coupon{}).
		Scopes(pkg.Search(req, searchFields))

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	page := pkg.ClampPage(req.Page, total, req.PageSize)

	var coupons []domain.Coupon
	if err := base.Scopes(
		pkg.Paginate(page, req.PageSize),
		pkg.Sort(req, allowedSortFields),
	).Find(&coupons).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.PageOf(coupons, total, page, req.PageSize), nil
}

// Update writes the coupon's editable columns. UsedCount and UsedBy are never
// touched here; only Redeem mutates them.
func (r *couponRepository) Update(ctx context.Context, coupon *domain.Coupon) error {
	result := r.db.WithContext(ctx).Model(&domain.Coupon{}).
		Where("id = ?", coupon.ID).
		Updates(map[string]any{
			"code":                coupon.Code,
			"description":         coupon.Description,
			"discount_type":       coupon.DiscountType,
			"discount_value":      coupon.DiscountValue,
			"min_order_value":     coupon.MinOrderValue,
			"max_discount_amount": coupon.MaxDiscountAmount,
			"start_date":          coupon.StartDate,
			"end_date":            coupon.EndDate,
			"is_active":           coupon.IsActive,
			"usage_limit":         coupon.UsageLimit,
		})
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a coupon and its redemption history.
func (r *couponRepository) Delete(ctx context.Context, id uint) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("coupon_id = ?", id).Delete(&domain.CouponUsage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Coupon{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Redeem records one redemption atomically: the coupon is re-read inside the
// transaction, its validity checked, its counter incremented, and a usage row
// appended. A coupon that is inactive, outside its window, or exhausted is
// rejected with a validation error.
func (r *couponRepository) Redeem(ctx context.Context, id uint, user string, at time.Time) (*domain.Coupon, error) {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var coupon domain.Coupon
		if err := tx.First(&coupon, id).Error; err != nil {
			return err
		}

		if !coupon.IsActive {
			return domain.NewAppError(domain.CodeValidation, "coupon is not active", nil)
		}
		if !coupon.WithinWindow(at) {
			return domain.NewAppError(domain.CodeValidation, "coupon is outside its validity window", nil)
		}
		if coupon.Exhausted() {
			return domain.NewAppError(domain.CodeValidation, "coupon usage limit reached", nil)
		}

		err := tx.Model(&domain.Coupon{}).
			Where("id = ?", id).
			Update("used_count", gorm.Expr("used_count + 1")).Error
		if err != nil {
			return err
		}

		return tx.Create(&domain.CouponUsage{
			CouponID: id,
			User:     user,
			UsedAt:   at,
		}).Error
	})
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	return r.GetByID(ctx, id)
}

// Count returns the total number of coupons.
func (r *couponRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Coupon{}).Count(&total).Error; err != nil {
		return 0, pkg.MapDBError(err)
	}
	return total, nil
}
