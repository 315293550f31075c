package coupon

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/soletrade/admin/internal/domain"
)

var couponCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,50}$`)

// couponService implements domain.CouponService.
type couponService struct {
	repo domain.CouponRepository
	now  func() time.Time
}

// NewCouponService creates a new CouponService with the given repository.
func NewCouponService(repo domain.CouponRepository) domain.CouponService {
	return &couponService{repo: repo, now: time.Now}
}

// GetCoupon retrieves a coupon by ID.
func (s *couponService) GetCoupon(ctx context.Context, id uint) (*domain.Coupon, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCoupons returns a paginated list of coupons.
func (s *couponService) ListCoupons(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Coupon], error) {
	return s.repo.List(ctx, req)
}

// CreateCoupon validates the draft and persists a new coupon. The code is
// normalized to upper case before the uniqueness check.
func (s *couponService) CreateCoupon(ctx context.Context, draft domain.CouponDraft) (*domain.Coupon, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	coupon := &domain.Coupon{
		Code:              draft.Code,
		Description:       draft.Description,
		DiscountType:      draft.DiscountType,
		DiscountValue:     draft.DiscountValue,
		MinOrderValue:     draft.MinOrderValue,
		MaxDiscountAmount: draft.MaxDiscountAmount,
		StartDate:         draft.StartDate,
		EndDate:           draft.EndDate,
		IsActive:          draft.IsActive,
		UsageLimit:        draft.UsageLimit,
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	return coupon, nil
}

// UpdateCoupon validates the draft and rewrites the coupon's editable fields.
// UsedCount and UsedBy survive untouched.
func (s *couponService) UpdateCoupon(ctx context.Context, id uint, draft domain.CouponDraft) (*domain.Coupon, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	coupon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	coupon.Code = draft.Code
	coupon.Description = draft.Description
	coupon.DiscountType = draft.DiscountType
	coupon.DiscountValue = draft.DiscountValue
	coupon.MinOrderValue = draft.MinOrderValue
	coupon.MaxDiscountAmount = draft.MaxDiscountAmount
	coupon.StartDate = draft.StartDate
	coupon.EndDate = draft.EndDate
	coupon.IsActive = draft.IsActive
	coupon.UsageLimit = draft.UsageLimit

	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// DeleteCoupon removes a coupon by ID.
func (s *couponService) DeleteCoupon(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// RedeemCoupon records one redemption for the given user identifier.
func (s *couponService) RedeemCoupon(ctx context.Context, id uint, user string) (*domain.Coupon, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "user is required", nil)
	}
	return s.repo.Redeem(ctx, id, user, s.now())
}

// validateDraft checks draft invariants that go beyond per-field binding
// rules, normalizing the code in place.
func validateDraft(draft *domain.CouponDraft) error {
	draft.Code = strings.ToUpper(strings.TrimSpace(draft.Code))
	draft.Description = strings.TrimSpace(draft.Description)

	if !couponCodePattern.MatchString(draft.Code) {
		return domain.NewAppError(domain.CodeValidation,
			"code must be 3-50 characters of letters, digits, hyphens or underscores", nil)
	}
	if !domain.ValidDiscountType(draft.DiscountType) {
		return domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid discount type %q", draft.DiscountType), nil)
	}
	if draft.DiscountValue <= 0 {
		return domain.NewAppError(domain.CodeValidation, "discount value must be positive", nil)
	}
	if draft.DiscountType == domain.DiscountPercentage && draft.DiscountValue > 100 {
		return domain.NewAppError(domain.CodeValidation, "percentage discount cannot exceed 100", nil)
	}
	if draft.MinOrderValue != nil && *draft.MinOrderValue < 0 {
		return domain.NewAppError(domain.CodeValidation, "minimum order value must not be negative", nil)
	}
	if draft.MaxDiscountAmount != nil && *draft.MaxDiscountAmount <= 0 {
		return domain.NewAppError(domain.CodeValidation, "maximum discount amount must be positive", nil)
	}
	if draft.StartDate.IsZero() || draft.EndDate.IsZero() {
		return domain.NewAppError(domain.CodeValidation, "start and end dates are required", nil)
	}
	if draft.EndDate.Before(draft.StartDate) {
		return domain.NewAppError(domain.CodeValidation, "end date must not precede the start date", nil)
	}
	if draft.UsageLimit < 0 {
		return domain.NewAppError(domain.CodeValidation, "usage limit must not be negative", nil)
	}

	return nil
}
