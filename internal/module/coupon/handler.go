package coupon

import (
	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/pkg"
)

// CouponHandler handles REST API requests for the coupon resource.
type CouponHandler struct {
	svc domain.CouponService
}

// NewCouponHandler creates a new CouponHandler with the given service.
func NewCouponHandler(svc domain.CouponService) *CouponHandler {
	return &CouponHandler{svc: svc}
}

// List handles GET /api/v1/coupons.
func (h *CouponHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListCoupons(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Get handles GET /api/v1/coupons/:id.
func (h *CouponHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	coupon, err := h.svc.GetCoupon(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, coupon)
}

// Create handles POST /api/v1/coupons.
func (h *CouponHandler) Create(c *gin.Context) {
	var req CreateCouponRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	coupon, err := h.svc.CreateCoupon(c.Request.Context(), draftFromCreate(&req))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, coupon)
}

// Update handles PATCH /api/v1/coupons/:id.
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateCouponRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	current, err := h.svc.GetCoupon(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	coupon, err := h.svc.UpdateCoupon(c.Request.Context(), id, mergeDraft(current, &req))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, coupon)
}

// Delete handles DELETE /api/v1/coupons/:id.
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteCoupon(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Redeem handles POST /api/v1/coupons/:id/redeem.
func (h *CouponHandler) Redeem(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req RedeemRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	coupon, err := h.svc.RedeemCoupon(c.Request.Context(), id, req.User)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, coupon)
}

func draftFromCreate(req *CreateCouponRequest) domain.CouponDraft {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return domain.CouponDraft{
		Code:              req.Code,
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountValue:     req.DiscountValue,
		MinOrderValue:     req.MinOrderValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		IsActive:          active,
		UsageLimit:        req.UsageLimit,
	}
}

// mergeDraft overlays the present fields of a partial update onto the stored
// coupon and returns the resulting full draft.
func mergeDraft(current *domain.Coupon, req *UpdateCouponRequest) domain.CouponDraft {
	draft := domain.CouponDraft{
		Code:              current.Code,
		Description:       current.Description,
		DiscountType:      current.DiscountType,
		DiscountValue:     current.DiscountValue,
		MinOrderValue:     current.MinOrderValue,
		MaxDiscountAmount: current.MaxDiscountAmount,
		StartDate:         current.StartDate,
		EndDate:           current.EndDate,
		IsActive:          current.IsActive,
		UsageLimit:        current.UsageLimit,
	}

	if req.Code != nil {
		draft.Code = *req.Code
	}
	if req.Description != nil {
		draft.Description = *req.Description
	}
	if req.DiscountType != nil {
		draft.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		draft.DiscountValue = *req.DiscountValue
	}
	if req.MinOrderValue != nil {
		draft.MinOrderValue = req.MinOrderValue
	}
	if req.MaxDiscountAmount != nil {
		draft.MaxDiscountAmount = req.MaxDiscountAmount
	}
	if req.StartDate != nil {
		draft.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		draft.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		draft.IsActive = *req.IsActive
	}
	if req.UsageLimit != nil {
		draft.UsageLimit = *req.UsageLimit
	}

	return draft
}
