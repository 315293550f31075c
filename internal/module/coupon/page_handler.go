package coupon

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soletrade/admin/internal/domain"
	"github.com/soletrade/admin/internal/middleware"
	"github.com/soletrade/admin/internal/pkg"
)

const dateLayout = "2006-01-02"

// CouponPageHandler handles page rendering and htmx endpoints for the
// coupons screen.
type CouponPageHandler struct {
	svc domain.CouponService
	now func() time.Time
}

// NewCouponPageHandler creates a new CouponPageHandler with the given service.
func NewCouponPageHandler(svc domain.CouponService) *CouponPageHandler {
	return &CouponPageHandler{svc: svc, now: time.Now}
}

// ListPage renders the coupon list with search and pagination.
// GET /coupons
func (h *CouponPageHandler) ListPage(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	data := gin.H{
		"Active":    "coupons",
		"Search":    req.Search,
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	}

	result, err := h.svc.ListCoupons(c.Request.Context(), req)
	if err != nil {
		data["Error"] = "Could not load coupons"
		data["Coupons"] = []domain.Coupon{}
		c.HTML(http.StatusOK, "coupon/list.html", data)
		return
	}

	data["Coupons"] = result.Items
	data["Pagination"] = result
	data["BaseURL"] = "/coupons"
	c.HTML(http.StatusOK, "coupon/list.html", data)
}

// NewPage renders an empty coupon form. The validity window defaults to a
// month starting today.
// GET /coupons/new
func (h *CouponPageHandler) NewPage(c *gin.Context) {
	today := h.now().Truncate(24 * time.Hour)
	c.HTML(http.StatusOK, "coupon/form.html", gin.H{
		"Active":    "coupons",
		"Title":     "New coupon",
		"Action":    "/coupons",
		"Draft":     formDraft{CouponDraft: domain.CouponDraft{IsActive: true}, StartDate: today.Format(dateLayout), EndDate: today.AddDate(0, 0, 30).Format(dateLayout)},
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	})
}

// EditPage renders the coupon form pre-filled from the stored coupon.
// GET /coupons/:id/edit
func (h *CouponPageHandler) EditPage(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/coupons")
		return
	}

	coupon, err := h.svc.GetCoupon(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusFound, "/coupons")
		return
	}

	c.HTML(http.StatusOK, "coupon/form.html", gin.H{
		"Active":    "coupons",
		"Title":     "Edit coupon",
		"Action":    "/coupons/" + strconv.FormatUint(uint64(id), 10),
		"Draft":     formDraftFromCoupon(coupon),
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	})
}

// CreateForm processes the coupon form. On success the browser is sent to the
// list; on failure the form is re-rendered with the operator's draft intact.
// POST /coupons
func (h *CouponPageHandler) CreateForm(c *gin.Context) {
	draft, form, parseErr := parseCouponForm(c)

	if parseErr == "" {
		_, err := h.svc.CreateCoupon(c.Request.Context(), draft)
		if err == nil {
			c.Redirect(http.StatusFound, "/coupons")
			return
		}
		parseErr = pkg.SafeErrorMessage(err, "Failed to create coupon")
	}

	c.HTML(http.StatusOK, "coupon/form.html", gin.H{
		"Active":    "coupons",
		"Title":     "New coupon",
		"Action":    "/coupons",
		"Draft":     form,
		"Error":     parseErr,
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	})
}

// UpdateForm processes the edit form the same way CreateForm does.
// POST /coupons/:id
func (h *CouponPageHandler) UpdateForm(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid coupon id")
		return
	}

	draft, form, parseErr := parseCouponForm(c)

	if parseErr == "" {
		_, err := h.svc.UpdateCoupon(c.Request.Context(), id, draft)
		if err == nil {
			c.Redirect(http.StatusFound, "/coupons")
			return
		}
		parseErr = pkg.SafeErrorMessage(err, "Failed to update coupon")
	}

	c.HTML(http.StatusOK, "coupon/form.html", gin.H{
		"Active":    "coupons",
		"Title":     "Edit coupon",
		"Action":    "/coupons/" + strconv.FormatUint(uint64(id), 10),
		"Draft":     form,
		"Error":     parseErr,
		"CSRFToken": middleware.GetCSRFToken(c),
		"Session":   middleware.SessionFromContext(c),
	})
}

// ToggleHTMX flips the coupon between active and inactive and re-renders the
// affected row. The row's toggle button uses hx-sync="this:drop" so clicks
// made while a toggle is in flight are ignored rather than queued.
// POST /coupons/:id/toggle
func (h *CouponPageHandler) ToggleHTMX(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid coupon id")
		return
	}

	ctx := c.Request.Context()
	current, err := h.svc.GetCoupon(ctx, id)
	if err != nil {
		pkg.HXToastError(c, pkg.SafeErrorMessage(err, "Failed to update coupon"))
		return
	}

	draft := draftFromCoupon(current)
	draft.IsActive = !draft.IsActive

	updated, err := h.svc.UpdateCoupon(ctx, id, draft)
	if err != nil {
		pkg.HXToastError(c, pkg.SafeErrorMessage(err, "Failed to update coupon"))
		return
	}

	c.HTML(http.StatusOK, "coupon/row.html", gin.H{
		"Coupon":    updated,
		"CSRFToken": middleware.GetCSRFToken(c),
	})
}

// DeleteHTMX deletes a coupon. On success the response body is empty and
// htmx removes the targeted row; on failure the row stays and a toast fires.
// DELETE /coupons/:id
func (h *CouponPageHandler) DeleteHTMX(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.HXToastError(c, "Invalid coupon id")
		return
	}

	if err := h.svc.DeleteCoupon(c.Request.Context(), id); err != nil {
		if domain.IsNotFound(err) {
			pkg.HXToastError(c, "Coupon not found or already deleted")
			return
		}
		pkg.HXToastError(c, "Failed to delete coupon")
		return
	}

	pkg.ShowToast(c, "Coupon deleted", "success")
	c.Status(http.StatusOK)
}

// formDraft mirrors domain.CouponDraft with the dates kept as the form's
// string values, so a failed submit re-renders exactly what was typed.
type formDraft struct {
	domain.CouponDraft
	StartDate string
	EndDate   string
}

// parseCouponForm reads the coupon form into a draft. A non-empty third
// return value is a user-facing parse error; the form copy is always
// populated so the page can be re-rendered without losing input.
func parseCouponForm(c *gin.Context) (domain.CouponDraft, formDraft, string) {
	draft := domain.CouponDraft{
		Code:         c.PostForm("code"),
		Description:  strings.TrimSpace(c.PostForm("description")),
		DiscountType: c.PostForm("discount_type"),
		IsActive:     c.PostForm("is_active") != "",
	}
	form := formDraft{
		StartDate: c.PostForm("start_date"),
		EndDate:   c.PostForm("end_date"),
	}

	parseErr := ""
	if value, err := strconv.ParseFloat(c.PostForm("discount_value"), 64); err == nil {
		draft.DiscountValue = value
	} else {
		parseErr = "Enter a valid discount value"
	}

	if raw := strings.TrimSpace(c.PostForm("min_order_value")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			draft.MinOrderValue = &value
		} else if parseErr == "" {
			parseErr = "Enter a valid minimum order value"
		}
	}
	if raw := strings.TrimSpace(c.PostForm("max_discount_amount")); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			draft.MaxDiscountAmount = &value
		} else if parseErr == "" {
			parseErr = "Enter a valid maximum discount amount"
		}
	}

	if raw := strings.TrimSpace(c.PostForm("usage_limit")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			draft.UsageLimit = value
		} else if parseErr == "" {
			parseErr = "Enter a valid usage limit"
		}
	}

	if start, err := time.Parse(dateLayout, form.StartDate); err == nil {
		draft.StartDate = start
	} else if parseErr == "" {
		parseErr = "Enter a valid start date"
	}
	if end, err := time.Parse(dateLayout, form.EndDate); err == nil {
		// The whole end day counts.
		draft.EndDate = end.Add(24*time.Hour - time.Second)
	} else if parseErr == "" {
		parseErr = "Enter a valid end date"
	}

	form.CouponDraft = draft
	return draft, form, parseErr
}

func draftFromCoupon(c *domain.Coupon) domain.CouponDraft {
	return domain.CouponDraft{
		Code:              c.Code,
		Description:       c.Description,
		DiscountType:      c.DiscountType,
		DiscountValue:     c.DiscountValue,
		MinOrderValue:     c.MinOrderValue,
		MaxDiscountAmount: c.MaxDiscountAmount,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		IsActive:          c.IsActive,
		UsageLimit:        c.UsageLimit,
	}
}

func formDraftFromCoupon(c *domain.Coupon) formDraft {
	return formDraft{
		CouponDraft: draftFromCoupon(c),
		StartDate:   c.StartDate.Format(dateLayout),
		EndDate:     c.EndDate.Format(dateLayout),
	}
}
